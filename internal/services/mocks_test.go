package services_test

import (
	"carrental/internal/models"
	"carrental/internal/repositories"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

var nopLogger = zap.NewNop()

// MockCarRepository is a mock implementation of repositories.CarRepository
type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) GetAll() ([]models.Car, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Car), args.Error(1)
}

func (m *MockCarRepository) GetByID(id int64) (*models.Car, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Car), args.Error(1)
}

func (m *MockCarRepository) Create(car *models.Car) error {
	args := m.Called(car)
	return args.Error(0)
}

func (m *MockCarRepository) Delete(id int64) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockRentalRepository is a mock implementation of repositories.RentalRepository
type MockRentalRepository struct {
	mock.Mock
}

func (m *MockRentalRepository) GetAll() ([]models.Rental, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rental), args.Error(1)
}

func (m *MockRentalRepository) GetByID(id int64) (*models.Rental, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Rental), args.Error(1)
}

func (m *MockRentalRepository) ListByCar(carID int64) ([]models.Rental, error) {
	args := m.Called(carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rental), args.Error(1)
}

func (m *MockRentalRepository) ListByRenter(renterID int64) ([]models.Rental, error) {
	args := m.Called(renterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Rental), args.Error(1)
}

func (m *MockRentalRepository) Create(rental *models.Rental) error {
	args := m.Called(rental)
	return args.Error(0)
}

func (m *MockRentalRepository) UpdateStatus(id int64, status models.RentalStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

// Book records the call and runs fn against the mock itself unless an error is configured.
func (m *MockRentalRepository) Book(carID int64, fn func(repositories.RentalRepository) error) error {
	args := m.Called(carID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

var (
	adminClaims    = &models.UserClaims{ID: 6, Name: "Johnny", Email: "johnny@binar.co.id", Role: models.RoleAdmin}
	customerClaims = &models.UserClaims{ID: 7, Name: "Jojo", Email: "jojo@binar.co.id", Role: models.RoleCustomer}
)
