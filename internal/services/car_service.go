package services

import (
	"errors"
	"fmt"

	"carrental/internal/models"
	"carrental/internal/repositories"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// CreateCarInput is the payload for creating a car.
type CreateCarInput struct {
	Name  string         `json:"name" validate:"required,max=255"`
	Price float64        `json:"price" validate:"required,gt=0"`
	Size  models.CarSize `json:"size" validate:"required,oneof=SMALL MEDIUM LARGE"`
	Image string         `json:"image" validate:"required"`
}

// CarService handles business logic related to cars.
type CarService struct {
	repo     repositories.CarRepository
	validate *validator.Validate
	events   eventEmitter
	log      *zap.Logger
}

// NewCarService creates a new CarService. publisher may be nil.
func NewCarService(repo repositories.CarRepository, publisher EventPublisher, exchange string, log *zap.Logger) *CarService {
	return &CarService{
		repo:     repo,
		validate: newValidator(),
		events:   eventEmitter{publisher: publisher, exchange: exchange, log: log},
		log:      log,
	}
}

// ListCars retrieves all cars.
func (s *CarService) ListCars() ([]models.Car, error) {
	cars, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list cars: %w", err)
	}
	return cars, nil
}

// GetCar retrieves a single car by its ID.
func (s *CarService) GetCar(id int64) (*models.Car, error) {
	car, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("car %d: %w", id, ErrCarNotFound)
		}
		return nil, fmt.Errorf("failed to get car %d: %w", id, err)
	}
	return car, nil
}

// CreateCar validates and stores a new car. Only ADMIN may create cars.
func (s *CarService) CreateCar(input CreateCarInput, requester *models.UserClaims) (*models.Car, error) {
	if err := Authorize(requester, ActionCreateCar); err != nil {
		return nil, err
	}
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	car := &models.Car{
		Name:  input.Name,
		Price: input.Price,
		Size:  input.Size,
		Image: input.Image,
	}
	if err := s.repo.Create(car); err != nil {
		return nil, fmt.Errorf("failed to create car: %w", err)
	}

	s.log.Info("car created", zap.Int64("car_id", car.ID), zap.Int64("admin_id", requester.ID))
	s.events.emit(EventCarCreated, map[string]interface{}{
		"carId": car.ID,
		"name":  car.Name,
		"size":  car.Size,
		"price": car.Price,
	})
	return car, nil
}

// DeleteCar removes a car. Only ADMIN may delete cars.
// Deleting an ID that does not exist succeeds.
func (s *CarService) DeleteCar(id int64, requester *models.UserClaims) error {
	if err := Authorize(requester, ActionDeleteCar); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.log.Debug("delete of absent car", zap.Int64("car_id", id))
			return nil
		}
		return fmt.Errorf("failed to delete car %d: %w", id, err)
	}

	s.log.Info("car deleted", zap.Int64("car_id", id), zap.Int64("admin_id", requester.ID))
	s.events.emit(EventCarDeleted, map[string]interface{}{"carId": id})
	return nil
}
