package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"carrental/internal/models"
)

// MockCarRepository is an in-memory implementation of CarRepository.
type MockCarRepository struct {
	cars   map[int64]models.Car
	nextID int64
	mu     sync.RWMutex
}

// NewMockCarRepository creates a new instance of MockCarRepository.
func NewMockCarRepository() *MockCarRepository {
	return &MockCarRepository{
		cars: make(map[int64]models.Car),
	}
}

// GetAll returns all cars ordered by ID.
func (r *MockCarRepository) GetAll() ([]models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	carList := make([]models.Car, 0, len(r.cars))
	for _, c := range r.cars {
		carList = append(carList, c)
	}
	sort.Slice(carList, func(i, j int) bool { return carList[i].ID < carList[j].ID })
	return carList, nil
}

// GetByID returns a car by its ID.
func (r *MockCarRepository) GetByID(id int64) (*models.Car, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	car, ok := r.cars[id]
	if !ok {
		return nil, fmt.Errorf("car with ID %d: %w", id, ErrNotFound)
	}
	return &car, nil
}

// Create adds a new car and assigns it the next ID.
func (r *MockCarRepository) Create(car *models.Car) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	car.ID = r.nextID
	now := time.Now()
	car.CreatedAt = now
	car.UpdatedAt = now
	r.cars[car.ID] = *car
	return nil
}

// Delete removes a car by its ID.
func (r *MockCarRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cars[id]; !ok {
		return fmt.Errorf("car with ID %d: %w", id, ErrNotFound)
	}
	delete(r.cars, id)
	return nil
}
