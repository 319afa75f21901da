package repositories

import (
	"errors"
	"fmt"

	"carrental/internal/models"

	"gorm.io/gorm"
)

// GORMCarRepository is a GORM implementation of CarRepository.
type GORMCarRepository struct {
	db *gorm.DB
}

// NewGORMCarRepository creates a new instance of GORMCarRepository.
func NewGORMCarRepository(db *gorm.DB) *GORMCarRepository {
	return &GORMCarRepository{
		db: db,
	}
}

// GetAll retrieves all cars ordered by ID.
func (r *GORMCarRepository) GetAll() ([]models.Car, error) {
	cars := make([]models.Car, 0)
	if err := r.db.Order("id").Find(&cars).Error; err != nil {
		return nil, fmt.Errorf("failed to get all cars: %w", err)
	}
	return cars, nil
}

// GetByID retrieves a single car by its ID.
func (r *GORMCarRepository) GetByID(id int64) (*models.Car, error) {
	var car models.Car
	if err := r.db.First(&car, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("car with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get car by ID %d: %w", id, err)
	}
	return &car, nil
}

// Create inserts a new car; the generated ID is written back into car.
func (r *GORMCarRepository) Create(car *models.Car) error {
	if err := r.db.Create(car).Error; err != nil {
		return fmt.Errorf("failed to create car: %w", err)
	}
	return nil
}

// Delete soft-deletes a car by its ID.
func (r *GORMCarRepository) Delete(id int64) error {
	res := r.db.Delete(&models.Car{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete car: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("car with ID %d: %w", id, ErrNotFound)
	}
	return nil
}
