package repositories

import (
	"carrental/internal/models"
)

// CarRepository defines the interface for car data access.
type CarRepository interface {
	GetAll() ([]models.Car, error)
	GetByID(id int64) (*models.Car, error)
	Create(car *models.Car) error
	Delete(id int64) error
}
