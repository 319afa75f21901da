package repositories

import (
	"carrental/internal/models"
)

// RentalRepository defines the interface for rental data access.
type RentalRepository interface {
	GetAll() ([]models.Rental, error)
	GetByID(id int64) (*models.Rental, error)
	ListByCar(carID int64) ([]models.Rental, error)
	ListByRenter(renterID int64) ([]models.Rental, error)
	Create(rental *models.Rental) error
	UpdateStatus(id int64, status models.RentalStatus) error
	// Book runs fn with exclusive access to the rentals of carID. If fn
	// returns an error, none of its writes are kept.
	Book(carID int64, fn func(RentalRepository) error) error
}
