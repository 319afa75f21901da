package repositories

import (
	"errors"
	"fmt"

	"carrental/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRentalRepository is a GORM implementation of RentalRepository.
type GORMRentalRepository struct {
	db *gorm.DB
}

// NewGORMRentalRepository creates a new instance of GORMRentalRepository.
func NewGORMRentalRepository(db *gorm.DB) *GORMRentalRepository {
	return &GORMRentalRepository{
		db: db,
	}
}

// GetAll retrieves all rentals ordered by ID.
func (r *GORMRentalRepository) GetAll() ([]models.Rental, error) {
	rentals := make([]models.Rental, 0)
	if err := r.db.Order("id").Find(&rentals).Error; err != nil {
		return nil, fmt.Errorf("failed to get all rentals: %w", err)
	}
	return rentals, nil
}

// GetByID retrieves a single rental by its ID.
func (r *GORMRentalRepository) GetByID(id int64) (*models.Rental, error) {
	var rental models.Rental
	if err := r.db.First(&rental, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rental with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rental by ID %d: %w", id, err)
	}
	return &rental, nil
}

// ListByCar retrieves every rental of the given car.
func (r *GORMRentalRepository) ListByCar(carID int64) ([]models.Rental, error) {
	rentals := make([]models.Rental, 0)
	if err := r.db.Where("car_id = ?", carID).Order("rent_started_at").Find(&rentals).Error; err != nil {
		return nil, fmt.Errorf("failed to list rentals for car %d: %w", carID, err)
	}
	return rentals, nil
}

// ListByRenter retrieves every rental made by the given user.
func (r *GORMRentalRepository) ListByRenter(renterID int64) ([]models.Rental, error) {
	rentals := make([]models.Rental, 0)
	if err := r.db.Where("renter_id = ?", renterID).Order("id").Find(&rentals).Error; err != nil {
		return nil, fmt.Errorf("failed to list rentals for renter %d: %w", renterID, err)
	}
	return rentals, nil
}

// Create inserts a new rental; the generated ID is written back into rental.
func (r *GORMRentalRepository) Create(rental *models.Rental) error {
	if err := r.db.Create(rental).Error; err != nil {
		return fmt.Errorf("failed to create rental: %w", err)
	}
	return nil
}

// UpdateStatus sets the status of an existing rental.
func (r *GORMRentalRepository) UpdateStatus(id int64, status models.RentalStatus) error {
	res := r.db.Model(&models.Rental{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update rental status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("rental with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// Book runs fn inside a transaction holding a row lock on the car, so
// concurrent bookings of the same car are serialized.
func (r *GORMRentalRepository) Book(carID int64, fn func(RentalRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var car models.Car
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&car, "id = ?", carID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("car with ID %d: %w", carID, ErrNotFound)
			}
			return fmt.Errorf("failed to lock car %d: %w", carID, err)
		}
		return fn(NewGORMRentalRepository(tx))
	})
}
