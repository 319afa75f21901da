package services

import (
	"errors"
	"fmt"
	"time"

	"carrental/internal/models"
	"carrental/internal/repositories"

	"go.uber.org/zap"
)

// RentCarInput is the payload for renting a car.
type RentCarInput struct {
	RentStartedAt time.Time  `json:"rentStartedAt"`
	RentEndedAt   *time.Time `json:"rentEndedAt"`
}

// RentalService handles business logic related to rentals.
type RentalService struct {
	rentalRepo repositories.RentalRepository
	carRepo    repositories.CarRepository
	events     eventEmitter
	log        *zap.Logger
}

// NewRentalService creates a new RentalService. publisher may be nil.
func NewRentalService(rentalRepo repositories.RentalRepository, carRepo repositories.CarRepository, publisher EventPublisher, exchange string, log *zap.Logger) *RentalService {
	return &RentalService{
		rentalRepo: rentalRepo,
		carRepo:    carRepo,
		events:     eventEmitter{publisher: publisher, exchange: exchange, log: log},
		log:        log,
	}
}

// RentCar books carID for the requesting CUSTOMER starting at input.RentStartedAt.
func (s *RentalService) RentCar(carID int64, requester *models.UserClaims, input RentCarInput) (*models.Rental, error) {
	if err := Authorize(requester, ActionRentCar); err != nil {
		return nil, err
	}
	if input.RentStartedAt.IsZero() {
		return nil, newValidationError("rentStartedAt", "is required")
	}
	if input.RentEndedAt != nil && !input.RentEndedAt.After(input.RentStartedAt) {
		return nil, newValidationError("rentEndedAt", "must be after rentStartedAt")
	}

	if _, err := s.carRepo.GetByID(carID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("car %d: %w", carID, ErrCarNotFound)
		}
		return nil, fmt.Errorf("failed to look up car %d: %w", carID, err)
	}

	rental := &models.Rental{
		CarID:         carID,
		RenterID:      requester.ID,
		RentStartedAt: input.RentStartedAt.UTC(),
		Status:        models.RentalRequested,
	}
	if input.RentEndedAt != nil {
		end := input.RentEndedAt.UTC()
		rental.RentEndedAt = &end
	}

	err := s.rentalRepo.Book(carID, func(repo repositories.RentalRepository) error {
		existing, err := repo.ListByCar(carID)
		if err != nil {
			return fmt.Errorf("failed to check availability of car %d: %w", carID, err)
		}
		for i := range existing {
			if existing[i].Status == models.RentalConfirmed && existing[i].Overlaps(rental.RentStartedAt, rental.RentEndedAt) {
				return fmt.Errorf("car %d overlaps rental %d: %w", carID, existing[i].ID, ErrCarUnavailable)
			}
		}

		if err := repo.Create(rental); err != nil {
			return fmt.Errorf("failed to create rental: %w", err)
		}
		if err := rental.Confirm(); err != nil {
			return err
		}
		if err := repo.UpdateStatus(rental.ID, rental.Status); err != nil {
			return fmt.Errorf("failed to confirm rental %d: %w", rental.ID, err)
		}
		return nil
	})
	if err != nil {
		// The car can disappear between the lookup and the lock.
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("car %d: %w", carID, ErrCarNotFound)
		}
		return nil, err
	}

	s.log.Info("rental confirmed",
		zap.Int64("rental_id", rental.ID),
		zap.Int64("car_id", carID),
		zap.Int64("renter_id", requester.ID),
	)
	s.events.emit(EventRentalConfirmed, map[string]interface{}{
		"rentalId":      rental.ID,
		"carId":         rental.CarID,
		"renterId":      rental.RenterID,
		"rentStartedAt": rental.RentStartedAt,
		"rentEndedAt":   rental.RentEndedAt,
	})
	return rental, nil
}

// ListRentals returns every rental for ADMIN and the requester's own rentals otherwise.
func (s *RentalService) ListRentals(requester *models.UserClaims) ([]models.Rental, error) {
	if err := Authorize(requester, ActionListRentals); err != nil {
		return nil, err
	}

	var (
		rentals []models.Rental
		err     error
	)
	if requester.HasRole(models.RoleAdmin) {
		rentals, err = s.rentalRepo.GetAll()
	} else {
		rentals, err = s.rentalRepo.ListByRenter(requester.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals: %w", err)
	}
	return rentals, nil
}

// GetRental returns a single rental. Customers only see their own; other
// rentals are reported as not found.
func (s *RentalService) GetRental(id int64, requester *models.UserClaims) (*models.Rental, error) {
	if err := Authorize(requester, ActionGetRental); err != nil {
		return nil, err
	}

	rental, err := s.rentalRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("rental %d: %w", id, ErrRentalNotFound)
		}
		return nil, fmt.Errorf("failed to get rental %d: %w", id, err)
	}
	if !requester.HasRole(models.RoleAdmin) && rental.RenterID != requester.ID {
		return nil, fmt.Errorf("rental %d belongs to another renter: %w", id, ErrRentalNotFound)
	}
	return rental, nil
}
