package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"carrental/internal/models"
)

// MockRentalRepository is an in-memory implementation of RentalRepository.
type MockRentalRepository struct {
	rentals map[int64]models.Rental
	nextID  int64
	mu      sync.RWMutex
	bookMu  sync.Mutex
}

// NewMockRentalRepository creates a new instance of MockRentalRepository.
func NewMockRentalRepository() *MockRentalRepository {
	return &MockRentalRepository{
		rentals: make(map[int64]models.Rental),
	}
}

// GetAll returns all rentals ordered by ID.
func (r *MockRentalRepository) GetAll() ([]models.Rental, error) {
	return r.filter(func(models.Rental) bool { return true }), nil
}

// GetByID returns a rental by its ID.
func (r *MockRentalRepository) GetByID(id int64) (*models.Rental, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rental, ok := r.rentals[id]
	if !ok {
		return nil, fmt.Errorf("rental with ID %d: %w", id, ErrNotFound)
	}
	return &rental, nil
}

// ListByCar returns every rental of the given car.
func (r *MockRentalRepository) ListByCar(carID int64) ([]models.Rental, error) {
	return r.filter(func(rt models.Rental) bool { return rt.CarID == carID }), nil
}

// ListByRenter returns every rental made by the given user.
func (r *MockRentalRepository) ListByRenter(renterID int64) ([]models.Rental, error) {
	return r.filter(func(rt models.Rental) bool { return rt.RenterID == renterID }), nil
}

// Create adds a new rental and assigns it the next ID.
func (r *MockRentalRepository) Create(rental *models.Rental) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	rental.ID = r.nextID
	rental.CreatedAt = time.Now()
	rental.UpdatedAt = rental.CreatedAt
	r.rentals[rental.ID] = *rental
	return nil
}

// UpdateStatus updates the status of a rental.
func (r *MockRentalRepository) UpdateStatus(id int64, status models.RentalStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rental, ok := r.rentals[id]
	if !ok {
		return fmt.Errorf("rental with ID %d: %w", id, ErrNotFound)
	}
	rental.Status = status
	rental.UpdatedAt = time.Now()
	r.rentals[id] = rental
	return nil
}

// Book serializes bookings and restores the previous state when fn fails.
func (r *MockRentalRepository) Book(_ int64, fn func(RentalRepository) error) error {
	r.bookMu.Lock()
	defer r.bookMu.Unlock()

	r.mu.RLock()
	saved := make(map[int64]models.Rental, len(r.rentals))
	for id, rt := range r.rentals {
		saved[id] = rt
	}
	savedID := r.nextID
	r.mu.RUnlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.rentals = saved
		r.nextID = savedID
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *MockRentalRepository) filter(keep func(models.Rental) bool) []models.Rental {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Rental, 0)
	for _, rt := range r.rentals {
		if keep(rt) {
			out = append(out, rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
