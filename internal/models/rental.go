package models

import (
	"fmt"
	"time"
)

// RentalStatus is the lifecycle state of a rental.
type RentalStatus string

const (
	RentalRequested RentalStatus = "REQUESTED"
	RentalConfirmed RentalStatus = "CONFIRMED"
)

// Rental links a car, the customer renting it and the rental period.
type Rental struct {
	ID            int64        `json:"id" gorm:"primaryKey;autoIncrement"`
	CarID         int64        `json:"carId" gorm:"index;not null"`
	RenterID      int64        `json:"renterId" gorm:"index;not null"`
	RentStartedAt time.Time    `json:"rentStartedAt" gorm:"not null"`
	RentEndedAt   *time.Time   `json:"rentEndedAt"` // nil means open ended
	Status        RentalStatus `json:"status" gorm:"type:varchar(16);not null"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Confirm moves a requested rental to CONFIRMED.
func (r *Rental) Confirm() error {
	if r.Status != RentalRequested {
		return fmt.Errorf("cannot confirm rental in status %q", r.Status)
	}
	r.Status = RentalConfirmed
	return nil
}

// Overlaps reports whether the rental period intersects [start, end).
// Only bounded periods can conflict: an open ended rental, or an open ended
// request, records a start date and never blocks the car.
func (r *Rental) Overlaps(start time.Time, end *time.Time) bool {
	if end == nil || r.RentEndedAt == nil {
		return false
	}
	return r.RentStartedAt.Before(*end) && start.Before(*r.RentEndedAt)
}
