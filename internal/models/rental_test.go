package models_test

import (
	"testing"
	"time"

	"carrental/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRental_Confirm(t *testing.T) {
	r := &models.Rental{Status: models.RentalRequested}
	assert.NoError(t, r.Confirm())
	assert.Equal(t, models.RentalConfirmed, r.Status)
	assert.Error(t, r.Confirm(), "confirmed rentals cannot be confirmed again")
}

func TestRental_Overlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2023, 11, d, 0, 0, 0, 0, time.UTC) }
	ptr := func(t time.Time) *time.Time { return &t }

	bounded := &models.Rental{RentStartedAt: day(10), RentEndedAt: ptr(day(15))}
	open := &models.Rental{RentStartedAt: day(10)}

	tests := []struct {
		name   string
		rental *models.Rental
		start  time.Time
		end    *time.Time
		want   bool
	}{
		{"inside", bounded, day(11), ptr(day(12)), true},
		{"covers", bounded, day(9), ptr(day(16)), true},
		{"ends at start", bounded, day(5), ptr(day(10)), false},
		{"starts at end", bounded, day(15), ptr(day(20)), false},
		{"open request inside", bounded, day(14), nil, false},
		{"open request after end", bounded, day(16), nil, false},
		{"open rental later request", open, day(30), ptr(day(31)), false},
		{"open rental same start", open, day(10), ptr(day(11)), false},
		{"both open", open, day(10), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rental.Overlaps(tt.start, tt.end))
		})
	}
}

func TestRole(t *testing.T) {
	assert.Equal(t, 1, models.RoleCustomer.ID())
	assert.Equal(t, 2, models.RoleAdmin.ID())
	assert.False(t, models.Role("ROOT").Valid())

	var nilClaims *models.UserClaims
	assert.False(t, nilClaims.HasRole(models.RoleAdmin))
	assert.True(t, (&models.UserClaims{Role: models.RoleAdmin}).HasRole(models.RoleCustomer, models.RoleAdmin))
}
