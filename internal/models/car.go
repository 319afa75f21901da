package models

import (
	"time"

	"gorm.io/gorm"
)

// CarSize is the size class of a car.
type CarSize string

const (
	CarSizeSmall  CarSize = "SMALL"
	CarSizeMedium CarSize = "MEDIUM"
	CarSizeLarge  CarSize = "LARGE"
)

// Car represents a car available for rent.
type Car struct {
	ID        int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Price     float64        `json:"price" gorm:"not null"`
	Size      CarSize        `json:"size" gorm:"type:varchar(16);not null"`
	Image     string         `json:"image" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"` // Soft delete keeps rentals pointing at a real row
}
