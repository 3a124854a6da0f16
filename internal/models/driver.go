package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultCarCategory  = "Economy"
	DefaultPricePerKm   = 1.20
	DefaultSchedule     = "24/7"
	DefaultLocation     = "Център"
	DefaultDriverRating = 5.0
)

type Driver struct {
	gorm.Model
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User            User      `json:"-"`
	CarModel        string    `gorm:"not null" json:"car_model"`
	CarCategory     string    `gorm:"not null" json:"car_category"`
	LicensePlate    string    `gorm:"not null" json:"license_plate"`
	Description     *string   `json:"description,omitempty"`
	PricePerKm      float64   `gorm:"not null" json:"price_per_km"`
	Schedule        string    `gorm:"not null" json:"schedule"`
	CurrentLocation string    `gorm:"not null" json:"current_location"`
	Rating          float64   `gorm:"not null" json:"rating"`
	IsOnline        bool      `gorm:"not null;default:false" json:"is_online"`
	TotalEarnings   float64   `gorm:"not null;default:0" json:"total_earnings"`
}

func (driver *Driver) BeforeCreate(tx *gorm.DB) (err error) {
	if driver.ID == uuid.Nil {
		driver.ID = uuid.New()
	}
	if driver.CarCategory == "" {
		driver.CarCategory = DefaultCarCategory
	}
	if driver.PricePerKm == 0 {
		driver.PricePerKm = DefaultPricePerKm
	}
	if driver.Schedule == "" {
		driver.Schedule = DefaultSchedule
	}
	if driver.CurrentLocation == "" {
		driver.CurrentLocation = DefaultLocation
	}
	if driver.Rating == 0 {
		driver.Rating = DefaultDriverRating
	}
	return
}
