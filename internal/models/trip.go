package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripStatus string

const (
	TripSearching TripStatus = "searching"
	TripAccepted  TripStatus = "accepted"
	TripStarted   TripStatus = "started"
	TripCompleted TripStatus = "completed"
	TripCancelled TripStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// Flat fee credited to the driver when a trip completes without an
// agreed price.
const FallbackFare = 10.0

type Trip struct {
	gorm.Model
	ID             uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	ClientID       uuid.UUID     `gorm:"type:uuid;not null;index" json:"client_id"`
	Client         User          `json:"-"`
	DriverID       *uuid.UUID    `gorm:"type:uuid;index" json:"driver_id,omitempty"`
	Driver         *Driver       `json:"-"`
	PickupLocation string        `gorm:"not null" json:"pickup_location"`
	Destination    string        `gorm:"not null" json:"destination"`
	Status         TripStatus    `gorm:"type:varchar(16);not null;default:'searching'" json:"status"`
	PaymentStatus  PaymentStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"payment_status"`
	IsShared       bool          `gorm:"not null;default:false" json:"is_shared"`
	SeatsAvailable int           `gorm:"not null;default:4" json:"seats_available"`
	IsUrgent       bool          `gorm:"not null;default:false" json:"is_urgent"`
	FinalPrice     float64       `gorm:"not null;default:0" json:"final_price"`
	CarCategory    string        `gorm:"not null;default:'Standard'" json:"car_category"`
}

func (trip *Trip) BeforeCreate(tx *gorm.DB) (err error) {
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	return
}

// CanAccept reports whether a driver may still take this trip.
func (trip *Trip) CanAccept() bool {
	return trip.Status == TripSearching
}

// CanCancel reports whether the trip is still cancellable. Completed and
// cancelled are terminal.
func (trip *Trip) CanCancel() bool {
	return trip.Status != TripCompleted && trip.Status != TripCancelled
}

// CanComplete reports whether the trip can be completed and paid out.
// Only an already completed trip blocks completion.
func (trip *Trip) CanComplete() bool {
	return trip.Status != TripCompleted
}

// CompletionAmount is what the assigned driver earns when the trip
// completes: the agreed price, or the flat fallback fare when no price
// was set at request time.
func (trip *Trip) CompletionAmount() float64 {
	if trip.FinalPrice > 0 {
		return trip.FinalPrice
	}
	return FallbackFare
}
