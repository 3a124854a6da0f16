package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review keeps a denormalized copy of the client's name as it was at
// submission time; it is not a live reference to the User row.
type Review struct {
	gorm.Model
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TripID     uuid.UUID `gorm:"type:uuid;not null;index" json:"trip_id"`
	Trip       Trip      `json:"-"`
	DriverID   uuid.UUID `gorm:"type:uuid;not null;index" json:"driver_id"`
	Driver     Driver    `json:"-"`
	ClientName string    `gorm:"not null" json:"client_name"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `json:"comment"`
}

func (review *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	return
}
