package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PromoCode codes are stored uppercased; deactivation is not modeled,
// codes are either present or deleted.
type PromoCode struct {
	gorm.Model
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code               string    `gorm:"unique;not null" json:"code"`
	DiscountPercentage int       `gorm:"not null" json:"discount_percentage"`
	IsActive           bool      `gorm:"not null;default:true" json:"is_active"`
}

func (promo *PromoCode) BeforeCreate(tx *gorm.DB) (err error) {
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	return
}
