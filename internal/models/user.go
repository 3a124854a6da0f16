package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient Role = "client"
	RoleDriver Role = "driver"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FullName    string    `gorm:"not null" json:"full_name"`
	Email       string    `gorm:"unique;not null" json:"email"`
	Phone       string    `gorm:"unique;not null" json:"phone"`
	Password    string    `gorm:"not null" json:"-"`
	Role        Role      `gorm:"type:varchar(16);not null;default:'client'" json:"role"`
	HomeAddress *string   `json:"home_address,omitempty"`
	Preferences *string   `json:"preferences,omitempty"`
	Favorites   string    `json:"-"`
	IsVerified  bool      `gorm:"not null;default:false" json:"is_verified"`
	IsActive    bool      `gorm:"not null;default:true" json:"is_active"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return
}
