package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type User struct {
	ID         string         `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	FirstName  string         `gorm:"size:100" json:"first_name"`
	LastName   string         `gorm:"size:100" json:"last_name"`
	Email      string         `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Phone      string         `gorm:"size:20" json:"phone,omitempty"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       string         `gorm:"size:20;default:'customer';not null" json:"role"`
	IsActive   bool           `gorm:"default:true;not null" json:"is_active"`
	IsVerified bool           `gorm:"default:false;not null" json:"is_verified"`
	Addresses  []Address      `gorm:"foreignKey:UserID" json:"addresses,omitempty"`
	Cart       *Cart          `gorm:"foreignKey:UserID" json:"-"`
	Orders     []Order        `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
