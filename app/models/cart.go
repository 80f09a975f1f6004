package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart holds a user's pending selection. A user owns at most one cart,
// enforced by the unique index on user_id.
type Cart struct {
	ID             string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID         string          `gorm:"size:36;not null;uniqueIndex" json:"user_id"`
	User           *User           `gorm:"foreignKey:UserID" json:"-"`
	CartItems      []CartItem      `gorm:"foreignKey:CartID" json:"items"`
	BaseTotalPrice decimal.Decimal `gorm:"type:decimal(16,2)" json:"base_total_price"`
	TaxPercent     decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax_percent"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(16,2)" json:"tax_amount"`
	GrandTotal     decimal.Decimal `gorm:"type:decimal(16,2)" json:"grand_total"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
