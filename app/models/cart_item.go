package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartItem keeps a unit price snapshot taken when the product was added,
// so later price changes do not affect lines already in the cart.
type CartItem struct {
	ID         string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	CartID     string          `gorm:"size:36;not null;index;uniqueIndex:idx_cart_product" json:"cart_id"`
	Cart       *Cart           `gorm:"foreignKey:CartID" json:"-"`
	ProductID  string          `gorm:"size:36;not null;index;uniqueIndex:idx_cart_product" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Qty        int             `gorm:"not null" json:"qty"`
	BasePrice  decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"base_price"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"subtotal"`
	TaxPercent decimal.Decimal `gorm:"type:decimal(10,2)" json:"tax_percent"`
	TaxAmount  decimal.Decimal `gorm:"type:decimal(16,2)" json:"tax_amount"`
	GrandTotal decimal.Decimal `gorm:"type:decimal(16,2)" json:"grand_total"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if ci.ID == "" {
		ci.ID = uuid.New().String()
	}
	return
}
