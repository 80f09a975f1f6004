package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCanceled   OrderStatus = "canceled"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusSettled = "settled"
	PaymentStatusFailed  = "failed"
)

// orderStatusTransitions is the full lifecycle. Statuses only move forward;
// cancellation is terminal and only reachable before shipment.
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCanceled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCanceled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCanceled:   {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderStatusTransitions[s]
	return ok
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID                string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID            string          `gorm:"size:36;not null;index" json:"user_id"`
	User              *User           `gorm:"foreignKey:UserID" json:"-"`
	Number            string          `gorm:"size:50;not null;uniqueIndex" json:"number"`
	Status            OrderStatus     `gorm:"size:20;not null;default:'pending'" json:"status"`
	OrderDate         time.Time       `gorm:"not null" json:"order_date"`
	OrderItems        []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"total_amount"`
	ShippingAddressID string          `gorm:"size:36;not null;index" json:"shipping_address_id"`
	ShippingAddress   *Address        `gorm:"foreignKey:ShippingAddressID" json:"shipping_address,omitempty"`
	BillingAddressID  string          `gorm:"size:36;not null;index" json:"billing_address_id"`
	BillingAddress    *Address        `gorm:"foreignKey:BillingAddressID" json:"billing_address,omitempty"`

	PaymentStatus         string `gorm:"size:50;default:'pending'" json:"payment_status"`
	MidtransTransactionID string `gorm:"size:255;index" json:"-"`
	MidtransPaymentURL    string `gorm:"type:text" json:"payment_url,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}
