package repositories

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/bulanstore/bulan-api/app/models"
)

type CartRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Cart, error)
	GetOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error)
	GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error)
	UpdateCartSummary(ctx context.Context, cartID string) error
	DeleteCart(ctx context.Context, cartID string) error
}

type gormCartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &gormCartRepository{db: db}
}

func (r *gormCartRepository) GetByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

func (r *gormCartRepository) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart != nil {
		return cart, nil
	}

	cart = &models.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

func (r *gormCartRepository) GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Preload("CartItems").
		Preload("CartItems.Product").
		First(&cart, "id = ?", cartID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// UpdateCartSummary recomputes the denormalized totals from the current items.
func (r *gormCartRepository) UpdateCartSummary(ctx context.Context, cartID string) error {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Find(&items).Error; err != nil {
		return err
	}

	var baseTotal, taxTotal, grandTotal decimal.Decimal
	for _, item := range items {
		baseTotal = baseTotal.Add(item.Subtotal)
		taxTotal = taxTotal.Add(item.TaxAmount)
		grandTotal = grandTotal.Add(item.GrandTotal)
	}

	var taxPercent decimal.Decimal
	if len(items) > 0 {
		taxPercent = items[0].TaxPercent
	}

	return r.db.WithContext(ctx).
		Model(&models.Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]interface{}{
			"base_total_price": baseTotal,
			"tax_percent":      taxPercent,
			"tax_amount":       taxTotal,
			"grand_total":      grandTotal,
		}).Error
}

func (r *gormCartRepository) DeleteCart(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, "id = ?", cartID).Error
	})
}
