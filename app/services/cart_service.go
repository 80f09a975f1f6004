package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
	"github.com/bulanstore/bulan-api/app/utils/calc"
)

var (
	ErrCartEmpty         = errors.New("cart is empty")
	ErrCartItemNotFound  = errors.New("cart item not found")
	ErrInsufficientStock = errors.New("insufficient product stock")
)

type CartService struct {
	cartRepo     repositories.CartRepository
	cartItemRepo repositories.CartItemRepository
	productRepo  repositories.ProductRepository
}

func NewCartService(
	cartRepo repositories.CartRepository,
	cartItemRepo repositories.CartItemRepository,
	productRepo repositories.ProductRepository,
) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

// GetUserCart returns the user's cart with items, creating an empty cart on
// first access.
func (s *CartService) GetUserCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	full, err := s.cartRepo.GetCartWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if full == nil {
		return cart, nil
	}
	return full, nil
}

// AddItem puts a product in the cart. Adding a product that is already there
// merges the quantities but keeps the price captured when the line was first
// created.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error) {
	if qty <= 0 {
		qty = 1
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil || !product.IsAvailable {
		return nil, ErrProductNotFound
	}

	cart, err := s.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	existing, err := s.cartItemRepo.GetByCartAndProduct(ctx, cart.ID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart item: %w", err)
	}

	wantQty := qty
	if existing != nil {
		wantQty += existing.Qty
	}
	if !product.InStock(wantQty) {
		return nil, ErrInsufficientStock
	}

	if existing != nil {
		existing.Qty = wantQty
		s.applyItemTotals(existing)
		if err := s.cartItemRepo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := &models.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Qty:       qty,
			BasePrice: product.Price,
		}
		s.applyItemTotals(item)
		if err := s.cartItemRepo.Add(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to update cart summary: %w", err)
	}
	return s.GetUserCart(ctx, userID)
}

// UpdateItem changes the quantity of a cart line. A quantity of zero or less
// removes the line.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, qty int) (*models.Cart, error) {
	cart, item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if qty <= 0 {
		if err := s.cartItemRepo.Delete(ctx, item.ID); err != nil {
			return nil, fmt.Errorf("failed to remove cart item: %w", err)
		}
	} else {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up product: %w", err)
		}
		if product == nil || !product.InStock(qty) {
			return nil, ErrInsufficientStock
		}

		item.Qty = qty
		s.applyItemTotals(item)
		if err := s.cartItemRepo.Update(ctx, item); err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to update cart summary: %w", err)
	}
	return s.GetUserCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*models.Cart, error) {
	cart, item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := s.cartItemRepo.Delete(ctx, item.ID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	if err := s.cartRepo.UpdateCartSummary(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("failed to update cart summary: %w", err)
	}
	return s.GetUserCart(ctx, userID)
}

func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil
	}
	return s.cartRepo.DeleteCart(ctx, cart.ID)
}

// ownedItem loads a cart item and verifies it belongs to the user's cart.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID string) (*models.Cart, *models.CartItem, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, nil, ErrCartItemNotFound
	}

	item, err := s.cartItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up cart item: %w", err)
	}
	if item == nil || item.CartID != cart.ID {
		return nil, nil, ErrCartItemNotFound
	}
	return cart, item, nil
}

func (s *CartService) applyItemTotals(item *models.CartItem) {
	item.Subtotal = calc.LineSubtotal(item.BasePrice, item.Qty)
	item.TaxPercent = calc.TaxPercent()
	item.TaxAmount = calc.CalculateTax(item.Subtotal, item.TaxPercent)
	item.GrandTotal = calc.CalculateGrandTotal(item.Subtotal, item.TaxAmount)
}
