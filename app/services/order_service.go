package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
)

var (
	ErrOrderNotFound            = errors.New("order not found")
	ErrInvalidOrderStatus       = errors.New("unknown order status")
	ErrInvalidStatusTransition  = errors.New("order status transition not allowed")
	ErrAddressNotFound          = errors.New("address not found")
	ErrProductNoLongerAvailable = errors.New("a cart product is no longer available")
)

type CheckoutInput struct {
	ShippingAddressID string
	BillingAddressID  string
}

type OrderService struct {
	orderRepo   repositories.OrderRepository
	cartRepo    repositories.CartRepository
	addressRepo repositories.AddressRepository
	userRepo    repositories.UserRepository
	payments    *PaymentService
	mailer      EmailSender
}

func NewOrderService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	addressRepo repositories.AddressRepository,
	userRepo repositories.UserRepository,
	payments *PaymentService,
	mailer EmailSender,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		addressRepo: addressRepo,
		userRepo:    userRepo,
		payments:    payments,
		mailer:      mailer,
	}
}

// Checkout converts the user's cart into a pending order. Stock is checked
// and decremented inside one transaction, so two buyers racing for the last
// unit cannot both succeed. The payment transaction is initiated after the
// order is committed; a gateway failure leaves the order pending so payment
// can be retried.
func (s *OrderService) Checkout(ctx context.Context, userID string, input CheckoutInput) (*models.Order, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartEmpty
	}
	full, err := s.cartRepo.GetCartWithItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart items: %w", err)
	}
	if full == nil || len(full.CartItems) == 0 {
		return nil, ErrCartEmpty
	}

	shippingID, err := s.ownedAddressID(ctx, userID, input.ShippingAddressID)
	if err != nil {
		return nil, err
	}
	billingID := shippingID
	if input.BillingAddressID != "" {
		billingID, err = s.ownedAddressID(ctx, userID, input.BillingAddressID)
		if err != nil {
			return nil, err
		}
	}

	items := make([]models.OrderItem, 0, len(full.CartItems))
	for _, cartItem := range full.CartItems {
		product := cartItem.Product
		if product == nil || !product.IsAvailable {
			return nil, ErrProductNoLongerAvailable
		}
		if product.Stock < cartItem.Qty {
			return nil, ErrInsufficientStock
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSku:  product.Sku,
			Qty:         cartItem.Qty,
			BasePrice:   cartItem.BasePrice,
			Subtotal:    cartItem.Subtotal,
		})
	}

	orderID := uuid.New().String()
	order := &models.Order{
		ID:                orderID,
		UserID:            userID,
		Number:            helpers.OrderNumber(orderID),
		Status:            models.OrderStatusPending,
		OrderDate:         time.Now(),
		TotalAmount:       full.GrandTotal,
		ShippingAddressID: shippingID,
		BillingAddressID:  billingID,
		PaymentStatus:     models.PaymentStatusPending,
	}

	if err := s.orderRepo.CreateFromCart(ctx, order, items, full.ID); err != nil {
		if errors.Is(err, repositories.ErrInsufficientStock) {
			return nil, ErrInsufficientStock
		}
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.OrderItems = items

	if s.payments != nil {
		if _, err := s.payments.CreateTransaction(ctx, order, user); err != nil {
			zap.L().Warn("payment transaction not initiated",
				zap.String("order_number", order.Number), zap.Error(err))
		}
	}

	s.sendConfirmationEmail(user, order)

	return order, nil
}

func (s *OrderService) ownedAddressID(ctx context.Context, userID, addressID string) (string, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return "", fmt.Errorf("failed to look up address: %w", err)
	}
	if address == nil || address.UserID != userID {
		return "", ErrAddressNotFound
	}
	return address.ID, nil
}

func (s *OrderService) sendConfirmationEmail(user *models.User, order *models.Order) {
	if s.mailer == nil {
		return
	}
	subject := fmt.Sprintf("Order %s confirmed", order.Number)
	body := BuildOrderConfirmationBody(order)
	go func() {
		if err := s.mailer.SendHTMLEmail(user.Email, subject, body); err != nil {
			zap.L().Warn("order confirmation email not sent",
				zap.String("order_number", order.Number), zap.Error(err))
		}
	}()
}

func (s *OrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// GetOrder returns a single order. Non-admin callers only see their own.
func (s *OrderService) GetOrder(ctx context.Context, orderID, userID string, isAdmin bool) (*models.Order, error) {
	var order *models.Order
	var err error
	if isAdmin {
		order, err = s.orderRepo.GetByID(ctx, orderID)
	} else {
		order, err = s.orderRepo.GetByIDForUser(ctx, orderID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateStatus moves an order along its lifecycle, rejecting any jump the
// transition table does not allow.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, order.Status, next)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, next); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	order.Status = next
	return order, nil
}
