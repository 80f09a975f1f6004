package services

import (
	"context"
	"strings"
	"testing"

	"github.com/midtrans/midtrans-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulanstore/bulan-api/app/models"
)

type orderTestEnv struct {
	svc       *OrderService
	users     *mockUserRepo
	products  *mockProductRepo
	carts     *mockCartStore
	orders    *mockOrderRepo
	addresses *mockAddressRepo
	cartSvc   *CartService
}

func newOrderTestEnv() *orderTestEnv {
	users := newMockUserRepo()
	products := newMockProductRepo()
	carts := newMockCartStore(products)
	orders := newMockOrderRepo(products, carts)
	addresses := newMockAddressRepo()

	return &orderTestEnv{
		svc:       NewOrderService(orders, carts, addresses, users, nil, nil),
		users:     users,
		products:  products,
		carts:     carts,
		orders:    orders,
		addresses: addresses,
		cartSvc:   NewCartService(carts, carts, products),
	}
}

func (e *orderTestEnv) seedUserWithAddress(t *testing.T, userID string) *models.Address {
	t.Helper()
	require.NoError(t, e.users.Create(context.Background(), &models.User{
		ID:       userID,
		Email:    userID + "@example.com",
		IsActive: true,
	}))
	address := &models.Address{UserID: userID, Line1: "1 Main St", City: "Town", State: "TS", PostalCode: "12345", Country: "US"}
	require.NoError(t, e.addresses.Create(context.Background(), address))
	return address
}

func (e *orderTestEnv) fillCart(t *testing.T, userID string, price string, stock, qty int) *models.Product {
	t.Helper()
	product := seedProduct(e.products, price, stock)
	_, err := e.cartSvc.AddItem(context.Background(), userID, product.ID, qty)
	require.NoError(t, err)
	return product
}

func TestOrderService_Checkout(t *testing.T) {
	env := newOrderTestEnv()
	address := env.seedUserWithAddress(t, "user-1")
	product := env.fillCart(t, "user-1", "100.00", 5, 2)

	order, err := env.svc.Checkout(context.Background(), "user-1", CheckoutInput{
		ShippingAddressID: address.ID,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.Number, "ORD-"))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, address.ID, order.ShippingAddressID)
	// billing falls back to the shipping address
	assert.Equal(t, address.ID, order.BillingAddressID)
	assert.True(t, order.TotalAmount.Equal(decimal.RequireFromString("222.00")))

	require.Len(t, order.OrderItems, 1)
	item := order.OrderItems[0]
	assert.Equal(t, product.Name, item.ProductName)
	assert.Equal(t, 2, item.Qty)
	assert.True(t, item.BasePrice.Equal(decimal.RequireFromString("100.00")))

	// stock decremented, cart gone
	assert.Equal(t, 3, env.products.products[product.ID].Stock)
	assert.Empty(t, env.carts.carts)
	assert.Empty(t, env.carts.items)
}

func TestOrderService_Checkout_EmptyCart(t *testing.T) {
	env := newOrderTestEnv()
	address := env.seedUserWithAddress(t, "user-1")

	_, err := env.svc.Checkout(context.Background(), "user-1", CheckoutInput{
		ShippingAddressID: address.ID,
	})
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestOrderService_Checkout_ForeignAddress(t *testing.T) {
	env := newOrderTestEnv()
	env.seedUserWithAddress(t, "user-1")
	otherAddress := env.seedUserWithAddress(t, "user-2")
	env.fillCart(t, "user-1", "10.00", 5, 1)

	_, err := env.svc.Checkout(context.Background(), "user-1", CheckoutInput{
		ShippingAddressID: otherAddress.ID,
	})
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestOrderService_Checkout_InsufficientStock(t *testing.T) {
	env := newOrderTestEnv()
	address := env.seedUserWithAddress(t, "user-1")
	product := env.fillCart(t, "user-1", "10.00", 5, 3)

	// another buyer drains the stock between carting and checkout
	env.products.products[product.ID].Stock = 1

	_, err := env.svc.Checkout(context.Background(), "user-1", CheckoutInput{
		ShippingAddressID: address.ID,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// nothing was written
	assert.Empty(t, env.orders.orders)
	assert.NotEmpty(t, env.carts.items)
}

func TestOrderService_Checkout_SurvivesGatewayFailure(t *testing.T) {
	env := newOrderTestEnv()
	gateway := &fakeSnapGateway{err: &midtrans.Error{Message: "gateway down", StatusCode: 500}}
	env.svc.payments = NewPaymentService(gateway, env.orders, "server-key", "http://localhost")

	address := env.seedUserWithAddress(t, "user-1")
	env.fillCart(t, "user-1", "10.00", 5, 1)

	order, err := env.svc.Checkout(context.Background(), "user-1", CheckoutInput{
		ShippingAddressID: address.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, env.orders.orders, 1)
}

func TestOrderService_GetOrder_Scoping(t *testing.T) {
	env := newOrderTestEnv()
	address := env.seedUserWithAddress(t, "user-1")
	env.fillCart(t, "user-1", "10.00", 5, 1)

	order, err := env.svc.Checkout(context.Background(), "user-1", CheckoutInput{
		ShippingAddressID: address.ID,
	})
	require.NoError(t, err)

	got, err := env.svc.GetOrder(context.Background(), order.ID, "user-1", false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = env.svc.GetOrder(context.Background(), order.ID, "user-2", false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	// admin sees everything
	_, err = env.svc.GetOrder(context.Background(), order.ID, "user-2", true)
	require.NoError(t, err)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	env := newOrderTestEnv()
	address := env.seedUserWithAddress(t, "user-1")
	env.fillCart(t, "user-1", "10.00", 5, 1)
	order, err := env.svc.Checkout(context.Background(), "user-1", CheckoutInput{
		ShippingAddressID: address.ID,
	})
	require.NoError(t, err)

	updated, err := env.svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)

	_, err = env.svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusShipped)
	require.NoError(t, err)

	// shipped orders cannot be canceled
	_, err = env.svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusCanceled)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestOrderService_UpdateStatus_UnknownStatus(t *testing.T) {
	env := newOrderTestEnv()
	_, err := env.svc.UpdateStatus(context.Background(), "any", models.OrderStatus("refunded"))
	assert.ErrorIs(t, err, ErrInvalidOrderStatus)
}

func TestOrderService_ListUserOrders(t *testing.T) {
	env := newOrderTestEnv()
	address := env.seedUserWithAddress(t, "user-1")
	env.fillCart(t, "user-1", "10.00", 5, 1)
	_, err := env.svc.Checkout(context.Background(), "user-1", CheckoutInput{
		ShippingAddressID: address.ID,
	})
	require.NoError(t, err)

	orders, err := env.svc.ListUserOrders(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	orders, err = env.svc.ListUserOrders(context.Background(), "user-2")
	require.NoError(t, err)
	assert.Empty(t, orders)
}
