package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"

	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
)

type mockUserRepo struct {
	users map[string]*models.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*models.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	return m.users[id], nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, limit, offset int) ([]models.User, int64, error) {
	var users []models.User
	for _, u := range m.users {
		users = append(users, *u)
	}
	return users, int64(len(users)), nil
}

type mockCategoryRepo struct {
	categories   map[string]*models.Category
	productCount map[string]int64
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{
		categories:   make(map[string]*models.Category),
		productCount: make(map[string]int64),
	}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*models.Category, error) {
	return m.categories[id], nil
}

func (m *mockCategoryRepo) GetByName(_ context.Context, name string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range m.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCategoryRepo) List(_ context.Context, limit, offset int, search string) ([]models.Category, int64, error) {
	var categories []models.Category
	for _, c := range m.categories {
		categories = append(categories, *c)
	}
	return categories, int64(len(categories)), nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category *models.Category) error {
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	delete(m.categories, id)
	return nil
}

func (m *mockCategoryRepo) CountProducts(_ context.Context, categoryID string) (int64, error) {
	return m.productCount[categoryID], nil
}

type mockProductRepo struct {
	products map[string]*models.Product
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[string]*models.Product)}
}

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id string) (*models.Product, error) {
	return m.products[id], nil
}

func (m *mockProductRepo) GetBySku(_ context.Context, sku string) (*models.Product, error) {
	for _, p := range m.products {
		if p.Sku == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepo) GetBySlug(_ context.Context, slug string) (*models.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepo) GetByNameAndCategory(_ context.Context, name, categoryID string) (*models.Product, error) {
	for _, p := range m.products {
		if p.Name == name && p.CategoryID == categoryID {
			return p, nil
		}
	}
	return nil, nil
}

func (m *mockProductRepo) List(_ context.Context, limit, offset int, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	var products []models.Product
	for _, p := range m.products {
		products = append(products, *p)
	}
	return products, int64(len(products)), nil
}

func (m *mockProductRepo) Update(_ context.Context, product *models.Product) error {
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Delete(_ context.Context, id string) error {
	delete(m.products, id)
	return nil
}

// mockCartStore backs both the cart and cart item repositories so tests see a
// single consistent view.
type mockCartStore struct {
	carts    map[string]*models.Cart
	items    map[string]*models.CartItem
	products *mockProductRepo
}

func newMockCartStore(products *mockProductRepo) *mockCartStore {
	return &mockCartStore{
		carts:    make(map[string]*models.Cart),
		items:    make(map[string]*models.CartItem),
		products: products,
	}
}

func (m *mockCartStore) GetByUserID(_ context.Context, userID string) (*models.Cart, error) {
	for _, c := range m.carts {
		if c.UserID == userID {
			return c, nil
		}
	}
	return nil, nil
}

func (m *mockCartStore) GetOrCreateByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	if cart, _ := m.GetByUserID(ctx, userID); cart != nil {
		return cart, nil
	}
	cart := &models.Cart{ID: uuid.New().String(), UserID: userID}
	m.carts[cart.ID] = cart
	return cart, nil
}

func (m *mockCartStore) GetCartWithItems(_ context.Context, cartID string) (*models.Cart, error) {
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, nil
	}
	loaded := *cart
	loaded.CartItems = nil
	for _, item := range m.items {
		if item.CartID != cartID {
			continue
		}
		withProduct := *item
		withProduct.Product = m.products.products[item.ProductID]
		loaded.CartItems = append(loaded.CartItems, withProduct)
	}
	return &loaded, nil
}

func (m *mockCartStore) UpdateCartSummary(_ context.Context, cartID string) error {
	cart, ok := m.carts[cartID]
	if !ok {
		return nil
	}
	base, tax, grand := decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range m.items {
		if item.CartID != cartID {
			continue
		}
		base = base.Add(item.Subtotal)
		tax = tax.Add(item.TaxAmount)
		grand = grand.Add(item.GrandTotal)
	}
	cart.BaseTotalPrice = base
	cart.TaxAmount = tax
	cart.GrandTotal = grand
	return nil
}

func (m *mockCartStore) DeleteCart(_ context.Context, cartID string) error {
	for id, item := range m.items {
		if item.CartID == cartID {
			delete(m.items, id)
		}
	}
	delete(m.carts, cartID)
	return nil
}

func (m *mockCartStore) Add(_ context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	m.items[item.ID] = item
	return nil
}

func (m *mockCartStore) Update(_ context.Context, item *models.CartItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockCartStore) GetByID(_ context.Context, id string) (*models.CartItem, error) {
	return m.items[id], nil
}

func (m *mockCartStore) GetByCartAndProduct(_ context.Context, cartID, productID string) (*models.CartItem, error) {
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductID == productID {
			return item, nil
		}
	}
	return nil, nil
}

func (m *mockCartStore) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

// mockOrderRepo mimics the transactional checkout write: it validates and
// decrements stock, persists the order and empties the cart in one call.
type mockOrderRepo struct {
	orders   map[string]*models.Order
	products *mockProductRepo
	carts    *mockCartStore
}

func newMockOrderRepo(products *mockProductRepo, carts *mockCartStore) *mockOrderRepo {
	return &mockOrderRepo{
		orders:   make(map[string]*models.Order),
		products: products,
		carts:    carts,
	}
}

func (m *mockOrderRepo) CreateFromCart(ctx context.Context, order *models.Order, items []models.OrderItem, cartID string) error {
	for _, item := range items {
		product := m.products.products[item.ProductID]
		if product == nil || product.Stock < item.Qty {
			return repositories.ErrInsufficientStock
		}
	}
	for i := range items {
		m.products.products[items[i].ProductID].Stock -= items[i].Qty
		items[i].OrderID = order.ID
	}
	stored := *order
	stored.OrderItems = items
	m.orders[order.ID] = &stored
	return m.carts.DeleteCart(ctx, cartID)
}

func (m *mockOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	return m.orders[id], nil
}

func (m *mockOrderRepo) GetByIDForUser(_ context.Context, id, userID string) (*models.Order, error) {
	order := m.orders[id]
	if order == nil || order.UserID != userID {
		return nil, nil
	}
	return order, nil
}

func (m *mockOrderRepo) FindByNumber(_ context.Context, number string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.Number == number {
			return o, nil
		}
	}
	return nil, nil
}

func (m *mockOrderRepo) FindByUserID(_ context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			orders = append(orders, *o)
		}
	}
	return orders, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, orderID string, status models.OrderStatus) error {
	if order, ok := m.orders[orderID]; ok {
		order.Status = status
	}
	return nil
}

func (m *mockOrderRepo) UpdatePaymentAndStatus(_ context.Context, orderID, paymentStatus string, status models.OrderStatus) error {
	if order, ok := m.orders[orderID]; ok {
		order.PaymentStatus = paymentStatus
		order.Status = status
	}
	return nil
}

func (m *mockOrderRepo) UpdateMidtransDetails(_ context.Context, orderID, transactionID, paymentURL string) error {
	if order, ok := m.orders[orderID]; ok {
		order.MidtransTransactionID = transactionID
		order.MidtransPaymentURL = paymentURL
	}
	return nil
}

type mockAddressRepo struct {
	addresses map[string]*models.Address
}

func newMockAddressRepo() *mockAddressRepo {
	return &mockAddressRepo{addresses: make(map[string]*models.Address)}
}

func (m *mockAddressRepo) Create(_ context.Context, address *models.Address) error {
	if address.ID == "" {
		address.ID = uuid.New().String()
	}
	m.addresses[address.ID] = address
	return nil
}

func (m *mockAddressRepo) FindByID(_ context.Context, id string) (*models.Address, error) {
	return m.addresses[id], nil
}

func (m *mockAddressRepo) FindByUserID(_ context.Context, userID string) ([]models.Address, error) {
	var addresses []models.Address
	for _, a := range m.addresses {
		if a.UserID == userID {
			addresses = append(addresses, *a)
		}
	}
	return addresses, nil
}

func (m *mockAddressRepo) Update(_ context.Context, address *models.Address) error {
	m.addresses[address.ID] = address
	return nil
}

func (m *mockAddressRepo) Delete(_ context.Context, id string) error {
	delete(m.addresses, id)
	return nil
}

type mockReviewRepo struct {
	reviews map[string]*models.Review
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]*models.Review)}
}

func (m *mockReviewRepo) Create(_ context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	m.reviews[review.ID] = review
	return nil
}

func (m *mockReviewRepo) GetByID(_ context.Context, id string) (*models.Review, error) {
	return m.reviews[id], nil
}

func (m *mockReviewRepo) GetByProductAndUser(_ context.Context, productID, userID string) (*models.Review, error) {
	for _, r := range m.reviews {
		if r.ProductID == productID && r.UserID == userID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockReviewRepo) ListByProduct(_ context.Context, productID string, limit, offset int, sort repositories.ReviewSort) ([]models.Review, int64, error) {
	var reviews []models.Review
	for _, r := range m.reviews {
		if r.ProductID == productID && r.IsVisible {
			reviews = append(reviews, *r)
		}
	}
	return reviews, int64(len(reviews)), nil
}

func (m *mockReviewRepo) Update(_ context.Context, review *models.Review) error {
	m.reviews[review.ID] = review
	return nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id string) error {
	delete(m.reviews, id)
	return nil
}

type mockBlocklist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMockBlocklist() *mockBlocklist {
	return &mockBlocklist{revoked: make(map[string]bool)}
}

func (m *mockBlocklist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[jti] = true
	return nil
}

func (m *mockBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revoked[jti], nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) SendHTMLEmail(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to)
	return nil
}

type fakeSnapGateway struct {
	resp *snap.Response
	err  *midtrans.Error
	last *snap.Request
}

func (f *fakeSnapGateway) CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &snap.Response{Token: "snap-token", RedirectURL: "https://app.sandbox.midtrans.com/snap/v3/pay"}, nil
}
