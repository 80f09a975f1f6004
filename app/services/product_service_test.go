package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bulanstore/bulan-api/app/models"
)

func newTestProductService(t *testing.T) (*ProductService, *models.Category) {
	t.Helper()
	products := newMockProductRepo()
	categories := newMockCategoryRepo()
	category := &models.Category{Name: "Electronics", Slug: "electronics", IsActive: true}
	require.NoError(t, categories.Create(context.Background(), category))
	return NewProductService(products, categories), category
}

func productInput(category *models.Category) ProductInput {
	return ProductInput{
		Name:       "Wireless Mouse",
		Sku:        "WM-100",
		Price:      decimal.RequireFromString("29.99"),
		Stock:      10,
		CategoryID: category.ID,
	}
}

func TestProductService_Create(t *testing.T) {
	svc, category := newTestProductService(t)

	product, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, "wireless-mouse-wm-100", product.Slug)
	assert.True(t, product.IsAvailable)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("29.99")))
}

func TestProductService_Create_MissingCategory(t *testing.T) {
	svc, category := newTestProductService(t)
	input := productInput(category)
	input.CategoryID = "missing"

	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductService_Create_DuplicateSku(t *testing.T) {
	svc, category := newTestProductService(t)
	_, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	input := productInput(category)
	input.Name = "Another Mouse"
	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrSkuTaken)
}

func TestProductService_Create_DuplicateNameInCategory(t *testing.T) {
	svc, category := newTestProductService(t)
	_, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	input := productInput(category)
	input.Sku = "WM-200"
	_, err = svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrProductNameTaken)
}

func TestProductService_Create_NegativePrice(t *testing.T) {
	svc, category := newTestProductService(t)
	input := productInput(category)
	input.Price = decimal.RequireFromString("-1")

	_, err := svc.Create(context.Background(), input)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestProductService_Update_Partial(t *testing.T) {
	svc, category := newTestProductService(t)
	product, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	newPrice := decimal.RequireFromString("24.99")
	updated, err := svc.Update(context.Background(), product.ID, ProductUpdateInput{Price: &newPrice})
	require.NoError(t, err)

	// only the price changed
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "Wireless Mouse", updated.Name)
	assert.Equal(t, "WM-100", updated.Sku)
	assert.Equal(t, "wireless-mouse-wm-100", updated.Slug)
	assert.Equal(t, 10, updated.Stock)
}

func TestProductService_Update_RenameRegeneratesSlug(t *testing.T) {
	svc, category := newTestProductService(t)
	product, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), product.ID, ProductUpdateInput{Name: strPtr("Ergo Mouse")})
	require.NoError(t, err)
	assert.Equal(t, "Ergo Mouse", updated.Name)
	assert.Equal(t, "ergo-mouse-wm-100", updated.Slug)
}

func TestProductService_Update_NegativeStock(t *testing.T) {
	svc, category := newTestProductService(t)
	product, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	bad := -1
	_, err = svc.Update(context.Background(), product.ID, ProductUpdateInput{Stock: &bad})
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestProductService_Update_SkuTakenByOther(t *testing.T) {
	svc, category := newTestProductService(t)
	_, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	other := productInput(category)
	other.Name = "Keyboard"
	other.Sku = "KB-100"
	second, err := svc.Create(context.Background(), other)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), second.ID, ProductUpdateInput{Sku: strPtr("WM-100")})
	assert.ErrorIs(t, err, ErrSkuTaken)
}

func TestProductService_Update_MoveToMissingCategory(t *testing.T) {
	svc, category := newTestProductService(t)
	product, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), product.ID, ProductUpdateInput{CategoryID: strPtr("missing")})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestProductService_GetBySlug(t *testing.T) {
	svc, category := newTestProductService(t)
	product, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	found, err := svc.GetBySlug(context.Background(), product.Slug)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = svc.GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_Delete(t *testing.T) {
	svc, category := newTestProductService(t)
	product, err := svc.Create(context.Background(), productInput(category))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), product.ID))
	_, err = svc.Get(context.Background(), product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}
