package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCategoryService() (*CategoryService, *mockCategoryRepo) {
	repo := newMockCategoryRepo()
	return NewCategoryService(repo), repo
}

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestCategoryService_Create(t *testing.T) {
	svc, _ := newTestCategoryService()

	category, err := svc.Create(context.Background(), CategoryInput{Name: "Home Kitchen"})
	require.NoError(t, err)
	assert.NotEmpty(t, category.ID)
	assert.Equal(t, "home-kitchen", category.Slug)
	assert.True(t, category.IsActive)
	assert.Nil(t, category.ParentID)
}

func TestCategoryService_Create_DuplicateName(t *testing.T) {
	svc, _ := newTestCategoryService()
	_, err := svc.Create(context.Background(), CategoryInput{Name: "Books"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), CategoryInput{Name: "Books"})
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
}

func TestCategoryService_Create_WithParent(t *testing.T) {
	svc, _ := newTestCategoryService()
	parent, err := svc.Create(context.Background(), CategoryInput{Name: "Electronics"})
	require.NoError(t, err)

	child, err := svc.Create(context.Background(), CategoryInput{Name: "Phones", ParentID: &parent.ID})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, parent.ID, *child.ParentID)
}

func TestCategoryService_Create_MissingParent(t *testing.T) {
	svc, _ := newTestCategoryService()
	_, err := svc.Create(context.Background(), CategoryInput{Name: "Phones", ParentID: strPtr("nope")})
	assert.ErrorIs(t, err, ErrCategoryParentNotFound)
}

func TestCategoryService_Update(t *testing.T) {
	svc, _ := newTestCategoryService()
	category, err := svc.Create(context.Background(), CategoryInput{Name: "Books"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), category.ID, CategoryInput{
		Name:     "Used Books",
		IsActive: boolPtr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Used Books", updated.Name)
	assert.Equal(t, "used-books", updated.Slug)
	assert.False(t, updated.IsActive)
}

func TestCategoryService_Update_NameTaken(t *testing.T) {
	svc, _ := newTestCategoryService()
	_, err := svc.Create(context.Background(), CategoryInput{Name: "Books"})
	require.NoError(t, err)
	category, err := svc.Create(context.Background(), CategoryInput{Name: "Toys"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), category.ID, CategoryInput{Name: "Books"})
	assert.ErrorIs(t, err, ErrCategoryNameTaken)
}

func TestCategoryService_Update_SelfParent(t *testing.T) {
	svc, _ := newTestCategoryService()
	category, err := svc.Create(context.Background(), CategoryInput{Name: "Books"})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), category.ID, CategoryInput{ParentID: &category.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)
}

func TestCategoryService_Update_ParentCycle(t *testing.T) {
	svc, _ := newTestCategoryService()
	root, err := svc.Create(context.Background(), CategoryInput{Name: "Root"})
	require.NoError(t, err)
	child, err := svc.Create(context.Background(), CategoryInput{Name: "Child", ParentID: &root.ID})
	require.NoError(t, err)

	// reparenting the root under its own child closes a loop
	_, err = svc.Update(context.Background(), root.ID, CategoryInput{ParentID: &child.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)
}

func TestCategoryService_Delete(t *testing.T) {
	svc, repo := newTestCategoryService()
	category, err := svc.Create(context.Background(), CategoryInput{Name: "Books"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), category.ID))
	assert.Empty(t, repo.categories)
}

func TestCategoryService_Delete_WithProducts(t *testing.T) {
	svc, repo := newTestCategoryService()
	category, err := svc.Create(context.Background(), CategoryInput{Name: "Books"})
	require.NoError(t, err)
	repo.productCount[category.ID] = 3

	assert.ErrorIs(t, svc.Delete(context.Background(), category.ID), ErrCategoryHasProducts)
}

func TestCategoryService_Get_NotFound(t *testing.T) {
	svc, _ := newTestCategoryService()
	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
