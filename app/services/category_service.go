package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
)

var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryNameTaken      = errors.New("category name is already taken")
	ErrCategoryHasProducts    = errors.New("category still has products")
	ErrCategoryParentNotFound = errors.New("parent category not found")
	ErrCategoryCycle          = errors.New("category parent would create a cycle")
)

type CategoryInput struct {
	Name     string
	ParentID *string
	IsActive *bool
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

func (s *CategoryService) Create(ctx context.Context, input CategoryInput) (*models.Category, error) {
	existing, err := s.categoryRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		return nil, ErrCategoryNameTaken
	}

	if input.ParentID != nil {
		parent, err := s.categoryRepo.GetByID(ctx, *input.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up parent category: %w", err)
		}
		if parent == nil {
			return nil, ErrCategoryParentNotFound
		}
	}

	category := &models.Category{
		Name:     input.Name,
		Slug:     helpers.GenerateSlug(input.Name),
		ParentID: input.ParentID,
		IsActive: true,
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, limit, offset int, search string) ([]models.Category, int64, error) {
	return s.categoryRepo.List(ctx, limit, offset, search)
}

func (s *CategoryService) Update(ctx context.Context, id string, input CategoryInput) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" && input.Name != category.Name {
		existing, err := s.categoryRepo.GetByName(ctx, input.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check category name: %w", err)
		}
		if existing != nil && existing.ID != category.ID {
			return nil, ErrCategoryNameTaken
		}
		category.Name = input.Name
		category.Slug = helpers.GenerateSlug(input.Name)
	}

	if input.ParentID != nil {
		if err := s.checkParent(ctx, category.ID, *input.ParentID); err != nil {
			return nil, err
		}
		category.ParentID = input.ParentID
	}

	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// checkParent verifies the new parent exists and that following its parent
// chain never returns to the category being updated.
func (s *CategoryService) checkParent(ctx context.Context, categoryID, parentID string) error {
	if parentID == categoryID {
		return ErrCategoryCycle
	}

	current := parentID
	for current != "" {
		parent, err := s.categoryRepo.GetByID(ctx, current)
		if err != nil {
			return fmt.Errorf("failed to walk category parents: %w", err)
		}
		if parent == nil {
			return ErrCategoryParentNotFound
		}
		if parent.ID == categoryID {
			return ErrCategoryCycle
		}
		if parent.ParentID == nil {
			break
		}
		current = *parent.ParentID
	}
	return nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.categoryRepo.CountProducts(ctx, category.ID)
	if err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if count > 0 {
		return ErrCategoryHasProducts
	}

	return s.categoryRepo.Delete(ctx, category.ID)
}
