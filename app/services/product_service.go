package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrSkuTaken         = errors.New("sku is already taken")
	ErrProductNameTaken = errors.New("product with this name already exists in the category")
	ErrNegativeAmount   = errors.New("price and stock must be non-negative")
)

type ProductInput struct {
	Name        string
	Sku         string
	Description string
	Price       decimal.Decimal
	Stock       int
	CategoryID  string
	IsAvailable *bool
}

// ProductUpdateInput uses pointers so absent fields are left untouched.
type ProductUpdateInput struct {
	Name        *string
	Sku         *string
	Description *string
	Price       *decimal.Decimal
	Stock       *int
	CategoryID  *string
	IsAvailable *bool
}

type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if input.Price.IsNegative() || input.Stock < 0 {
		return nil, ErrNegativeAmount
	}

	category, err := s.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if err := s.checkUniqueness(ctx, input.Sku, input.Name, input.CategoryID, ""); err != nil {
		return nil, err
	}

	product := &models.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Slug:        helpers.GenerateSlug(input.Name + "-" + input.Sku),
		Sku:         input.Sku,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		IsAvailable: true,
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) checkUniqueness(ctx context.Context, sku, name, categoryID, selfID string) error {
	if sku != "" {
		existing, err := s.productRepo.GetBySku(ctx, sku)
		if err != nil {
			return fmt.Errorf("failed to check sku: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return ErrSkuTaken
		}
	}

	if name != "" && categoryID != "" {
		existing, err := s.productRepo.GetByNameAndCategory(ctx, name, categoryID)
		if err != nil {
			return fmt.Errorf("failed to check product name: %w", err)
		}
		if existing != nil && existing.ID != selfID {
			return ErrProductNameTaken
		}
	}
	return nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, limit, offset int, filter repositories.ProductFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(ctx, limit, offset, filter)
}

func (s *ProductService) Update(ctx context.Context, id string, input ProductUpdateInput) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Price != nil && input.Price.IsNegative() {
		return nil, ErrNegativeAmount
	}
	if input.Stock != nil && *input.Stock < 0 {
		return nil, ErrNegativeAmount
	}

	categoryID := product.CategoryID
	if input.CategoryID != nil && *input.CategoryID != product.CategoryID {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up category: %w", err)
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		categoryID = *input.CategoryID
	}

	name := product.Name
	if input.Name != nil {
		name = *input.Name
	}
	sku := product.Sku
	if input.Sku != nil {
		sku = *input.Sku
	}
	if err := s.checkUniqueness(ctx, sku, name, categoryID, product.ID); err != nil {
		return nil, err
	}

	product.CategoryID = categoryID
	if name != product.Name || sku != product.Sku {
		product.Slug = helpers.GenerateSlug(name + "-" + sku)
	}
	product.Name = name
	product.Sku = sku
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, product.ID)
}
