package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("product already reviewed by this user")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
)

type ReviewInput struct {
	Rating  int
	Comment string
}

type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, productRepo repositories.ProductRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// Create adds a review for a product. A user gets one review per product;
// editing goes through Update.
func (s *ReviewService) Create(ctx context.Context, userID, productID string, input ReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.reviewRepo.GetByProductAndUser(ctx, productID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		IsVisible: true,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string, limit, offset int, sort repositories.ReviewSort) ([]models.Review, int64, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		return nil, 0, ErrProductNotFound
	}
	return s.reviewRepo.ListByProduct(ctx, productID, limit, offset, sort)
}

func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, input ReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up review: %w", err)
	}
	if review == nil || review.UserID != userID {
		return nil, ErrReviewNotFound
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return review, nil
}

// Delete removes a review. Owners delete their own; admins delete any.
func (s *ReviewService) Delete(ctx context.Context, userID, reviewID string, isAdmin bool) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return fmt.Errorf("failed to look up review: %w", err)
	}
	if review == nil {
		return ErrReviewNotFound
	}
	if !isAdmin && review.UserID != userID {
		return ErrReviewNotFound
	}
	return s.reviewRepo.Delete(ctx, review.ID)
}
