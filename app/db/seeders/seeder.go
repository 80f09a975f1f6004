package seeders

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/bulanstore/bulan-api/app/db/fakers"
	"github.com/bulanstore/bulan-api/app/models"
)

const (
	adminEmail       = "admin@bulanstore.test"
	customersPerSeed = 5
	productsPerCat   = 8
)

var categoryNames = []string{"Electronics", "Books", "Home & Kitchen", "Toys", "Clothing"}

// Run fills the database with a demo catalog: one admin, a handful of
// customers and a few products per category. Safe to run repeatedly; the
// admin and categories are matched by their natural keys.
func Run(ctx context.Context, db *gorm.DB) error {
	admin := fakers.AdminFaker(adminEmail)
	if err := db.WithContext(ctx).
		FirstOrCreate(admin, "email = ?", adminEmail).Error; err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	for i := 0; i < customersPerSeed; i++ {
		if err := db.WithContext(ctx).Create(fakers.UserFaker()).Error; err != nil {
			return fmt.Errorf("failed to seed customer: %w", err)
		}
	}

	for _, name := range categoryNames {
		category := &models.Category{
			Name:     name,
			Slug:     slug.Make(name),
			IsActive: true,
		}
		if err := db.WithContext(ctx).
			FirstOrCreate(category, "name = ?", name).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", name, err)
		}

		for i := 0; i < productsPerCat; i++ {
			if err := db.WithContext(ctx).Create(fakers.ProductFaker(category)).Error; err != nil {
				return fmt.Errorf("failed to seed product in %s: %w", name, err)
			}
		}
	}

	return nil
}
