package fakers

import (
	"math/rand"
	"strings"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/bulanstore/bulan-api/app/models"
)

// ProductFaker builds a product in the given category. Sku and slug carry a
// random suffix so repeated seeding never collides with earlier rows.
func ProductFaker(category *models.Category) *models.Product {
	name := faker.Word() + " " + faker.Word()
	suffix := uuid.NewString()[:6]

	return &models.Product{
		CategoryID:  category.ID,
		Name:        name + " " + suffix,
		Slug:        slug.Make(name + "-" + suffix),
		Sku:         strings.ToUpper("SKU-" + suffix),
		Description: faker.Paragraph(),
		Price:       fakePrice(),
		Stock:       rand.Intn(50) + 1,
		IsAvailable: true,
	}
}

func fakePrice() decimal.Decimal {
	cents := rand.Intn(99000) + 100
	return decimal.NewFromInt(int64(cents)).Div(decimal.NewFromInt(100))
}
