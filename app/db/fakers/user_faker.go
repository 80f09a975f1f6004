package fakers

import (
	"log"

	"github.com/go-faker/faker/v4"

	"github.com/bulanstore/bulan-api/app/helpers"
	"github.com/bulanstore/bulan-api/app/models"
)

// UserFaker builds a customer account with the shared demo password.
func UserFaker() *models.User {
	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatal("failed to hash faker password:", err)
	}

	return &models.User{
		Email:      faker.Email(),
		Password:   hash,
		FirstName:  faker.FirstName(),
		LastName:   faker.LastName(),
		Phone:      faker.Phonenumber(),
		Role:       models.RoleCustomer,
		IsActive:   true,
		IsVerified: true,
	}
}

func AdminFaker(email string) *models.User {
	user := UserFaker()
	user.Email = email
	user.Role = models.RoleAdmin
	return user
}
