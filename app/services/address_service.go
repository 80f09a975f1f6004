package services

import (
	"context"
	"fmt"

	"github.com/bulanstore/bulan-api/app/models"
	"github.com/bulanstore/bulan-api/app/repositories"
)

type AddressInput struct {
	FirstName  string
	LastName   string
	Company    string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

// AddressService manages a user's address book. Every operation is scoped to
// the owner; an address belonging to someone else reads as not found.
type AddressService struct {
	addressRepo repositories.AddressRepository
}

func NewAddressService(addressRepo repositories.AddressRepository) *AddressService {
	return &AddressService{addressRepo: addressRepo}
}

func (s *AddressService) Create(ctx context.Context, userID string, input AddressInput) (*models.Address, error) {
	address := &models.Address{
		UserID:     userID,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Company:    input.Company,
		Line1:      input.Line1,
		Line2:      input.Line2,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
		Phone:      input.Phone,
	}
	if err := s.addressRepo.Create(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to create address: %w", err)
	}
	return address, nil
}

func (s *AddressService) Get(ctx context.Context, userID, addressID string) (*models.Address, error) {
	address, err := s.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up address: %w", err)
	}
	if address == nil || address.UserID != userID {
		return nil, ErrAddressNotFound
	}
	return address, nil
}

func (s *AddressService) List(ctx context.Context, userID string) ([]models.Address, error) {
	addresses, err := s.addressRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addresses, nil
}

func (s *AddressService) Update(ctx context.Context, userID, addressID string, input AddressInput) (*models.Address, error) {
	address, err := s.Get(ctx, userID, addressID)
	if err != nil {
		return nil, err
	}

	address.FirstName = input.FirstName
	address.LastName = input.LastName
	address.Company = input.Company
	address.Line1 = input.Line1
	address.Line2 = input.Line2
	address.City = input.City
	address.State = input.State
	address.PostalCode = input.PostalCode
	address.Country = input.Country
	address.Phone = input.Phone

	if err := s.addressRepo.Update(ctx, address); err != nil {
		return nil, fmt.Errorf("failed to update address: %w", err)
	}
	return address, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, addressID string) error {
	address, err := s.Get(ctx, userID, addressID)
	if err != nil {
		return err
	}
	return s.addressRepo.Delete(ctx, address.ID)
}
