package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddressInput() AddressInput {
	return AddressInput{
		FirstName:  "Test",
		LastName:   "User",
		Line1:      "1 Main St",
		City:       "Town",
		State:      "TS",
		PostalCode: "12345",
		Country:    "US",
	}
}

func TestAddressService_CreateAndGet(t *testing.T) {
	svc := NewAddressService(newMockAddressRepo())

	address, err := svc.Create(context.Background(), "user-1", testAddressInput())
	require.NoError(t, err)
	assert.NotEmpty(t, address.ID)
	assert.Equal(t, "user-1", address.UserID)

	got, err := svc.Get(context.Background(), "user-1", address.ID)
	require.NoError(t, err)
	assert.Equal(t, address.ID, got.ID)
}

func TestAddressService_Get_OtherUsersAddress(t *testing.T) {
	svc := NewAddressService(newMockAddressRepo())
	address, err := svc.Create(context.Background(), "user-1", testAddressInput())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), "user-2", address.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressService_List(t *testing.T) {
	svc := NewAddressService(newMockAddressRepo())
	_, err := svc.Create(context.Background(), "user-1", testAddressInput())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "user-2", testAddressInput())
	require.NoError(t, err)

	addresses, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, addresses, 1)
}

func TestAddressService_Update(t *testing.T) {
	svc := NewAddressService(newMockAddressRepo())
	address, err := svc.Create(context.Background(), "user-1", testAddressInput())
	require.NoError(t, err)

	input := testAddressInput()
	input.City = "New Town"
	updated, err := svc.Update(context.Background(), "user-1", address.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "New Town", updated.City)

	_, err = svc.Update(context.Background(), "user-2", address.ID, input)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestAddressService_Delete(t *testing.T) {
	svc := NewAddressService(newMockAddressRepo())
	address, err := svc.Create(context.Background(), "user-1", testAddressInput())
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), "user-2", address.ID), ErrAddressNotFound)

	require.NoError(t, svc.Delete(context.Background(), "user-1", address.ID))
	_, err = svc.Get(context.Background(), "user-1", address.ID)
	assert.ErrorIs(t, err, ErrAddressNotFound)
}
