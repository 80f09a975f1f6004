package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hashed, err := HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hashed)

	assert.True(t, PasswordCompare(hashed, []byte("secret-password")))
	assert.False(t, PasswordCompare(hashed, []byte("wrong")))
}

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "wireless-mouse", GenerateSlug("Wireless Mouse"))
	assert.Equal(t, "cafe-racer", GenerateSlug("Café Racer"))
}

func TestOrderNumber(t *testing.T) {
	number := OrderNumber("d8f3a2b1-4c5e-6f70-8192-a3b4c5d6e7f8")
	assert.Equal(t, "ORD-D8F3A2B1", number)

	// short ids are used as-is
	assert.Equal(t, "ORD-AB12", OrderNumber("ab12"))
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?limit=25&offset=50", nil)
	limit, offset := ParsePagination(r)
	assert.Equal(t, 25, limit)
	assert.Equal(t, 50, offset)
}

func TestParsePagination_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/products", nil)
	limit, offset := ParsePagination(r)
	assert.Equal(t, DefaultPageLimit, limit)
	assert.Equal(t, 0, offset)
}

func TestParsePagination_Bounds(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?limit=5000&offset=-3", nil)
	limit, offset := ParsePagination(r)
	assert.Equal(t, MaxPageLimit, limit)
	assert.Equal(t, 0, offset)

	// garbage falls back to the default
	r = httptest.NewRequest("GET", "/products?limit=abc", nil)
	limit, _ = ParsePagination(r)
	assert.Equal(t, DefaultPageLimit, limit)
}
