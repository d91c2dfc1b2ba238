package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "password123"
	hashed, err := HashPassword(password, bcrypt.MinCost)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashed)
	assert.NotEqual(t, password, hashed)
}

func TestComparePassword(t *testing.T) {
	password := "password123"
	hashed, _ := HashPassword(password, bcrypt.MinCost)

	assert.NoError(t, ComparePassword(hashed, password))
	assert.Error(t, ComparePassword(hashed, "wrongpassword"))
}

func TestComparePassword_InvalidHash(t *testing.T) {
	assert.Error(t, ComparePassword("invalidhash", "password123"))
}
