package utils

import (
	"os"
	"testing"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGenerateAndValidateToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{
		Model: gorm.Model{ID: 42},
		Email: "alice@example.com",
		Role:  models.RoleTourist,
	}

	tokenString, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := ValidateToken(tokenString)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["id"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, "tourist", claims["role"])
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")

	user := &models.User{Model: gorm.Model{ID: 1}, Email: "a@b.com", Role: models.RoleGuide}
	tokenString, err := GenerateToken(user)
	require.NoError(t, err)

	os.Setenv("JWT_SECRET", "another-secret")
	defer os.Setenv("JWT_SECRET", "test-secret")

	token, err := ValidateToken(tokenString)
	if err == nil {
		assert.False(t, token.Valid)
	} else {
		assert.Error(t, err)
	}
}
