package services_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"photo-delivery-backend/internal/services"
)

func TestGenerateDeliveryToken_URLSafe(t *testing.T) {
	token, err := services.GenerateDeliveryToken()
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	// base64url without padding
	assert.False(t, strings.ContainsAny(token, "+/="))
}

func TestGenerateDeliveryToken_Length(t *testing.T) {
	token, err := services.GenerateDeliveryToken()
	assert.NoError(t, err)
	// 32 random bytes encode to 43 characters
	assert.Len(t, token, 43)
}

func TestGenerateDeliveryToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := services.GenerateDeliveryToken()
		assert.NoError(t, err)
		assert.False(t, seen[token], "token collision")
		seen[token] = true
	}
}
