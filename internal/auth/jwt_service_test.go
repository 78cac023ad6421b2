package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	subjects := []string{
		"alice@example.com",
		"bob@example.com",
		"octocat@github.user.com",
	}

	for _, subject := range subjects {
		token, err := service.Issue(subject)
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		got, err := service.Validate(token)
		assert.NoError(t, err)
		assert.Equal(t, subject, got)
	}
}

func TestJWTService_Expired(t *testing.T) {
	// A negative TTL issues a token that is already past its expiry.
	service := NewJWTService("test-secret", -time.Minute)

	token, err := service.Issue("alice@example.com")
	assert.NoError(t, err)

	subject, err := service.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Empty(t, subject)
}

func TestJWTService_Malformed(t *testing.T) {
	service := NewJWTService("test-secret", time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		subject, err := service.Validate(garbage)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Empty(t, subject)
	}
}

func TestJWTService_WrongKey(t *testing.T) {
	issuer := NewJWTService("key-one", time.Hour)
	validator := NewJWTService("key-two", time.Hour)

	token, err := issuer.Issue("alice@example.com")
	assert.NoError(t, err)

	subject, err := validator.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, subject)
}
