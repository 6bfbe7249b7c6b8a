package utils

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")

	assert.Equal(t, nil, err)
	assert.NotEqual(t, "hunter22", hash)
	assert.Equal(t, true, CheckPassword("hunter22", hash))
	assert.Equal(t, false, CheckPassword("hunter23", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT("test-secret", "reader@example.com", time.Hour)
	assert.Equal(t, nil, err)
	assert.Equal(t, "Bearer ", token[:7])

	email, err := ParseJWT("test-secret", token)

	assert.Equal(t, nil, err)
	assert.Equal(t, "reader@example.com", email)
}

func TestParseJWT_WrongSecret(t *testing.T) {
	token, _ := GenerateJWT("test-secret", "reader@example.com", time.Hour)

	_, err := ParseJWT("other-secret", token)

	assert.NotEqual(t, nil, err)
}

func TestParseJWT_Expired(t *testing.T) {
	token, _ := GenerateJWT("test-secret", "reader@example.com", -time.Minute)

	_, err := ParseJWT("test-secret", token)

	assert.NotEqual(t, nil, err)
}

func TestJWT_MissingSecret(t *testing.T) {
	_, err := GenerateJWT("", "reader@example.com", time.Hour)
	assert.Equal(t, ErrMissingSecret, err)

	_, err = ParseJWT("", "Bearer abc")
	assert.Equal(t, ErrMissingSecret, err)
}
