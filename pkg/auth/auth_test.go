package auth_test

import (
	"testing"
	"time"

	"github.com/sliceline/pizzeria/pkg/auth"
	"github.com/stretchr/testify/assert"
)

func TestHashPassword_VerifiesOnlyOriginal(t *testing.T) {
	hash, err := auth.HashPassword("password")
	assert.NoError(t, err)
	assert.NotEqual(t, "password", hash)

	assert.True(t, auth.CheckPassword(hash, "password"))
	assert.False(t, auth.CheckPassword(hash, "Password"))
	assert.False(t, auth.CheckPassword(hash, ""))
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", 30*time.Minute)

	token, err := issuer.Generate("johndoe")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := issuer.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, "johndoe", claims.Username)
}

func TestTokenIssuer_RejectsExpired(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -1*time.Minute)

	token, err := issuer.Generate("johndoe")
	assert.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsForeignSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", 30*time.Minute)
	other := auth.NewTokenIssuer("other-secret", 30*time.Minute)

	token, err := other.Generate("johndoe")
	assert.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsGarbage(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", 30*time.Minute)

	_, err := issuer.Validate("")
	assert.Error(t, err)

	_, err = issuer.Validate("not.a.token")
	assert.Error(t, err)
}
