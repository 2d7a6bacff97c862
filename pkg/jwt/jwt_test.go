package jwt

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-32b"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateAndValidate(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := NewManager(testSecret, "bookstore", 5*time.Minute, WithClock(fixedClock(now)))

	token, err := m.Generate("jane@example.com", "acc-1", []string{"Administrator", "Customer"})
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Subject)
	assert.Equal(t, "acc-1", claims.NameID)
	assert.Equal(t, []string{"Administrator", "Customer"}, claims.Roles)
	assert.Equal(t, "bookstore", claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{"bookstore"}, claims.Audience)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, now.Add(5*time.Minute).Unix(), claims.ExpiresAt.Unix())
}

func TestGenerateUsesFreshNonce(t *testing.T) {
	m := NewManager(testSecret, "bookstore", time.Minute)

	a, err := m.Generate("x@y.com", "1", nil)
	require.NoError(t, err)
	b, err := m.Generate("x@y.com", "1", nil)
	require.NoError(t, err)

	ca, err := m.Validate(a)
	require.NoError(t, err)
	cb, err := m.Validate(b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
	assert.Empty(t, ca.Roles)
}

func TestValidateExpired(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	signer := NewManager(testSecret, "bookstore", 5*time.Minute, WithClock(fixedClock(issued)))
	token, err := signer.Generate("x@y.com", "1", []string{"Customer"})
	require.NoError(t, err)

	later := NewManager(testSecret, "bookstore", 5*time.Minute, WithClock(fixedClock(issued.Add(6*time.Minute))))
	_, err = later.Validate(token)
	assert.ErrorIs(t, err, ErrExpired)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestValidateInvalid(t *testing.T) {
	m := NewManager(testSecret, "bookstore", time.Minute)
	good, err := m.Generate("x@y.com", "1", nil)
	require.NoError(t, err)

	otherKey := NewManager("another-secret-that-is-long-enough", "bookstore", time.Minute)
	forged, err := otherKey.Generate("x@y.com", "1", []string{"Administrator"})
	require.NoError(t, err)

	otherIssuer := NewManager(testSecret, "someone-else", time.Minute)
	foreign, err := otherIssuer.Generate("x@y.com", "1", nil)
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(`{"nameid":"2","roles":["Administrator"]}`)) + "." + parts[2]

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{NameID: "1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered", tampered},
		{"wrong key", forged},
		{"wrong issuer", foreign},
		{"alg none", unsigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestNewManagerDefaultTTL(t *testing.T) {
	assert.Equal(t, DefaultTTL, NewManager(testSecret, "x", 0).TTL())
}
