package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrExpired = errors.New("token expired")
	ErrInvalid = errors.New("token invalid")
)

// DefaultTTL is the lifetime of an access token unless configured otherwise
const DefaultTTL = 5 * time.Minute

// Claims represents JWT claims structure
type Claims struct {
	NameID string   `json:"nameid"` // account id
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations. It is read-only after construction.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager creates new JWT manager. Issuer is also used as the audience.
func NewManager(secret, issuer string, ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// Generate signs a HS256 token for subject (email) and nameID (account id).
// Every token gets a fresh jti.
func (m *Manager) Generate(subject, nameID string, roles []string) (string, error) {
	now := m.now()
	if roles == nil {
		roles = []string{}
	}

	claims := Claims{
		NameID: nameID,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Audience:  jwt.ClaimStrings{m.issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, algorithm, issuer, audience and expiry.
// Returns ErrExpired for an otherwise valid but expired token and ErrInvalid for everything else.
func (m *Manager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithAudience(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if !token.Valid {
		return nil, ErrInvalid
	}

	return claims, nil
}
