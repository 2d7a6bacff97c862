package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"bookstore-api/internal/domains/account"
	"bookstore-api/internal/domains/account/model"
	"bookstore-api/pkg/jwt"
)

// authService implement account.Service interface
type authService struct {
	repo   account.Repository
	hasher account.PasswordHasher
	tokens *jwt.Manager

	// hash compared against when the email is unknown, so both failure paths cost one bcrypt
	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService tạo service instance
func NewAuthService(repo account.Repository, hasher account.PasswordHasher, tokens *jwt.Manager) account.Service {
	return &authService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *authService) Register(ctx context.Context, email, rawPassword string) error {
	a, err := s.repo.Create(ctx, email, rawPassword)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateAccount) {
			return model.ErrDuplicateAccount
		}
		return fmt.Errorf("create account: %w", err)
	}

	log.Info().Str("account_id", a.ID).Msg("account registered")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, email, rawPassword string) (string, error) {
	a, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrAccountNotFound) {
		_ = s.hasher.Compare(s.dummy(), rawPassword)
		return "", model.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find account: %w", err)
	}

	if err := s.hasher.Compare(a.PasswordHash, rawPassword); err != nil {
		return "", model.ErrInvalidCredentials
	}

	return s.IssueToken(a)
}

func (s *authService) IssueToken(a *model.Account) (string, error) {
	roles := make([]string, 0, len(a.Roles))
	for _, r := range a.Roles {
		roles = append(roles, r.String())
	}

	token, err := s.tokens.Generate(a.Email, a.ID, roles)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ========================================
// AUTHORIZATION
// ========================================

func (s *authService) Authorize(token string, requiredRoles []model.Role) (*jwt.Claims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", model.ErrTokenInvalid, err)
	}

	if len(requiredRoles) == 0 {
		return claims, nil
	}

	for _, held := range claims.Roles {
		for _, want := range requiredRoles {
			if held == want.String() {
				return claims, nil
			}
		}
	}
	return nil, model.ErrForbidden
}

func (s *authService) dummy() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			log.Error().Err(err).Msg("failed to prepare dummy password hash")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
