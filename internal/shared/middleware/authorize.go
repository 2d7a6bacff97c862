package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/domains/account/model"
	"bookstore-api/internal/metrics"
	"bookstore-api/internal/shared/response"
	"bookstore-api/pkg/jwt"
)

const (
	msgUnauthorized = "Authentication required"
	msgForbidden    = "You do not have permission to perform this action"
)

// Policy is the access rule attached to a route
type Policy struct {
	Anonymous bool
	// Roles accepted for the route; empty means any authenticated caller
	Roles []model.Role
}

func Anonymous() Policy { return Policy{Anonymous: true} }

func Authenticated() Policy { return Policy{} }

func RequireRoles(roles ...model.Role) Policy { return Policy{Roles: roles} }

// Authorizer validates a bearer token against required roles (account.Service)
type Authorizer interface {
	Authorize(token string, requiredRoles []model.Role) (*jwt.Claims, error)
}

// Authorize enforces policy ahead of the handler. Anonymous routes pass through.
// Expired and invalid tokens get the same 401; only the log tells them apart.
func Authorize(auth Authorizer, policy Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		if policy.Anonymous {
			c.Next()
			return
		}

		logger := log.With().
			Str("request_id", c.GetString(KeyRequestID)).
			Str("route", c.FullPath()).
			Logger()

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			metrics.IncAuthOutcome(metrics.AuthMissingToken)
			logger.Warn().Msg("missing or malformed authorization header")
			response.Unauthorized(c, msgUnauthorized)
			return
		}

		claims, err := auth.Authorize(token, policy.Roles)
		switch {
		case err == nil:
			metrics.IncAuthOutcome(metrics.AuthAuthorized)
			c.Set(KeyClaims, claims)
			c.Next()

		case errors.Is(err, model.ErrForbidden):
			metrics.IncAuthOutcome(metrics.AuthForbidden)
			logger.Warn().Strs("required", roleNames(policy.Roles)).Msg("role check failed")
			response.Forbidden(c, msgForbidden)

		case errors.Is(err, model.ErrTokenExpired):
			metrics.IncAuthOutcome(metrics.AuthTokenExpired)
			logger.Warn().Err(err).Msg("token expired")
			response.Unauthorized(c, msgUnauthorized)

		default:
			metrics.IncAuthOutcome(metrics.AuthTokenInvalid)
			logger.Warn().Err(err).Msg("token rejected")
			response.Unauthorized(c, msgUnauthorized)
		}
	}
}

// GetClaims returns the claims stored by Authorize
func GetClaims(c *gin.Context) (*jwt.Claims, bool) {
	v, ok := c.Get(KeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.Claims)
	return claims, ok
}

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func roleNames(roles []model.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = r.String()
	}
	return out
}
