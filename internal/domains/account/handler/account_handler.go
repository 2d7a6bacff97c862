package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/domains/account"
	"bookstore-api/internal/domains/account/model"
	"bookstore-api/internal/metrics"
	"bookstore-api/internal/shared/outcome"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/utils"
	"bookstore-api/internal/shared/validation"
)

var duplicateEmail = []validation.Violation{{Field: "email", Message: "email is already registered"}}

// AccountHandler xử lý register và login
type AccountHandler struct {
	service account.Service
	policy  model.PasswordPolicy
}

func NewAccountHandler(service account.Service, policy model.PasswordPolicy) *AccountHandler {
	return &AccountHandler{
		service: service,
		policy:  policy,
	}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Register xử lý POST /api/v1/users/register
func (h *AccountHandler) Register(c *gin.Context) {
	const location = "Users - Register"

	var req model.RegisterRequest
	if !utils.BindJSONBody(c, &req) {
		outcome.BadRequest(c, location, "", "Empty or malformed request body")
		return
	}
	if err := req.Validate(h.policy); err != nil {
		outcome.BadInput(c, location, 0, validation.FromError(err))
		return
	}

	err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, model.ErrDuplicateAccount) {
		outcome.BadInput(c, location, 0, duplicateEmail)
		return
	}
	if err != nil {
		outcome.Internal(c, location, 0, err)
		return
	}

	response.OK(c, model.RegisterResponse{Succeeded: true})
}

// Login xử lý POST /api/v1/users/login
// The submitted password never appears in a response or a log line.
func (h *AccountHandler) Login(c *gin.Context) {
	const location = "Users - Login"

	var req model.LoginRequest
	if !utils.BindJSONBody(c, &req) {
		outcome.BadRequest(c, location, "", "Empty or malformed request body")
		return
	}
	if err := req.Validate(); err != nil {
		outcome.BadInput(c, location, 0, validation.FromError(err))
		return
	}

	token, err := h.service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, model.ErrInvalidCredentials) {
		metrics.IncAuthOutcome(metrics.AuthLoginFailed)
		log.Warn().Str("location", location).Str("email", model.NormalizeEmail(req.Email)).Msg("invalid credentials")
		response.Unauthorized(c, "Invalid email or password")
		return
	}
	if err != nil {
		outcome.Internal(c, location, 0, err)
		return
	}

	metrics.IncAuthOutcome(metrics.AuthLoginSucceeded)
	response.OK(c, model.TokenResponse{Token: token})
}
