package model

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// PasswordPolicy bounds the raw password length on registration
type PasswordPolicy struct {
	MinLength int
	MaxLength int
}

// MaxPasswordBytes is the longest input bcrypt accepts
const MaxPasswordBytes = 72

// DefaultPasswordPolicy matches the config defaults
var DefaultPasswordPolicy = PasswordPolicy{MinLength: 6, MaxLength: 15}

// ========================================
// AUTH DTOs
// ========================================

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate(policy PasswordPolicy) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.RuneLength(policy.MinLength, policy.MaxLength).
				Error(passwordLengthMessage(policy)),
			validation.Length(0, MaxPasswordBytes).
				Error(passwordLengthMessage(policy)),
		),
	)
}

// LoginRequest only checks presence and email shape; length rules are a registration concern
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("invalid email format"),
		),
		validation.Field(&r.Password, validation.Required.Error("password is required")),
	)
}

type RegisterResponse struct {
	Succeeded bool `json:"succeeded"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func passwordLengthMessage(p PasswordPolicy) string {
	return fmt.Sprintf("password is limited to %d to %d characters", p.MinLength, p.MaxLength)
}
