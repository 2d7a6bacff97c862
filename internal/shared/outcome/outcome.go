// Package outcome logs a failed request with its location and entity id,
// then renders the matching response. Handlers call these instead of the
// response package directly on every failure path.
package outcome

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/shared/middleware"
	"bookstore-api/internal/shared/response"
	"bookstore-api/internal/shared/validation"
)

var (
	ErrNoRowsAffected = errors.New("commit affected no rows")
	ErrVanished       = errors.New("entity disappeared after existence check")
)

// CommitError turns a (false, nil) mutation result into an error worth logging
func CommitError(err error) error {
	if err == nil {
		return ErrNoRowsAffected
	}
	return err
}

// VanishedError is used when FindByID misses right after Exists succeeded
func VanishedError(err error) error {
	if err == nil {
		return ErrVanished
	}
	return err
}

func BadRequest(c *gin.Context, location, rawID, message string) {
	log.Warn().
		Str("request_id", c.GetString(middleware.KeyRequestID)).
		Str("location", location).
		Str("id", rawID).
		Msg(message)
	response.BadRequest(c, message)
}

func BadInput(c *gin.Context, location string, id int, violations []validation.Violation) {
	log.Warn().
		Str("request_id", c.GetString(middleware.KeyRequestID)).
		Str("location", location).
		Int("id", id).
		Interface("violations", violations).
		Msg("validation failed")
	response.BadInput(c, violations)
}

func NotFound(c *gin.Context, location string, id int, message string) {
	log.Warn().
		Str("request_id", c.GetString(middleware.KeyRequestID)).
		Str("location", location).
		Int("id", id).
		Msg("not found")
	response.NotFound(c, message)
}

// Internal logs err in full; the client only sees response.InternalErrorMessage
func Internal(c *gin.Context, location string, id int, err error) {
	log.Error().
		Err(err).
		Str("request_id", c.GetString(middleware.KeyRequestID)).
		Str("location", location).
		Int("id", id).
		Msg("request failed")
	response.InternalError(c)
}
