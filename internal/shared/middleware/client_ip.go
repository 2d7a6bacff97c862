package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bookstore-api/internal/shared/utils"
)

// ClientIP extracts the client IP address from the request
// and stores it in the gin context for the logger and handlers.
//
// Usage:
//
//	router.Use(middleware.ClientIP())
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := utils.ExtractClientIP(c)
		c.Set(KeyClientIP, clientIP)

		log.Debug().
			Str("ip", clientIP).
			Bool("is_private", utils.IsPrivateIP(clientIP)).
			Str("path", c.Request.URL.Path).
			Msg("Client IP extracted")

		c.Next()
	}
}
