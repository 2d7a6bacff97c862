package utils

import (
	"bytes"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var jsonNull = []byte("null")

// BindJSONBody decodes the request body into dst.
// An empty body, a literal null or malformed JSON all report false.
// Field rules are not checked here; handlers validate after the existence check.
func BindJSONBody(c *gin.Context, dst any) bool {
	raw, err := c.GetRawData()
	if err != nil {
		return false
	}

	body := bytes.TrimSpace(raw)
	if len(body) == 0 || bytes.Equal(body, jsonNull) {
		return false
	}

	return binding.JSON.BindBody(body, dst) == nil
}
