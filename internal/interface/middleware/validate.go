package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/auth-profile-service/pkg/response"
	"github.com/oksasatya/auth-profile-service/pkg/validation"
)

// ValidateJSON binds the request body into T and runs its binding rules before
// the handler. describe picks the client message for a failed bind; the
// per-field details go under "errors". On success the value is available
// through Payload.
func ValidateJSON[T any](describe func(err error) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req T
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, describe(err), validation.ToDetails(err))
			return
		}
		c.Set(keyPayload, &req)
		c.Next()
	}
}

// Payload returns the body bound by ValidateJSON[T].
func Payload[T any](c *gin.Context) (*T, bool) {
	v, ok := c.Get(keyPayload)
	if !ok {
		return nil, false
	}
	req, ok := v.(*T)
	return req, ok
}
