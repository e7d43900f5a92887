package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/auth-profile-service/internal/application"
	"github.com/oksasatya/auth-profile-service/internal/domain/entity"
	"github.com/oksasatya/auth-profile-service/pkg/helpers"
	"github.com/oksasatya/auth-profile-service/pkg/response"
)

const (
	MsgTokenRequired = "Access token required"
	MsgTokenInvalid  = "Invalid or expired token"
)

// TokenVerifier is satisfied by *helpers.TokenManager.
type TokenVerifier interface {
	Verify(token string) (*helpers.TokenClaims, error)
}

// Auth requires a valid "Authorization: Bearer <token>" header.
// On success the caller's identity is attached to the request context and
// stored under KeyIdentity and KeyUserID. The account's active flag is not
// re-read here, so a token outlives a deactivation until it expires.
func Auth(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.Error(c, http.StatusUnauthorized, MsgTokenRequired, nil)
			return
		}
		claims, err := tokens.Verify(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, MsgTokenInvalid, nil)
			return
		}

		id := application.Identity{ID: claims.UserID, Email: claims.Email, Role: entity.Role(claims.Role)}
		c.Request = c.Request.WithContext(application.WithIdentity(c.Request.Context(), id))
		c.Set(KeyUserID, id.ID)
		c.Set(KeyIdentity, id)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
