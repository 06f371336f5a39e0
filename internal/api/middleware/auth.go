// Package middleware provides HTTP middleware for the dyndns API: API key
// and bearer token authentication, rate limiting and request logging.
package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jroosing/dyndns/internal/api/models"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/records"
)

const (
	userKey  = "dyndns.user"
	actorKey = "dyndns.actor"
)

// APIKeyActor is the audit name of requests authenticated by the
// configured administrator key.
const APIKeyActor = "api-key"

// Authenticator resolves a user API key.
type Authenticator interface {
	Authenticate(ctx context.Context, apiKey string) (database.User, error)
}

// RequireAdmin admits requests carrying `X-API-Key: <expected>` or a bearer
// token of a Super-Admin user. An empty expected key disables the header
// path; it never opens the routes.
func RequireAdmin(expected string, auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if got := c.GetHeader("X-API-Key"); got != "" && expected != "" {
			if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) == 1 {
				c.Set(actorKey, APIKeyActor)
				c.Next()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
			return
		}

		user, ok := bearerUser(c, auth)
		if !ok {
			return
		}
		if user.Role != database.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{Error: "administrator role required"})
			return
		}
		c.Set(userKey, user)
		c.Set(actorKey, user.Username)
		c.Next()
	}
}

// RequireUser admits requests with `Authorization: Bearer <api key>` of a
// known user and stores the user in the context.
func RequireUser(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := bearerUser(c, auth)
		if !ok {
			return
		}
		c.Set(userKey, user)
		c.Set(actorKey, user.Username)
		c.Next()
	}
}

// bearerUser authenticates the bearer token. It aborts the request and
// returns false on failure.
func bearerUser(c *gin.Context, auth Authenticator) (database.User, bool) {
	token, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" || auth == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		return database.User{}, false
	}
	user, err := auth.Authenticate(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, records.ErrInvalidCredential) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
		} else {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: "authentication failed"})
		}
		return database.User{}, false
	}
	return user, true
}

// UserFromContext returns the user stored by RequireUser or RequireAdmin.
func UserFromContext(c *gin.Context) (database.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return database.User{}, false
	}
	u, ok := v.(database.User)
	return u, ok
}

// ActorFromContext names the authenticated caller for audit entries.
func ActorFromContext(c *gin.Context) string {
	return c.GetString(actorKey)
}
