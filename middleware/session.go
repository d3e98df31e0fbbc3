package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "camstore_session"
	sessionKey    = "session_id"
)

// SessionMiddleware gives each storefront visitor an anonymous session id
// cookie. The id lives as long as ttl.
func SessionMiddleware(ttl time.Duration, secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, int(ttl.Seconds()), "/", "", secure, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware, or "".
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
