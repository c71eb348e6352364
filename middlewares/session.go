// middlewares/session.go
package middlewares

import (
	"net/http"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/config"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/utils"

	"github.com/gin-gonic/gin"
)

const sessionKey = "sessionID"

// ResolveSession makes sure the request has a session id, issuing a new
// cookie when the client sent none.
func ResolveSession(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.CookieName)
		if err != nil || sid == "" {
			sid = utils.GenerateSessionToken()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sid, cfg.MaxAge, "/", "", cfg.Secure, true)
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// RequireSession rejects requests that carry no session cookie.
func RequireSession(cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.CookieName)
		if err != nil || sid == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized."})
			return
		}
		c.Set(sessionKey, sid)
		c.Next()
	}
}

// SessionID returns the id set by ResolveSession or RequireSession.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
