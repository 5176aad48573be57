package middleware

import (
	"net/http"
	"time"

	"calendary/config"
	"calendary/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName carries the signed session token.
const SessionCookieName = "calendary_session"

const sessionLifetime = 30 * 24 * time.Hour

// UserSessionMiddleware requires a valid session cookie and stores the user
// id on the context for downstream handlers.
func UserSessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		userID, err := utils.ExtractUserIDFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// SetSessionCookie issues a signed session cookie for the user.
func SetSessionCookie(c *gin.Context, userID string) error {
	token, err := utils.GenerateSessionToken(userID, sessionLifetime)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, int(sessionLifetime.Seconds()), "/", "", config.IsProduction(), true)
	return nil
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", config.IsProduction(), true)
}

// SessionUserID reads the user id a prior UserSessionMiddleware stored.
func SessionUserID(c *gin.Context) string {
	return c.GetString("userID")
}
