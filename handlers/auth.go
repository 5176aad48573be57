package handlers

import (
	"net/http"
	"time"

	"calendary/calendar"
	tokenRepo "calendary/database/repository/token"
	"calendary/middleware"
	"calendary/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const (
	oauthStatePrefix = "oauthState:"
	oauthStateTTL    = 10 * time.Minute
)

// AuthHandler drives the Google OAuth consent flow and session lifecycle.
type AuthHandler struct {
	OAuth  *oauth2.Config
	Tokens tokenRepo.TokenRepository
	States *redis.Client
}

func NewAuthHandler(oauthCfg *oauth2.Config, tokens tokenRepo.TokenRepository, states *redis.Client) *AuthHandler {
	return &AuthHandler{OAuth: oauthCfg, Tokens: tokens, States: states}
}

// GoogleStartHandler handles GET /api/auth/google: mints an anti-forgery
// state token and redirects to the consent page.
func (h *AuthHandler) GoogleStartHandler(c *gin.Context) {
	state := uuid.New().String()
	ctx := c.Request.Context()
	if err := h.States.Set(ctx, oauthStatePrefix+state, "1", oauthStateTTL).Err(); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start sign-in", err.Error())
		return
	}
	c.Redirect(http.StatusFound, calendar.ConsentURL(h.OAuth, state))
}

// GoogleCallbackHandler handles GET /api/auth/google/callback: verifies the
// state, exchanges the code, persists the grant and issues a session cookie.
func (h *AuthHandler) GoogleCallbackHandler(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if state == "" || code == "" {
		utils.JSONError(c, http.StatusBadRequest, "Invalid OAuth callback", "missing code or state")
		return
	}

	ctx := c.Request.Context()
	deleted, err := h.States.Del(ctx, oauthStatePrefix+state).Result()
	if err != nil || deleted == 0 {
		utils.JSONError(c, http.StatusBadRequest, "Invalid OAuth callback", "unknown or expired state token")
		return
	}

	token, err := h.OAuth.Exchange(ctx, code)
	if err != nil {
		utils.JSONError(c, http.StatusBadGateway, "OAuth exchange failed", err.Error())
		return
	}

	// Reuse the existing identity when a valid session cookie is present,
	// so reconnecting doesn't orphan the stored grant.
	userID := ""
	if cookieToken, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if id, err := utils.ExtractUserIDFromToken(cookieToken); err == nil {
			userID = id
		}
	}
	if userID == "" {
		userID = uuid.New().String()
	}

	if err := h.Tokens.Save(ctx, userID, token); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to store credentials", err.Error())
		return
	}
	if err := middleware.SetSessionCookie(c, userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create session", err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// StatusHandler handles GET /api/auth/status. It never requires a session;
// an anonymous caller is simply reported as not connected.
func (h *AuthHandler) StatusHandler(c *gin.Context) {
	connected := false
	if cookieToken, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if userID, err := utils.ExtractUserIDFromToken(cookieToken); err == nil {
			if _, err := h.Tokens.Get(c.Request.Context(), userID); err == nil {
				connected = true
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"connected": connected})
}

// SignOutHandler handles POST /api/auth/signout: deletes the stored grant
// and clears the session.
func (h *AuthHandler) SignOutHandler(c *gin.Context) {
	userID := middleware.SessionUserID(c)
	if err := h.Tokens.Delete(c.Request.Context(), userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to sign out", err.Error())
		return
	}
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
