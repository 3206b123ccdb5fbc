package handler

import (
	"net/http"
	"time"

	model "moto-auction/internal/models"
	"moto-auction/services/auction/helpers"
	"moto-auction/utils"

	"github.com/gin-gonic/gin"
)

// TokenIssuer signs access tokens for known users
type TokenIssuer interface {
	Login(userID int64) (string, time.Time, model.User, error)
}

// AuthHandler exchanges a known user id for an access token
type AuthHandler struct {
	issuer TokenIssuer
}

func NewAuthHandler(issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// TokenHandler handles POST /auth/token. It is a development login: any seeded
// user id gets a token, there are no passwords.
func (h *AuthHandler) TokenHandler(c *gin.Context) {
	var req helpers.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "TokenHandler", err)
		return
	}

	token, expires, user, err := h.issuer.Login(req.UserID)
	if err != nil {
		helpers.RespondError(c, "TokenHandler", err, map[string]any{"user_id": req.UserID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.TokenResponse{
		Token:     token,
		ExpiresAt: expires.UTC().Format(time.RFC3339),
		User:      user,
	}, "token issued successfully")
	helpers.LogSuccess("TokenHandler", "token issued successfully", map[string]any{
		"user_id": user.UserID,
		"role":    user.Role,
	})
}
