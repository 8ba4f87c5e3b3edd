package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	iauth "github.com/saandeep/portfolio-api/internal/auth"
	"github.com/saandeep/portfolio-api/internal/services"
	apperrors "github.com/saandeep/portfolio-api/pkg/errors"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// AuthHandler exposes login and account routes for the admin surface.
type AuthHandler struct {
	users *services.UserService
	jwt   *iauth.JWTService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(users *services.UserService, jwt *iauth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// Login verifies credentials and issues an access token.
func (h *AuthHandler) Login(c *gin.Context) {
	var body struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if !bindAndValidate(c, &body) {
		return
	}

	user, err := h.users.Authenticate(requestContext(c), body.Username, body.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.jwt.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	user, err := h.users.Profile(requestContext(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

// ChangePassword rotates the authenticated account's password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := currentUserID(c)
	if userID == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	var body struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8"`
	}
	if !bindAndValidate(c, &body) {
		return
	}

	if err := h.users.ChangePassword(requestContext(c), userID, body.CurrentPassword, body.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Password updated")
}
