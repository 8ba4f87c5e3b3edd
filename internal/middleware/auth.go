package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/saandeep/portfolio-api/internal/auth"
	"github.com/saandeep/portfolio-api/internal/models"
	"github.com/saandeep/portfolio-api/pkg/errors"
	"github.com/saandeep/portfolio-api/pkg/response"
)

const (
	CtxClaimsKey = "authClaims"
	CtxUserIDKey = "userID"
)

// AccountSource resolves the account behind a validated token. The generic
// user store satisfies this.
type AccountSource interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// Auth enforces bearer-token authentication: the JWT must validate and the
// referenced account must still exist and be active.
func Auth(jwt *iauth.JWTService, accounts AccountSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if len(authz) < 8 || !strings.EqualFold(authz[:7], "Bearer ") {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authz[7:])
		claims, err := jwt.ValidateAccessToken(token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		if accounts != nil {
			user, err := accounts.FindByID(c.Request.Context(), claims.UserID)
			if err != nil || !user.IsActive {
				response.Error(c, errors.ErrUnauthorized)
				c.Abort()
				return
			}
		}

		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)

		c.Next()
	}
}
