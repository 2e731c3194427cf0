package middleware

import (
	"net/http"

	"keepnotes/internal/domain/entity"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserRepository interface {
	FindByID(id int64) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	UserRepo UserRepository
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenData, err := utils.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindByID(tokenData.UserID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// User deleted in DB but still has a valid token???
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			c.Set("user", user)
			return next(c)
		}
	}
}
