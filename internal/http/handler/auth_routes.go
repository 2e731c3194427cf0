package handler

import (
	"net/http"

	"keepnotes/internal/contract"
	"keepnotes/internal/utils"
	"keepnotes/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type AuthService interface {
	Signup(req *contract.SignupRequest) (*contract.SessionResponse, apierror.ErrorResponse)
	Login(req *contract.LoginRequest) (*contract.SessionResponse, apierror.ErrorResponse)
}

type DefaultAuthRoute struct {
	AuthService AuthService
}

func NewAuthDefault(authService AuthService) *DefaultAuthRoute {
	return &DefaultAuthRoute{AuthService: authService}
}

func (a *DefaultAuthRoute) Signup(c echo.Context) error {
	var req contract.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	session, apierr := a.AuthService.Signup(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	setSessionCookie(c, session.Token)
	return c.JSON(http.StatusCreated, session)
}

func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	session, apierr := a.AuthService.Login(&req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	setSessionCookie(c, session.Token)
	return c.JSON(http.StatusOK, session)
}

// Logout drops the session cookie. Tokens are stateless and short-lived, so
// there is nothing to revoke server-side.
func (a *DefaultAuthRoute) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

func setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     utils.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
