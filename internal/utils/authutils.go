package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// SessionCookieName is where browsers carry the session token. API clients
// may send the same token as a Bearer Authorization header instead.
const SessionCookieName = "session"

var jwtSecret []byte

func InitJWT(secret string) error {
	if strings.TrimSpace(secret) == "" {
		return errors.New("JWT secret cannot be empty")
	}
	jwtSecret = []byte(secret)
	return nil
}

type TokenData struct {
	UserID int64
	Exp    int64
}

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"uid"`
}

// IssueToken signs a session token for the user, valid for the given duration.
func IssueToken(userID int64, validity time.Duration) (string, error) {
	if jwtSecret == nil {
		return "", errors.New("JWT not initialized")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})
	return token.SignedString(jwtSecret)
}

// ValidateToken parses AND validates the signature locally.
// It returns the data if the token is authentic and unexpired.
func ValidateToken(tokenString string) (*TokenData, error) {
	if jwtSecret == nil {
		return nil, errors.New("JWT not initialized")
	}

	claims := &sessionClaims{}
	clean := sanitizeToken(tokenString)
	token, err := jwt.ParseWithClaims(clean, claims, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	data := &TokenData{UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		data.Exp = claims.ExpiresAt.Unix()
	}
	return data, nil
}

// ParseTokenDataCtx reads the session token from the Authorization header,
// falling back to the session cookie set at login.
func ParseTokenDataCtx(ctx echo.Context) (*TokenData, error) {
	token := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if strings.TrimSpace(token) == "" {
		cookie, err := ctx.Cookie(SessionCookieName)
		if err != nil {
			return nil, errors.New("no session token provided")
		}
		token = cookie.Value
	}
	return ValidateToken(token)
}

func sanitizeToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
}
