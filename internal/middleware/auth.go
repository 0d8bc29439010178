package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"shoppingcart-backend/internal/session"
)

const authStateKey = "auth_state"

// Auth validates the bearer token and stores an explicit AuthState in the
// request context. Handlers consume the sum type; an absent or bad token
// yields LoggedOut, and protected routes reject it with 401.
func Auth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(authStateKey, session.LoggedOut{})

			header := c.Request().Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return next(c)
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return next(c)
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return next(c)
			}
			sub, err := claims.GetSubject()
			if err != nil {
				return next(c)
			}
			userID, err := strconv.ParseInt(sub, 10, 64)
			if err != nil {
				return next(c)
			}

			email, _ := claims["email"].(string)
			c.Set(authStateKey, session.LoggedIn{
				User:  session.User{ID: userID, Email: email},
				Token: raw,
			})
			return next(c)
		}
	}
}

// RequireLogin extracts the logged-in identity or fails the request. The
// error message mirrors what the client shows when checkout is attempted
// without a valid token.
func RequireLogin(c echo.Context) (session.LoggedIn, error) {
	switch state := c.Get(authStateKey).(type) {
	case session.LoggedIn:
		return state, nil
	case session.LoggedOut:
		return session.LoggedIn{}, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	default:
		return session.LoggedIn{}, echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
}
