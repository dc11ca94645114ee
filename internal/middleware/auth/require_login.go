package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// RequireLogin resolves the caller's identity from an HS256 access token
// (accessToken cookie or Authorization header) and puts user_id and role
// on the echo context. Issuing tokens is the auth service's job, not ours.
func RequireLogin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseToken(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, "unauthorized")
			}
			setUserContext(c, claims)
			return next(c)
		}
	}
}

// AdminOnly is RequireLogin plus a role check.
func AdminOnly(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseToken(c, secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, "unauthorized")
			}
			role, _ := claims["role"].(string)
			if role != "admin" {
				return c.JSON(http.StatusForbidden, "not enough rights")
			}
			setUserContext(c, claims)
			return next(c)
		}
	}
}

func parseToken(c echo.Context, secret []byte) (jwt.MapClaims, error) {
	raw := ""
	if cookie, err := c.Cookie("accessToken"); err == nil {
		raw = cookie.Value
	}
	if raw == "" {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw = strings.TrimPrefix(header, "Bearer ")
	}
	if raw == "" {
		return nil, fmt.Errorf("missing token")
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	if _, ok := claims["sub"].(float64); !ok {
		return nil, fmt.Errorf("invalid subject claim")
	}
	return claims, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	c.Set("user_id", uint(claims["sub"].(float64)))
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
}
