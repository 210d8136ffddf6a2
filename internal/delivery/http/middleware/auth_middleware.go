package middleware

import (
	"net/http"
	"strings"

	"nuovo/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by the auth middleware for handlers to read.
const (
	KeyEmail   = "email"
	KeyIsAdmin = "isAdmin"
	KeyToken   = "token"
)

// AuthMiddleware provides middleware for JWT authentication and
// authorization. Revoked tokens from the blacklist are rejected even before
// signature expiry.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	blacklist service.TokenBlacklist
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, blacklist service.TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, blacklist: blacklist}
}

// Authenticate validates the Bearer token and stores the caller's identity
// on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
		}

		if m.blacklist.IsRevoked(tokenString) {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Token has been revoked"})
		}

		claims, err := m.tokenSvc.Validate(tokenString)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
		}

		c.Set(KeyEmail, claims.Email)
		c.Set(KeyIsAdmin, claims.Role == "admin")
		c.Set(KeyToken, tokenString)

		return next(c)
	}
}

// RequireAdmin rejects non-admin callers. It must be used AFTER the
// Authenticate middleware.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		isAdmin, ok := c.Get(KeyIsAdmin).(bool)
		if !ok || !isAdmin {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: admin role required"})
		}

		return next(c)
	}
}

// CallerEmail returns the authenticated email stored by Authenticate.
func CallerEmail(c echo.Context) string {
	email, _ := c.Get(KeyEmail).(string)

	return email
}

// CallerToken returns the raw Bearer token stored by Authenticate.
func CallerToken(c echo.Context) string {
	token, _ := c.Get(KeyToken).(string)

	return token
}
