package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gately/internal/infrastructure/auth"
	"gately/internal/shared/constants"
	"gately/internal/shared/logger"
	"gately/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid bearer token and stores the
// verified claims on the context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireStaff additionally demands a staff or admin role. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !claims.IsStaff() {
			utils.ErrorResponse(c, http.StatusForbidden, "staff access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth verifies a token when one is present but lets anonymous
// requests through. Used on public endpoints that personalize when they can.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := m.jwtService.Verify(token); err == nil {
				c.Set(constants.ContextKeyClaims, claims)
			}
		}
		c.Next()
	}
}

// GetClaims returns the verified claims set by RequireAuth, or nil.
func GetClaims(c *gin.Context) *auth.Claims {
	value, exists := c.Get(constants.ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, _ := value.(*auth.Claims)
	return claims
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
