// Package auth verifies the bearer tokens issued by the platform's
// identity service. This service only consumes tokens; issuing lives
// elsewhere, so there is no refresh or session machinery here.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gately/internal/shared/biztime"
)

const (
	RoleAttendee = "attendee"
	RoleStaff    = "staff"
	RoleAdmin    = "admin"
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	TenantID uint   `json:"tenant_id"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IsStaff reports whether the claims grant staff-level access. Admins
// hold every staff capability.
func (c *Claims) IsStaff() bool {
	return c.Role == RoleStaff || c.Role == RoleAdmin
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

// Generate signs an access token. Used by tests and local tooling; the
// production issuer is the identity service.
func (s *JWTService) Generate(userID uint, email string, tenantID uint, role string) (string, error) {
	now := biztime.NowUTC()
	exp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)

	claims := &Claims{
		UserID:   userID,
		Email:    email,
		TenantID: tenantID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
