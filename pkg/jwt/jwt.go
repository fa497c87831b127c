package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard JWT claims plus the application's own fields.
// Role is included so the access middleware can gate owner-only routes without
// a second account lookup.
type Claims struct {
	jwt.RegisteredClaims
	PlatformID string `json:"platform_id"` // Facebook user id of the account
	Role       string `json:"role"`        // "owner" | "staff"
}

// Generate signs a session token carrying the platform id and role.
func Generate(secret, platformID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: empty secret")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   platformID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		PlatformID: platformID,
		Role:       role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates a token and returns the platform id and role.
func Parse(secret, tokenString string) (platformID, role string, err error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("jwt: parse token: %w", err)
	}
	if !token.Valid {
		return "", "", fmt.Errorf("jwt: invalid token")
	}
	return claims.PlatformID, claims.Role, nil
}
