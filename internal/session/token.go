package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mashop/storefront/internal/models"
)

const cookieTTL = 7 * 24 * time.Hour

// SignToken issues the HS256 session cookie value for an authenticated
// session.
func (s *Store) SignToken(sess models.Session) (string, error) {
	exp := time.Now().Add(cookieTTL)
	claims := jwt.MapClaims{
		"sid":  sess.ID,
		"sub":  sess.UserID,
		"role": sess.Role,
		"exp":  exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.JWTSecret)
}

// ParseToken validates a session cookie value and returns the session id
// and role baked into it.
func ParseToken(tokenStr string, secret []byte) (string, string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", "", fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid token claims")
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return "", "", fmt.Errorf("invalid session claim")
	}
	role, _ := claims["role"].(string)

	return sid, role, nil
}
