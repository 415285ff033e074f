package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chati-cms/chati/internal/common"
	"github.com/chati-cms/chati/internal/server/models"
)

// Claims is the decoded content of a valid token: the registered claims
// (subject = user id, issued-at, expiry) plus email and role.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	return c.Subject
}

// GenerateToken signs an HS256 token carrying the user's id, email and role,
// valid for validityDuration from now. The secret comes from configuration;
// its presence is enforced at startup, not here.
func GenerateToken(userID, email string, role models.Role, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Email: email,
		Role:  role,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString and returns its claims. Any failure —
// malformed token, wrong signature, expired — yields common.ErrInvalidToken;
// callers treat all of them uniformly as "unauthenticated".
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
