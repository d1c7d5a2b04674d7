package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by a bearer token. ID (jti) names the stored access token row.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// SubjectInt returns the user id in the subject claim, 0 when malformed.
func (c *Claims) SubjectInt() int64 {
	v, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func signToken(secret string, userID int64, role, tokenID string, issuedAt, expiresAt time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("secret not configured")
	}
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func verifyToken(tokenStr, secret string) (*Claims, error) {
	if secret == "" {
		return nil, errors.New("secret not configured")
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	if _, err := parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}); err != nil {
		return nil, err
	}
	if claims.ID == "" || claims.SubjectInt() == 0 {
		return nil, errors.New("invalid claims")
	}
	return &claims, nil
}
