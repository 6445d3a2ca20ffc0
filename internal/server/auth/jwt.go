// Package auth implements the two pure building blocks of the auth subsystem:
// signed bearer tokens and one-way password hashing.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/asemenov-dev/bookmarkd/internal/common"
)

// Claims is the claim set carried by every issued token: the registered
// claims plus the subject's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken issues an HS256-signed token for the given user. The subject
// is the decimal user id, expiry is now+validityDuration.
func GenerateToken(userID int64, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
			ID:        uuid.NewString(),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken validates tokenString and returns the embedded user id and email.
// The signing method is pinned to HS256, so unsigned or alg=none tokens are
// rejected. Expired tokens return common.ErrTokenExpired, every other failure
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (int64, string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", common.ErrTokenExpired
		}
		return 0, "", common.ErrInvalidToken
	}

	if !token.Valid {
		return 0, "", common.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", common.ErrInvalidToken
	}

	return userID, claims.Email, nil
}
