package tools

import (
	"errors"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims carried by an MDT session token.
type Claims struct {
	OfficerId string `json:"officerId"`
	Username  string `json:"username"`
	jwt.StandardClaims
}

// GenerateToken signs a token for the officer valid for ttl.
func GenerateToken(key []byte, officerId, username string, ttl time.Duration, now time.Time) (string, Claims, error) {
	claims := Claims{
		OfficerId: officerId,
		Username:  username,
		StandardClaims: jwt.StandardClaims{
			Id:        RandId(),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Issuer:    "mdt",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", Claims{}, err
	}
	return signed, claims, nil
}

// ParseToken validates signature and expiry. The "Bearer " prefix is optional.
func ParseToken(key []byte, tokenStr string) (*Claims, error) {
	tokenStr = strings.TrimSpace(strings.TrimPrefix(tokenStr, "Bearer "))
	if tokenStr == "" {
		return nil, errors.New("empty token")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
