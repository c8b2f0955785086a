package utils

import (
	"errors"

	"github.com/dgrijalva/jwt-go"
)

// JWT Secret Key, shared with the auth service that issues the tokens.
var JwtKey = []byte("your_secret_key") // This will be loaded from .env

// Claims represents the JWT claims issued by the auth service
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

// ParseToken verifies a bearer token and returns its claims
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
