package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what an access token asserts about its holder.
type Claims struct {
	Username string
	Category string
}

func GenerateToken(secret, username, category string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"category": category,
		"exp":      time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ValidateToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	username, _ := claims["username"].(string)
	category, _ := claims["category"].(string)
	if username == "" || category == "" {
		return nil, errors.New("token is missing username or category")
	}
	return &Claims{Username: username, Category: category}, nil
}
