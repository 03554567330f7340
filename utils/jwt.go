package utils

import (
	"errors"
	"time"

	"lunchbox/config"
	"lunchbox/models"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token does not contain a valid 'sub' claim")
	ErrMissingSecret  = errors.New("JWT_SECRET is not configured")
)

func secretKey() []byte {
	return []byte(config.AppConfig.JWTSecret)
}

// GenerateToken creates a signed JWT for the given user. The token expires
// after the specified duration.
func GenerateToken(subject, email, role string, duration time.Duration) (string, error) {
	if len(secretKey()) == 0 {
		return "", ErrMissingSecret
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"role":  role,
		"iat":   now.Unix(),
		"exp":   now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
// With no secret configured every token is rejected, since an empty HMAC key
// would let anyone sign one.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	if len(secretKey()) == 0 {
		return nil, ErrInvalidToken
	}
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ParseCaller extracts the caller identity (sub, email, role) from a token.
func ParseCaller(tokenString string) (models.Caller, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return models.Caller{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Caller{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return models.Caller{}, ErrMissingSubject
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = models.RoleUser
	}

	return models.Caller{UserID: sub, Email: email, Role: role}, nil
}
