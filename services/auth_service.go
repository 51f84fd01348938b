package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthService выпускает JWT для админского дашборда. Пользователь один —
// админ с паролем из конфигурации (bcrypt-хеш).
type AuthService struct {
	passwordHash string
	secret       []byte
	tokenTTL     time.Duration
}

func NewAuthService(passwordHash string, secret []byte) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		secret:       secret,
		tokenTTL:     24 * time.Hour,
	}
}

// Login проверяет пароль и возвращает подписанный токен.
func (s *AuthService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign dashboard token: %w", err)
	}
	return signed, nil
}
