package authutils

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// GetSessionToken токен сессии интервью, sub - идентификатор сессии
func GetSessionToken(sessionID string, secret string, ttl time.Duration) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"sub": sessionID,
		"typ": "interview",
		"exp": time.Now().Add(ttl).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

// SessionIDFromClaims идентификатор сессии из токена
func SessionIDFromClaims(claims jwt.MapClaims) (string, error) {
	if typ, _ := claims["typ"].(string); typ != "interview" {
		return "", errors.New("токен не является токеном сессии интервью")
	}
	sessionID, err := claims.GetSubject()
	if err != nil || sessionID == "" {
		return "", errors.New("в токене не указана сессия")
	}
	return sessionID, nil
}
