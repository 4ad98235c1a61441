package middleware

import (
	"ai-interviewer-backend/config"
	authutils "ai-interviewer-backend/lib/utils/auth-utils"
	apimodels "ai-interviewer-backend/models/api"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const sessionIDKey = "session_id"

// SessionRequired проверяет токен сессии интервью из заголовка Authorization или параметра token
// (для websocket и EventSource, где заголовок не передать)
func SessionRequired() fiber.Handler {
	return SessionRequiredWithSecret(config.Conf.Auth.JWTSecret)
}

func SessionRequiredWithSecret(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(secret),
		},
		TokenLookup: "header:Authorization,query:token",
		SuccessHandler: func(ctx *fiber.Ctx) error {
			sessionID, err := authutils.SessionIDFromClaims(authutils.GetClaims(ctx))
			if err != nil {
				return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError(err.Error()))
			}
			ctx.Locals(sessionIDKey, sessionID)
			return ctx.Next()
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("недействительный токен сессии"))
		},
	})
}

func GetSessionID(ctx *fiber.Ctx) string {
	sessionID, _ := ctx.Locals(sessionIDKey).(string)
	return sessionID
}
