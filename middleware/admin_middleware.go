package middleware

import (
	"crypto/subtle"

	apimodels "ai-interviewer-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

const adminTokenHeader = "X-Admin-Token"

// AdminTokenRequired доступ к данным кандидатов по статическому токену из настроек.
// Пустой токен в настройках закрывает доступ полностью.
func AdminTokenRequired(token string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		provided := ctx.Get(adminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
