package middleware

import (
	"fmt"
	"strconv"
	"strings"

	apimodels "ai-interviewer-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

// WithBodyLimit отклоняет запросы с Content-Length больше limit. Пути из skipPaths не проверяются.
func WithBodyLimit(limit int64, skipPaths ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, path := range skipPaths {
			if strings.Contains(c.Path(), path) {
				return c.Next()
			}
		}
		contentLength := c.Get(fiber.HeaderContentLength)
		if contentLength != "" && contentLength != "0" {
			size, err := strconv.ParseInt(contentLength, 10, 64)
			if err == nil && size > limit {
				return c.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(
					fmt.Sprintf("Request body too large. Maximum allowed: %d bytes", limit)))
			}
		}
		return c.Next()
	}
}
