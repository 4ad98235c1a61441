package controllers

import (
	"ai-interviewer-backend/models"
	apimodels "ai-interviewer-backend/models/api"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

// SendError ответ с кодом, соответствующим виду ошибки
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	return ctx.Status(ErrorStatus(err)).JSON(apimodels.NewErrorWithKind(err.Error(), models.ErrorKind(err)))
}

func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrBusy), errors.Is(err, models.ErrInvalidState):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrNotFound), errors.Is(err, models.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrExtraction), errors.Is(err, models.ErrTranscription):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, models.ErrParsing), errors.Is(err, models.ErrQuestionService), errors.Is(err, models.ErrSynthesis):
		return fiber.StatusBadGateway
	}
	return fiber.StatusInternalServerError
}
