package apiv1

import (
	"ai-interviewer-backend/controllers"
	"ai-interviewer-backend/lib/interview"
	apimodels "ai-interviewer-backend/models/api"
	gptmodels "ai-interviewer-backend/models/api/gpt"

	"github.com/gofiber/fiber/v2"
)

type textServiceApiController struct {
	controllers.BaseAPIController
	services interview.TextServices
}

// InitTextServiceRouters HTTP-доступ к разбору резюме и генерации вопросов для внешних клиентов.
// Ответы без обертки apimodels.Response.
func InitTextServiceRouters(app fiber.Router, services interview.TextServices) {
	controller := textServiceApiController{services: services}
	app.Post("parse-resume", controller.parseResume)
	app.Post("generate-question", controller.generateQuestion)
	app.Post("next-question", controller.nextQuestion)
}

// @Summary Разбор резюме
// @Tags Text services
// @Description Разбор текста резюме языковой моделью. result - объект JSON, либо строка, если модель вернула не JSON
// @Param	body				body		gptmodels.ParseResumeRequest	true	"request body"
// @Success 200 {object} gptmodels.ParseResumeResponse
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /parse-resume/ [post]
func (c *textServiceApiController) parseResume(ctx *fiber.Ctx) error {
	var payload gptmodels.ParseResumeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := c.services.ParseResume(ctx.UserContext(), payload.ResumeText)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.JSON(gptmodels.ParseResumeResponse{Result: result})
}

// @Summary Первый вопрос интервью
// @Tags Text services
// @Description Первый вопрос по разобранному резюме
// @Param	body				body		gptmodels.GenerateQuestionRequest	true	"request body"
// @Success 200 {object} gptmodels.QuestionResponse
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /generate-question/ [post]
func (c *textServiceApiController) generateQuestion(ctx *fiber.Ctx) error {
	var payload gptmodels.GenerateQuestionRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	question, err := c.services.FirstQuestion(ctx.UserContext(), payload.ParsedResume)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.JSON(gptmodels.QuestionResponse{Question: question})
}

// @Summary Следующий вопрос интервью
// @Tags Text services
// @Description Следующий вопрос по разобранному резюме и ответу кандидата на предыдущий
// @Param	body				body		gptmodels.NextQuestionRequest	true	"request body"
// @Success 200 {object} gptmodels.QuestionResponse
// @Failure 400 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /next-question/ [post]
func (c *textServiceApiController) nextQuestion(ctx *fiber.Ctx) error {
	var payload gptmodels.NextQuestionRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	question, err := c.services.NextQuestion(ctx.UserContext(), payload.ParsedResume, payload.LastAnswer)
	if err != nil {
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.JSON(gptmodels.QuestionResponse{Question: question})
}
