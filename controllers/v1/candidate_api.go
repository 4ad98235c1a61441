package apiv1

import (
	"fmt"
	"time"

	"ai-interviewer-backend/controllers"
	"ai-interviewer-backend/lib/candidate"
	filestorage "ai-interviewer-backend/lib/file-storage"
	"ai-interviewer-backend/middleware"
	"ai-interviewer-backend/models"
	apimodels "ai-interviewer-backend/models/api"
	candidateapimodels "ai-interviewer-backend/models/api/candidate"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type candidateApiController struct {
	controllers.BaseAPIController
	candidates candidate.Provider
	files      filestorage.Provider
}

// files может быть nil, если S3 не настроен
func InitCandidateApiRouters(app fiber.Router, candidates candidate.Provider, files filestorage.Provider, adminToken string) {
	controller := candidateApiController{
		candidates: candidates,
		files:      files,
	}
	app.Route("candidates", func(router fiber.Router) {
		router.Use(middleware.AdminTokenRequired(adminToken))
		router.Post("list", controller.list)
		router.Get("export", controller.export)
		router.Get("answers/:session_id/:index", controller.answerAudio)
		router.Get(":email", controller.get)
	})
}

// @Summary Кандидат по email
// @Tags Candidates
// @Description Сохраненное резюме кандидата с результатом разбора
// @Param   X-Admin-Token		header		string	true	"Admin token"
// @Param   email				path		string	true	"email кандидата"
// @Success 200 {object} apimodels.Response{data=candidateapimodels.CandidateViewExt}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/{email} [get]
func (c *candidateApiController) get(ctx *fiber.Ctx) error {
	rec, err := c.candidates.Find(ctx.Params("email"))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.JSON(apimodels.NewResponse(candidateapimodels.CandidateConvertExt(*rec)))
}

// @Summary Список кандидатов
// @Tags Candidates
// @Param   X-Admin-Token		header		string	true	"Admin token"
// @Param	body				body		candidateapimodels.CandidateFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]candidateapimodels.CandidateView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/list [post]
func (c *candidateApiController) list(ctx *fiber.Ctx) error {
	var payload candidateapimodels.CandidateFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := c.candidates.List(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Выгрузить кандидатов в Excel
// @Tags Candidates
// @Param   X-Admin-Token		header		string	true	"Admin token"
// @Param   search				query		string	false	"Поиск по ФИО, емайл, телефону"
// @Param   position			query		string	false	"Должность"
// @Success 200 {file} file
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/export [get]
func (c *candidateApiController) export(ctx *fiber.Ctx) error {
	payload := candidateapimodels.CandidateFilter{
		Search:   ctx.Query("search"),
		Position: ctx.Query("position"),
	}
	data, err := c.candidates.Export(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	fileName := fmt.Sprintf("candidates-%v.xlsx", time.Now().Format("20060102-150405"))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return ctx.SendStream(data)
}

// @Summary Запись ответа кандидата
// @Tags Candidates
// @Description Исходная запись ответа на вопрос интервью из файлового хранилища
// @Param   X-Admin-Token		header		string	true	"Admin token"
// @Param   session_id			path		string	true	"Идентификатор сессии"
// @Param   index				path		int		true	"Номер вопроса"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/candidates/answers/{session_id}/{index} [get]
func (c *candidateApiController) answerAudio(ctx *fiber.Ctx) error {
	index, err := ctx.ParamsInt("index")
	if err != nil || index < 1 {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("некорректный номер вопроса"))
	}
	if c.files == nil {
		return c.SendError(ctx, errors.Wrap(models.ErrNotFound, "файловое хранилище не настроено"))
	}
	key := filestorage.AnswerKey(ctx.Params("session_id"), index)
	data, err := c.files.GetFile(ctx.UserContext(), key)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "audio/webm")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="answer-%03d.webm"`, index))
	return ctx.Send(data)
}
