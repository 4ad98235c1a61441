package apiv1

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"ai-interviewer-backend/controllers"
	"ai-interviewer-backend/lib/interview"
	"ai-interviewer-backend/lib/interview/events"
	authutils "ai-interviewer-backend/lib/utils/auth-utils"
	"ai-interviewer-backend/middleware"
	"ai-interviewer-backend/models"
	apimodels "ai-interviewer-backend/models/api"
	interviewapimodels "ai-interviewer-backend/models/api/interview"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// интервал комментариев keep-alive в потоке событий, по ним же обнаруживается отключение клиента
var sseKeepAlive = 15 * time.Second

type interviewApiController struct {
	controllers.BaseAPIController
	interviewer interview.Provider
	broker      events.Provider
	jwtSecret   string
	sessionTTL  time.Duration
}

type InterviewRouterConfig struct {
	Interviewer interview.Provider
	Broker      events.Provider
	JWTSecret   string
	SessionTTL  time.Duration
	// Extra дополнительные маршруты под авторизацией сессии (websocket)
	Extra func(router fiber.Router)
}

func InitInterviewApiRouters(app fiber.Router, cfg InterviewRouterConfig) {
	controller := interviewApiController{
		interviewer: cfg.Interviewer,
		broker:      cfg.Broker,
		jwtSecret:   cfg.JWTSecret,
		sessionTTL:  cfg.SessionTTL,
	}
	app.Route("interview", func(router fiber.Router) {
		router.Post("session", controller.createSession)

		sessionRoute := router.Group("", middleware.SessionRequiredWithSecret(cfg.JWTSecret))
		sessionRoute.Get("session", controller.view)
		sessionRoute.Post("resume", controller.uploadResume)
		sessionRoute.Post("lookup", controller.lookup)
		sessionRoute.Post("advance", controller.advance)
		sessionRoute.Get("question/audio", controller.questionAudio)
		sessionRoute.Post("reset", controller.reset)
		sessionRoute.Post("finish", controller.finish)
		sessionRoute.Get("report", controller.report)
		sessionRoute.Get("events", controller.events)
		if cfg.Extra != nil {
			cfg.Extra(sessionRoute)
		}
	})
}

// @Summary Создать сессию интервью
// @Tags Interview
// @Description Создает сессию и возвращает токен для остальных запросов
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionCreated}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/interview/session [post]
func (c *interviewApiController) createSession(ctx *fiber.Ctx) error {
	sessionID, err := c.interviewer.CreateSession(ctx.UserContext())
	if err != nil {
		return c.SendError(ctx, err)
	}
	token, err := authutils.GetSessionToken(sessionID, c.jwtSecret, c.sessionTTL)
	if err != nil {
		log.WithError(err).Error("ошибка формирования токена сессии")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.JSON(apimodels.NewResponse(interviewapimodels.SessionCreated{
		SessionID: sessionID,
		Token:     token,
	}))
}

// @Summary Состояние сессии
// @Tags Interview
// @Description Текущее состояние сессии интервью
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/session [get]
func (c *interviewApiController) view(ctx *fiber.Ctx) error {
	view, err := c.interviewer.View(ctx.UserContext(), middleware.GetSessionID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.JSON(apimodels.NewResponse(view))
}

// @Summary Загрузить резюме
// @Tags Interview
// @Description Загрузка резюме (pdf, docx, txt, json) с контактами кандидата. Резюме разбирается и сохраняется
// @Param   Authorization		header		string	true	"Session token"
// @Param	file				formData	file	true	"Файл резюме"
// @Param	name				formData	string	true	"ФИО"
// @Param	email				formData	string	true	"Емайл"
// @Param	phone				formData	string	true	"Телефон"
// @Param	position			formData	string	false	"Должность"
// @Param	processed_by		formData	string	false	"Кто загрузил резюме"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/interview/resume [post]
func (c *interviewApiController) uploadResume(ctx *fiber.Ctx) error {
	contact := interviewapimodels.ContactData{
		Name:     ctx.FormValue("name"),
		Email:    ctx.FormValue("email"),
		Phone:    ctx.FormValue("phone"),
		Position: ctx.FormValue("position"),
	}
	if err := contact.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := c.formFile(ctx, "file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if file == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не передан файл резюме"))
	}
	view, err := c.interviewer.LoadProfileFromUpload(ctx.UserContext(), middleware.GetSessionID(ctx), *file,
		contact.ToContactInfo(ctx.FormValue("processed_by")))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.JSON(apimodels.NewResponse(view))
}

// @Summary Загрузить сохраненное резюме
// @Tags Interview
// @Description Загрузка ранее разобранного резюме кандидата по email
// @Param   Authorization		header		string	true	"Session token"
// @Param	body				body		interviewapimodels.LookupRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/interview/lookup [post]
func (c *interviewApiController) lookup(ctx *fiber.Ctx) error {
	var payload interviewapimodels.LookupRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := c.interviewer.LoadProfileFromLookup(ctx.UserContext(), middleware.GetSessionID(ctx), payload.Email)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.JSON(apimodels.NewResponse(view))
}

// @Summary Следующий вопрос
// @Tags Interview
// @Description Без audio - первый вопрос по резюме. С audio (запись ответа) - распознавание ответа и следующий вопрос
// @Param   Authorization		header		string	true	"Session token"
// @Param	audio				formData	file	false	"Запись ответа (webm/ogg/wav)"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/interview/advance [post]
func (c *interviewApiController) advance(ctx *fiber.Ctx) error {
	var audio []byte
	file, err := c.formFile(ctx, "audio")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if file != nil {
		audio = file.Body
	}
	view, err := c.interviewer.Advance(ctx.UserContext(), middleware.GetSessionID(ctx), audio)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.JSON(apimodels.NewResponse(view))
}

// @Summary Озвучка текущего вопроса
// @Tags Interview
// @Description wav с текущим вопросом
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {file} file
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/interview/question/audio [get]
func (c *interviewApiController) questionAudio(ctx *fiber.Ctx) error {
	audio, err := c.interviewer.QuestionAudio(ctx.UserContext(), middleware.GetSessionID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "audio/wav")
	return ctx.Send(audio)
}

// @Summary Сбросить сессию
// @Tags Interview
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 409 {object} apimodels.Response
// @router /api/v1/interview/reset [post]
func (c *interviewApiController) reset(ctx *fiber.Ctx) error {
	view, err := c.interviewer.Reset(ctx.UserContext(), middleware.GetSessionID(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.JSON(apimodels.NewResponse(view))
}

// @Summary Завершить интервью
// @Tags Interview
// @Description Отправляет отчет по интервью на почту и сбрасывает сессию
// @Param   Authorization		header		string	true	"Session token"
// @Param	body				body		interviewapimodels.FinishRequest	false	"request body"
// @Success 200 {object} apimodels.Response{data=interviewapimodels.SessionView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @router /api/v1/interview/finish [post]
func (c *interviewApiController) finish(ctx *fiber.Ctx) error {
	var payload interviewapimodels.FinishRequest
	if len(ctx.Body()) != 0 {
		if err := c.BodyParser(ctx, &payload); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
		}
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := c.interviewer.Finish(ctx.UserContext(), middleware.GetSessionID(ctx), payload.NotifyEmail)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.JSON(apimodels.NewResponse(view))
}

// @Summary Отчет по интервью
// @Tags Interview
// @Param   Authorization		header		string	true	"Session token"
// @Success 200 {file} file
// @Failure 409 {object} apimodels.Response
// @router /api/v1/interview/report [get]
func (c *interviewApiController) report(ctx *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(ctx)
	data, err := c.interviewer.Report(ctx.UserContext(), sessionID)
	if err != nil {
		return c.SendError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="interview-%s.pdf"`, sessionID))
	return ctx.Send(data)
}

// @Summary События сессии
// @Tags Interview
// @Description Server-sent events с событиями сессии (wsmodels.ServerMessage). Токен в параметре token
// @Param   token		query		string	true	"Session token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @router /api/v1/interview/events [get]
func (c *interviewApiController) events(ctx *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(ctx)
	if _, err := c.interviewer.View(ctx.UserContext(), sessionID); err != nil {
		return c.SendError(ctx, err)
	}
	ch, unsubscribe := c.broker.Subscribe(sessionID)

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")
	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer unsubscribe()
		logger := log.WithField("session_id", sessionID)
		logger.WithField("subscribers", c.broker.SubscriberCount(sessionID)).Debug("подписка на события сессии")
		keepAlive := time.NewTicker(sseKeepAlive)
		defer keepAlive.Stop()
		if _, err := io.WriteString(w, ": connected\n\n"); err != nil || w.Flush() != nil {
			return
		}
		for {
			select {
			case msg := <-ch:
				data, err := json.Marshal(msg)
				if err != nil {
					logger.WithError(err).Error("ошибка сериализации события")
					continue
				}
				if _, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Code, data); err != nil {
					return
				}
			case <-keepAlive.C:
				if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
					return
				}
			}
			if err := w.Flush(); err != nil {
				logger.Debug("клиент отключился от потока событий")
				return
			}
		}
	})
	return nil
}

func (c *interviewApiController) formFile(ctx *fiber.Ctx, field string) (*models.File, error) {
	header, err := ctx.FormFile(field)
	if err != nil {
		// нет multipart формы или поля
		return nil, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, errors.Wrap(err, "не удалось прочитать файл")
	}
	defer f.Close()
	body, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "не удалось прочитать файл")
	}
	if len(body) == 0 {
		return nil, nil
	}
	return &models.File{
		FileName:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Body:        body,
	}, nil
}
