package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"ai-interviewer-backend/config"
	apiv1 "ai-interviewer-backend/controllers/v1"
	"ai-interviewer-backend/db"
	"ai-interviewer-backend/fiberlog"
	"ai-interviewer-backend/initializers"
	"ai-interviewer-backend/lib/candidate"
	filestorage "ai-interviewer-backend/lib/file-storage"
	"ai-interviewer-backend/lib/interview"
	"ai-interviewer-backend/lib/interview/events"
	"ai-interviewer-backend/lib/ws"
	connectionhub "ai-interviewer-backend/lib/ws/hub/connection-hub"
	"ai-interviewer-backend/middleware"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP сервер интервью",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

const jsonBodyLimit = 1024 * 1024

func serve(_ *cobra.Command) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	initializers.InitAllServices(ctx)
	defer db.Close()

	app := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimitMb * 1024 * 1024,
	})
	app.Use(fiberRecover.New())
	app.Use(requestid.New())
	app.Use(middleware.Metrics())
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			Path:     "/swagger",
			FilePath: "./docs/swagger.json",
		}))
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	app.Get("/health", func(ctx *fiber.Ctx) error {
		if err := db.PingDB(ctx.UserContext()); err != nil {
			return ctx.Status(fiber.StatusServiceUnavailable).SendString(err.Error())
		}
		return ctx.SendString("ok")
	})

	app.Use(fiberlog.New(*initializers.LoggerConfig))
	if config.Conf.App.ErrNotifyURL != "" {
		app.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyURL))
	}
	// файлы принимаются только загрузкой резюме и записью ответа
	app.Use(middleware.WithBodyLimit(jsonBodyLimit, "/interview/resume", "/interview/advance"))

	// разбор резюме и вопросы для внешних клиентов, только если они выполняются этим сервисом
	if !strings.EqualFold(config.Conf.AI.TextServiceMode, "remote") {
		apiv1.InitTextServiceRouters(app, initializers.TextServices)
	}

	//api
	apiV1 := app.Group("/api/v1", cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Admin-Token",
		AllowMethods: "GET, POST",
	}))
	apiv1.InitInterviewApiRouters(apiV1, apiv1.InterviewRouterConfig{
		Interviewer: interview.Instance,
		Broker:      events.Instance,
		JWTSecret:   config.Conf.Auth.JWTSecret,
		SessionTTL:  config.Conf.SessionTTL(),
		Extra: func(router fiber.Router) {
			ws.InitWs(router, interview.Instance, events.Instance, connectionhub.Instance)
		},
	})
	apiv1.InitCandidateApiRouters(apiV1, candidate.Instance, filestorage.Instance, config.Conf.Auth.AdminToken)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		select {
		case <-c:
		case <-ctx.Done():
			return
		}
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port))
	cancel()
	wg.Wait()
	if err != nil {
		return err
	}
	log.Info("HTTP server successfully stopped")
	return nil
}
