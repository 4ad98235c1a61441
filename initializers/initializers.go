package initializers

import (
	"context"
	"time"

	"ai-interviewer-backend/config"
	"ai-interviewer-backend/db"
	"ai-interviewer-backend/fiberlog"
	"ai-interviewer-backend/lib/candidate"
	xlsexport "ai-interviewer-backend/lib/export/xls"
	filestorage "ai-interviewer-backend/lib/file-storage"
	"ai-interviewer-backend/lib/interview"
	"ai-interviewer-backend/lib/interview/events"
	retentionworker "ai-interviewer-backend/lib/interview/retention-worker"
	sessionstore "ai-interviewer-backend/lib/interview/session-store"
	turnstore "ai-interviewer-backend/lib/interview/turn-store"
	resumeextractor "ai-interviewer-backend/lib/resume-extractor"
	"ai-interviewer-backend/lib/smtp"
	"ai-interviewer-backend/lib/transcriber"
	"ai-interviewer-backend/lib/tts"
	initchecker "ai-interviewer-backend/lib/utils/init-checker"
	connectionhub "ai-interviewer-backend/lib/ws/hub/connection-hub"

	log "github.com/sirupsen/logrus"
)

var (
	LoggerConfig *fiberlog.Config
	// TextServices разбор резюме и вопросы, которыми пользуется интервью (для маршрутов /parse-resume/ и др.)
	TextServices interview.TextServices
)

func InitAllServices(ctx context.Context) {
	config.InitConfig()
	LoggerConfig = InitLogger(config.Conf.App.LogLevel)
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	events.NewHandler(connectionhub.Instance, config.Conf.SessionTTL())
	resumeextractor.NewHandler()
	xlsexport.NewHandler()
	candidate.NewHandler()
	TextServices = InitTextServices(ctx)
	InitTranscriber(ctx)
	InitSynthesizer()
	initchecker.CheckInit(
		"db", db.DB,
		"events", events.Instance,
		"resumeextractor", resumeextractor.Instance,
		"candidate", candidate.Instance,
		"textServices", TextServices,
		"transcriber", transcriber.Instance,
		"tts", tts.Instance,
	)
	interview.NewHandler(interview.Deps{
		Sessions:        initSessionStore(ctx),
		Extractor:       resumeextractor.Instance,
		TextServices:    TextServices,
		Transcriber:     transcriber.Instance,
		Synthesizer:     tts.Instance,
		Candidates:      candidate.Instance,
		Turns:           turnstore.NewInstance(db.DB),
		Files:           filestorage.Instance,
		Events:          events.Instance,
		Mailer:          mailer(),
		ServiceTimeout:  config.Conf.ServiceTimeout(),
		ReportRecipient: config.Conf.Report.Recipient,
		ReportFontFile:  config.Conf.Report.FontFile,
	})
	go initWorkers(ctx)
}

func initSessionStore(ctx context.Context) sessionstore.Provider {
	client := InitRedis(ctx)
	if client == nil {
		log.Info("Сессии интервью хранятся в памяти процесса")
		return sessionstore.NewMemory(config.Conf.SessionTTL())
	}
	// блокировка сессии живет дольше самой долгой операции: распознавание + генерация вопроса + синтез
	return sessionstore.NewRedis(client, config.Conf.SessionTTL(), 4*config.Conf.ServiceTimeout())
}

// без настроек SMTP отчеты не отправляются
func mailer() smtp.Provider {
	if smtp.Instance == nil || !smtp.Instance.IsConfigured() {
		return nil
	}
	return smtp.Instance
}

func initWorkers(ctx context.Context) {
	if config.Conf.Report.RetentionDays <= 0 {
		return
	}
	// Задача удаления устаревших ходов интервью и журналов запросов к ИИ
	retentionworker.StartWorker(ctx, time.Duration(config.Conf.Report.RetentionDays)*24*time.Hour)
}
