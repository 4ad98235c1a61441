package interview

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-interviewer-backend/lib/candidate"
	pdfexport "ai-interviewer-backend/lib/export/pdf"
	filestorage "ai-interviewer-backend/lib/file-storage"
	"ai-interviewer-backend/lib/interview/events"
	sessionstore "ai-interviewer-backend/lib/interview/session-store"
	turnstore "ai-interviewer-backend/lib/interview/turn-store"
	"ai-interviewer-backend/lib/metrics"
	resumeextractor "ai-interviewer-backend/lib/resume-extractor"
	"ai-interviewer-backend/lib/smtp"
	"ai-interviewer-backend/lib/transcriber"
	"ai-interviewer-backend/lib/tts"
	"ai-interviewer-backend/lib/utils/helpers"
	"ai-interviewer-backend/models"
	interviewapimodels "ai-interviewer-backend/models/api/interview"
	dbmodels "ai-interviewer-backend/models/db"
	wsmodels "ai-interviewer-backend/models/ws"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TextServices разбор резюме и генерация вопросов, локально через LLM или удаленным сервисом
type TextServices interface {
	ParseResume(ctx context.Context, resumeText string) (json.RawMessage, error)
	FirstQuestion(ctx context.Context, parsedResume json.RawMessage) (string, error)
	NextQuestion(ctx context.Context, parsedResume json.RawMessage, lastAnswer string) (string, error)
}

// Provider сценарий интервью: загрузка резюме, вопросы, ответы кандидата
type Provider interface {
	CreateSession(ctx context.Context) (sessionID string, err error)
	LoadProfileFromUpload(ctx context.Context, sessionID string, file models.File, contact dbmodels.ContactInfo) (interviewapimodels.SessionView, error)
	LoadProfileFromLookup(ctx context.Context, sessionID, email string) (interviewapimodels.SessionView, error)
	// Advance без записи ответа задает первый вопрос, с записью - распознает ответ и задает следующий
	Advance(ctx context.Context, sessionID string, answerAudio []byte) (interviewapimodels.SessionView, error)
	Reset(ctx context.Context, sessionID string) (interviewapimodels.SessionView, error)
	View(ctx context.Context, sessionID string) (interviewapimodels.SessionView, error)
	QuestionAudio(ctx context.Context, sessionID string) ([]byte, error)
	Report(ctx context.Context, sessionID string) ([]byte, error)
	// Finish отправляет отчет по интервью и сбрасывает сессию
	Finish(ctx context.Context, sessionID, notifyEmail string) (interviewapimodels.SessionView, error)
}

var Instance Provider

type Deps struct {
	Sessions     sessionstore.Provider
	Extractor    resumeextractor.Provider
	TextServices TextServices
	Transcriber  transcriber.Provider
	Synthesizer  tts.Provider
	Candidates   candidate.Provider
	Turns        turnstore.Provider
	Files        filestorage.Provider // может быть nil, если S3 не настроен
	Events       events.Provider      // может быть nil
	Mailer       smtp.Provider        // может быть nil
	// ServiceTimeout ограничение на каждый вызов внешнего сервиса
	ServiceTimeout  time.Duration
	ReportRecipient string
	ReportFontFile  string
}

func NewHandler(deps Deps) {
	Instance = New(deps)
}

func New(deps Deps) Provider {
	if deps.ServiceTimeout <= 0 {
		deps.ServiceTimeout = 30 * time.Second
	}
	return &impl{
		deps: deps,
	}
}

type impl struct {
	deps Deps
}

const (
	opUpload  = "upload"
	opLookup  = "lookup"
	opAdvance = "advance"
	opReset   = "reset"
	opFinish  = "finish"
)

func (i *impl) CreateSession(ctx context.Context) (string, error) {
	sess := sessionstore.NewSession(uuid.NewString())
	if err := i.deps.Sessions.Save(ctx, sess); err != nil {
		log.WithError(err).Error("ошибка создания сессии интервью")
		return "", errors.Wrapf(models.ErrStorage, "%v", err)
	}
	log.WithField("session_id", sess.ID).Info("создана сессия интервью")
	return sess.ID, nil
}

func (i *impl) LoadProfileFromUpload(ctx context.Context, sessionID string, file models.File, contact dbmodels.ContactInfo) (interviewapimodels.SessionView, error) {
	var message string
	sess, err := i.mutate(ctx, sessionID, opUpload, func(sess *sessionstore.Session) error {
		text, err := i.deps.Extractor.ExtractText(ctx, file)
		if err != nil {
			return err
		}
		parsed, err := i.parseResume(ctx, text)
		if err != nil {
			return err
		}
		message, err = i.deps.Candidates.Save(contact, parsed, text)
		if err != nil {
			return err
		}
		i.storeResumeFile(ctx, sessionID, contact.Email, file)
		sess.LoadProfile(contact, parsed)
		return nil
	})
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	i.publish(*sess, models.EventProfileLoaded, message)
	view := sessionView(*sess)
	view.Message = message
	return view, nil
}

func (i *impl) LoadProfileFromLookup(ctx context.Context, sessionID, email string) (interviewapimodels.SessionView, error) {
	var message string
	sess, err := i.mutate(ctx, sessionID, opLookup, func(sess *sessionstore.Session) error {
		rec, err := i.deps.Candidates.Find(email)
		if err != nil {
			return err
		}
		contact := rec.GetContactInfo()
		if contact.Email == "" {
			contact = dbmodels.ContactInfo{
				Name:     rec.Name,
				Email:    rec.Email,
				Phone:    rec.Phone,
				Position: rec.Position,
			}
		}
		sess.LoadProfile(contact, rec.FullData.ParsedResume)
		message = fmt.Sprintf("Profile loaded for %s", rec.Email)
		return nil
	})
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	i.publish(*sess, models.EventProfileLoaded, message)
	view := sessionView(*sess)
	view.Message = message
	return view, nil
}

func (i *impl) Advance(ctx context.Context, sessionID string, answerAudio []byte) (interviewapimodels.SessionView, error) {
	var answerKey string
	sess, err := i.mutate(ctx, sessionID, opAdvance, func(sess *sessionstore.Session) (err error) {
		if len(answerAudio) == 0 {
			return i.askFirstQuestion(ctx, sess)
		}
		answerKey, err = i.askNextQuestion(ctx, sess, answerAudio)
		return err
	})
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	i.saveTurn(*sess, answerKey)
	metrics.InterviewQuestionsTotal.Inc()
	i.publish(*sess, models.EventQuestion, "")
	view := sessionView(*sess)
	view.PlayAudio = true
	return view, nil
}

func (i *impl) askFirstQuestion(ctx context.Context, sess *sessionstore.Session) error {
	switch sess.State {
	case models.SessionStateProfileLoaded:
	case models.SessionStateAwaitingAnswer:
		return errors.Wrap(models.ErrInvalidState, "вопрос уже задан, ожидается ответ")
	default:
		return errors.Wrap(models.ErrInvalidState, "резюме кандидата не загружено")
	}
	svcCtx, cancel := context.WithTimeout(ctx, i.deps.ServiceTimeout)
	defer cancel()
	question, err := i.deps.TextServices.FirstQuestion(svcCtx, sess.ParsedResume)
	if err != nil {
		return asKind(err, models.ErrQuestionService)
	}
	sess.AskQuestion(question, "")
	return nil
}

func (i *impl) askNextQuestion(ctx context.Context, sess *sessionstore.Session, answerAudio []byte) (answerKey string, err error) {
	if sess.State != models.SessionStateAwaitingAnswer || sess.QuestionIndex == 0 {
		return "", errors.Wrap(models.ErrInvalidState, "нет вопроса, на который ожидается ответ")
	}
	sttCtx, cancel := context.WithTimeout(ctx, i.deps.ServiceTimeout)
	defer cancel()
	transcript, err := i.deps.Transcriber.Transcribe(sttCtx, answerAudio)
	if err != nil {
		return "", asKind(err, models.ErrTranscription)
	}
	svcCtx, cancelSvc := context.WithTimeout(ctx, i.deps.ServiceTimeout)
	defer cancelSvc()
	question, err := i.deps.TextServices.NextQuestion(svcCtx, sess.ParsedResume, transcript)
	if err != nil {
		return "", asKind(err, models.ErrQuestionService)
	}
	answerKey = i.storeAnswerFile(ctx, sess.ID, sess.QuestionIndex, answerAudio)
	sess.AskQuestion(question, transcript)
	return answerKey, nil
}

func (i *impl) Reset(ctx context.Context, sessionID string) (interviewapimodels.SessionView, error) {
	sess, err := i.mutate(ctx, sessionID, opReset, func(sess *sessionstore.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	i.publish(*sess, models.EventReset, "")
	return sessionView(*sess), nil
}

func (i *impl) View(ctx context.Context, sessionID string) (interviewapimodels.SessionView, error) {
	sess, err := i.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	return sessionView(*sess), nil
}

func (i *impl) QuestionAudio(ctx context.Context, sessionID string) ([]byte, error) {
	sess, err := i.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.CurrentQuestion == "" {
		return nil, errors.Wrap(models.ErrInvalidState, "нет текущего вопроса")
	}
	ttsCtx, cancel := context.WithTimeout(ctx, i.deps.ServiceTimeout)
	defer cancel()
	audio, err := i.deps.Synthesizer.Synthesize(ttsCtx, sess.CurrentQuestion)
	if err != nil {
		return nil, asKind(err, models.ErrSynthesis)
	}
	return audio, nil
}

func (i *impl) Report(ctx context.Context, sessionID string) ([]byte, error) {
	sess, err := i.deps.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Profile == nil {
		return nil, errors.Wrap(models.ErrInvalidState, "резюме кандидата не загружено")
	}
	return i.buildReport(*sess)
}

func (i *impl) Finish(ctx context.Context, sessionID, notifyEmail string) (interviewapimodels.SessionView, error) {
	var message string
	sess, err := i.mutate(ctx, sessionID, opFinish, func(sess *sessionstore.Session) error {
		if sess.Profile == nil {
			return errors.Wrap(models.ErrInvalidState, "резюме кандидата не загружено")
		}
		report, err := i.buildReport(*sess)
		if err != nil {
			return err
		}
		message = i.sendReport(*sess, notifyEmail, report)
		sess.Reset()
		return nil
	})
	if err != nil {
		return interviewapimodels.SessionView{}, err
	}
	i.publish(*sess, models.EventReset, message)
	view := sessionView(*sess)
	view.Message = message
	return view, nil
}

// mutate выполняет операцию над копией сессии и сохраняет ее только при успехе.
// Занятость сессии проверяется раньше ее состояния.
func (i *impl) mutate(ctx context.Context, sessionID, operation string, fn func(sess *sessionstore.Session) error) (*sessionstore.Session, error) {
	logger := log.
		WithField("session_id", sessionID).
		WithField("operation", operation)
	var result *sessionstore.Session
	err := i.deps.Sessions.RunExclusive(ctx, sessionID, func() error {
		sess, err := i.deps.Sessions.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		work := *sess
		if err = fn(&work); err != nil {
			return err
		}
		work.UpdatedAt = time.Now()
		if err = i.deps.Sessions.Save(ctx, work); err != nil {
			return errors.Wrapf(models.ErrStorage, "ошибка сохранения сессии: %v", err)
		}
		result = &work
		return nil
	})
	kind := models.ErrorKind(err)
	if err != nil {
		metrics.ObserveInterviewOperation(operation, kind)
		if errors.Is(err, models.ErrBusy) || errors.Is(err, models.ErrSessionNotFound) {
			logger.WithError(err).Warn("операция сессии отклонена")
		} else {
			logger.WithError(err).Error("ошибка операции сессии")
			i.publishError(sessionID, err)
		}
		return nil, err
	}
	metrics.ObserveInterviewOperation(operation, "ok")
	logger.
		WithField("state", result.State).
		WithField("question_index", result.QuestionIndex).
		Info("операция сессии выполнена")
	return result, nil
}

func (i *impl) parseResume(ctx context.Context, text string) (json.RawMessage, error) {
	svcCtx, cancel := context.WithTimeout(ctx, i.deps.ServiceTimeout)
	defer cancel()
	parsed, err := i.deps.TextServices.ParseResume(svcCtx, text)
	if err != nil {
		return nil, asKind(err, models.ErrParsing)
	}
	return parsed, nil
}

func (i *impl) storeResumeFile(ctx context.Context, sessionID, email string, file models.File) {
	if i.deps.Files == nil {
		return
	}
	uploadCtx, cancel := context.WithTimeout(ctx, i.deps.ServiceTimeout)
	defer cancel()
	key, err := i.deps.Files.UploadResume(uploadCtx, helpers.NormalizeEmail(email), file)
	logger := log.WithField("session_id", sessionID).WithField("email", email)
	if err != nil {
		logger.WithError(err).Warn("исходный файл резюме не сохранен")
		return
	}
	logger.WithField("key", key).Debug("исходный файл резюме сохранен")
}

func (i *impl) storeAnswerFile(ctx context.Context, sessionID string, questionIndex int, audio []byte) string {
	if i.deps.Files == nil {
		return ""
	}
	uploadCtx, cancel := context.WithTimeout(ctx, i.deps.ServiceTimeout)
	defer cancel()
	key, err := i.deps.Files.UploadAnswer(uploadCtx, sessionID, questionIndex, audio)
	if err != nil {
		log.WithError(err).WithField("session_id", sessionID).Warn("запись ответа не сохранена")
		return ""
	}
	return key
}

// saveTurn журнал интервью для отчета, ошибка записи не прерывает интервью
func (i *impl) saveTurn(sess sessionstore.Session, answerKey string) {
	if i.deps.Turns == nil {
		return
	}
	_, err := i.deps.Turns.Save(dbmodels.InterviewTurn{
		SessionID:      sess.ID,
		CandidateEmail: sess.GetEmail(),
		QuestionIndex:  sess.QuestionIndex,
		Question:       sess.CurrentQuestion,
		Answer:         sess.LastTranscript,
		AnswerFileKey:  answerKey,
	})
	if err != nil {
		log.WithError(err).WithField("session_id", sess.ID).Error("ошибка записи хода интервью")
	}
}

func (i *impl) buildReport(sess sessionstore.Session) ([]byte, error) {
	turns := []dbmodels.InterviewTurn{}
	if i.deps.Turns != nil {
		list, err := i.deps.Turns.ListBySession(sess.ID)
		if err != nil {
			return nil, errors.Wrapf(models.ErrStorage, "ошибка получения журнала интервью: %v", err)
		}
		turns = list
	}
	data, err := pdfexport.GenerateInterviewReport(pdfexport.InterviewReport{
		SessionID:   sess.ID,
		Candidate:   *sess.Profile,
		Turns:       turns,
		GeneratedAt: time.Now(),
	}, i.deps.ReportFontFile)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования отчета")
	}
	return data, nil
}

func (i *impl) sendReport(sess sessionstore.Session, notifyEmail string, report []byte) string {
	recipient := notifyEmail
	if recipient == "" {
		recipient = i.deps.ReportRecipient
	}
	if recipient == "" || i.deps.Mailer == nil || !i.deps.Mailer.IsConfigured() {
		return "Interview finished"
	}
	subject := fmt.Sprintf("Interview report: %s", sess.Profile.Name)
	message := fmt.Sprintf("Interview with %s (%s) for position %s finished. Questions asked: %d.",
		sess.Profile.Name, sess.Profile.Email, sess.Profile.Position, sess.QuestionIndex)
	err := i.deps.Mailer.SendEMail(recipient, subject, message, smtp.Attachment{
		FileName:    fmt.Sprintf("interview-%s.pdf", sess.ID),
		ContentType: "application/pdf",
		Body:        report,
	})
	if err != nil {
		log.WithError(err).WithField("session_id", sess.ID).Error("отчет по интервью не отправлен")
		return "Interview finished, report was not sent"
	}
	return fmt.Sprintf("Interview finished, report sent to %s", recipient)
}

func (i *impl) publish(sess sessionstore.Session, code models.SessionEventCode, message string) {
	if i.deps.Events == nil {
		return
	}
	i.deps.Events.Publish(wsmodels.ServerMessage{
		ToSessionID:   sess.ID,
		Code:          string(code),
		Msg:           message,
		QuestionIndex: sess.QuestionIndex,
		Question:      sess.CurrentQuestion,
		Transcript:    sess.LastTranscript,
	})
}

func (i *impl) publishError(sessionID string, err error) {
	if i.deps.Events == nil {
		return
	}
	i.deps.Events.Publish(wsmodels.ServerMessage{
		ToSessionID: sessionID,
		Code:        string(models.EventError),
		Msg:         err.Error(),
		ErrorKind:   models.ErrorKind(err),
	})
}

// asKind гарантирует, что ошибка внешнего сервиса распознается как kind
func asKind(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return errors.Wrapf(kind, "%v", err)
}

func sessionView(sess sessionstore.Session) interviewapimodels.SessionView {
	return interviewapimodels.SessionView{
		SessionID:       sess.ID,
		State:           sess.State,
		Candidate:       sess.Profile,
		ParsedResume:    sess.ParsedResume,
		CurrentQuestion: sess.CurrentQuestion,
		QuestionIndex:   sess.QuestionIndex,
		AwaitingAnswer:  sess.AwaitingAnswer,
		LastTranscript:  sess.LastTranscript,
	}
}
