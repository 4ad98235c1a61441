package candidate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"ai-interviewer-backend/db"
	candidatestore "ai-interviewer-backend/lib/candidate/store"
	xlsexport "ai-interviewer-backend/lib/export/xls"
	"ai-interviewer-backend/lib/utils/helpers"
	"ai-interviewer-backend/models"
	candidateapimodels "ai-interviewer-backend/models/api/candidate"
	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Save сохраняет (или обновляет) резюме кандидата, возвращает сообщение о результате
	Save(contact dbmodels.ContactInfo, parsedResume json.RawMessage, rawText string) (string, error)
	// Find запись кандидата, models.ErrNotFound если записи нет
	Find(email string) (*dbmodels.Candidate, error)
	List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error)
	Export(filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = New(candidatestore.NewInstance(db.DB), xlsexport.Instance)
}

func New(store candidatestore.Provider, exporter xlsexport.Provider) Provider {
	return impl{
		store:    store,
		exporter: exporter,
	}
}

type impl struct {
	store    candidatestore.Provider
	exporter xlsexport.Provider
}

const exportLimit = 10000

func (i impl) Save(contact dbmodels.ContactInfo, parsedResume json.RawMessage, rawText string) (string, error) {
	// ключ записи без учета регистра, контакты сохраняются как введены
	key := helpers.NormalizeEmail(contact.Email)
	logger := log.WithField("email", key)
	rec := dbmodels.Candidate{
		Email:    key,
		Name:     contact.Name,
		Phone:    contact.Phone,
		Position: contact.Position,
		RawText:  rawText,
		FullData: dbmodels.ResumeData{
			ContactInfo:  contact,
			ParsedResume: parsedResume,
			RawText:      rawText,
		},
	}
	created, err := i.store.Save(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения резюме кандидата")
		if candidatestore.IsIntegrityError(err) {
			return "", errors.Wrap(models.ErrStorage, "database integrity error")
		}
		return "", errors.Wrapf(models.ErrStorage, "database error: %s", err.Error())
	}
	if created {
		logger.Info("резюме кандидата сохранено")
		return fmt.Sprintf("Record created successfully for %s", contact.Email), nil
	}
	logger.Info("резюме кандидата обновлено")
	return fmt.Sprintf("Record updated successfully for %s", contact.Email), nil
}

func (i impl) Find(email string) (*dbmodels.Candidate, error) {
	email = helpers.NormalizeEmail(email)
	rec, err := i.store.FindByEmail(email)
	if err != nil {
		log.WithError(err).WithField("email", email).Error("ошибка поиска кандидата")
		return nil, errors.Wrapf(models.ErrStorage, "database error: %s", err.Error())
	}
	if rec == nil {
		return nil, errors.Wrapf(models.ErrNotFound, "no candidate found with email %s", email)
	}
	return rec, nil
}

func (i impl) List(filter candidateapimodels.CandidateFilter) ([]candidateapimodels.CandidateView, int64, error) {
	list, rowCount, err := i.store.List(filter.ToDb())
	if err != nil {
		return nil, 0, errors.Wrapf(models.ErrStorage, "database error: %s", err.Error())
	}
	result := make([]candidateapimodels.CandidateView, 0, len(list))
	for _, rec := range list {
		result = append(result, candidateapimodels.CandidateConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) Export(filter candidateapimodels.CandidateFilter) (*bytes.Buffer, error) {
	dbFilter := filter.ToDb()
	dbFilter.Page = 1
	dbFilter.Limit = exportLimit
	list, _, err := i.store.List(dbFilter)
	if err != nil {
		return nil, errors.Wrapf(models.ErrStorage, "database error: %s", err.Error())
	}
	return i.exporter.ExportCandidateList(list)
}
