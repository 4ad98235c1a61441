package xlsexport

import (
	"bytes"
	"strings"

	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportCandidateList(list []dbmodels.Candidate) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var candidateHeaders = []string{"ФИО", "Email", "Телефон", "Должность", "Навыки", "Загрузил", "Дата загрузки", "Дата обновления"}

const sheetName = "Кандидаты"

func (i impl) ExportCandidateList(list []dbmodels.Candidate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
	}
	w := newSheetWriter(f, sheetName, len(candidateHeaders))
	if err := w.writeHeader(candidateHeaders); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	for _, item := range list {
		if err := w.writeRow(candidateRow(item)); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if err := w.styleDataRows(); err != nil {
		return nil, errors.Wrap(err, "ошибка оформления таблицы xlsx")
	}
	return f.WriteToBuffer()
}

func candidateRow(item dbmodels.Candidate) []interface{} {
	return []interface{}{
		item.Name,
		item.Email,
		item.Phone,
		item.Position,
		strings.Join(item.FullData.Skills(), ", "),
		item.GetContactInfo().ProcessedBy,
		formatDate(item.CreatedAt),
		formatDate(item.UpdatedAt),
	}
}
