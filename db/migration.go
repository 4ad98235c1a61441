package db

import (
	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	models := []struct {
		name  string
		model interface{}
	}{
		{"Candidate", &dbmodels.Candidate{}},
		{"InterviewTurn", &dbmodels.InterviewTurn{}},
		{"AiLog", &dbmodels.AiLog{}},
	}
	for _, m := range models {
		if err := DB.AutoMigrate(m.model); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %s", m.name)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
