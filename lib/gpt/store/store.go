package ailogstore

import (
	"time"

	dbmodels "ai-interviewer-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Provider журнал запросов к языковой модели
type Provider interface {
	Save(rec dbmodels.AiLog) (id string, err error)
	DeleteOlderThan(before time.Time) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.AiLog) (string, error) {
	if err := i.db.Create(&rec).Error; err != nil {
		return "", errors.Wrap(err, "ошибка сохранения запроса к ИИ")
	}
	return rec.ID, nil
}

func (i impl) DeleteOlderThan(before time.Time) (int64, error) {
	tx := i.db.
		Where("created_at < ?", before).
		Delete(&dbmodels.AiLog{})
	if tx.Error != nil {
		return 0, errors.Wrap(tx.Error, "ошибка удаления устаревших запросов к ИИ")
	}
	return tx.RowsAffected, nil
}
