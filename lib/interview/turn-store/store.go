package turnstore

import (
	"time"

	dbmodels "ai-interviewer-backend/models/db"

	"gorm.io/gorm"
)

type Provider interface {
	Save(rec dbmodels.InterviewTurn) (id string, err error)
	ListBySession(sessionID string) ([]dbmodels.InterviewTurn, error)
	DeleteOlderThan(before time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.InterviewTurn) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListBySession(sessionID string) ([]dbmodels.InterviewTurn, error) {
	list := []dbmodels.InterviewTurn{}
	err := i.db.
		Where("session_id = ?", sessionID).
		Order("question_index").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteOlderThan(before time.Time) (int64, error) {
	tx := i.db.
		Where("created_at < ?", before).
		Delete(&dbmodels.InterviewTurn{})
	return tx.RowsAffected, tx.Error
}
