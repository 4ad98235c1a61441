package candidatestore

import (
	"strings"

	dbmodels "ai-interviewer-backend/models/db"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	// Save создает или обновляет запись по email
	Save(rec dbmodels.Candidate) (created bool, err error)
	FindByEmail(email string) (*dbmodels.Candidate, error)
	List(filter dbmodels.CandidateFilter) (list []dbmodels.Candidate, rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// при повторной загрузке перезаписывается все, кроме email и created_at
var upsertColumns = []string{"name", "phone", "position", "raw_text", "full_data", "updated_at"}

func upsert(tx *gorm.DB, rec *dbmodels.Candidate) *gorm.DB {
	return tx.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).
		Create(rec)
}

func (i impl) Save(rec dbmodels.Candidate) (created bool, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.
			Model(&dbmodels.Candidate{}).
			Where("email = ?", rec.Email).
			Count(&count).
			Error
		if err != nil {
			return err
		}
		created = count == 0
		return upsert(tx, &rec).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (i impl) FindByEmail(email string) (*dbmodels.Candidate, error) {
	rec := dbmodels.Candidate{}
	err := i.db.
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(filter dbmodels.CandidateFilter) (list []dbmodels.Candidate, rowCount int64, err error) {
	list = []dbmodels.Candidate{}
	tx := i.db.Model(&dbmodels.Candidate{})
	if filter.Search != "" {
		searchValue := "%" + strings.ToLower(filter.Search) + "%"
		tx = tx.Where("LOWER(name) like ? or LOWER(email) like ? or phone like ?", searchValue, searchValue, searchValue)
	}
	if filter.Position != "" {
		tx = tx.Where("LOWER(position) = ?", strings.ToLower(filter.Position))
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return nil, 0, err
	}
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		tx = tx.Limit(filter.Limit).Offset((page - 1) * filter.Limit)
	}
	err = tx.
		Order("updated_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

// IsIntegrityError нарушение ограничений БД (класс 23 в PostgreSQL)
func IsIntegrityError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "23")
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated)
}
