package candidatestore

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	dbmodels "ai-interviewer-backend/models/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

func TestUpsert(t *testing.T) {
	t.Run(`columns exist and cover everything but key and created_at`, func(t *testing.T) {
		s, err := schema.Parse(&dbmodels.Candidate{}, &sync.Map{}, schema.NamingStrategy{})
		require.NoError(t, err)
		expected := []string{}
		for _, field := range s.Fields {
			if field.DBName == "" || field.PrimaryKey || field.DBName == "created_at" {
				continue
			}
			expected = append(expected, field.DBName)
		}
		require.ElementsMatch(t, expected, upsertColumns)
	})

	t.Run(`insert updates on email conflict`, func(t *testing.T) {
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN: "host=localhost user=postgres dbname=test sslmode=disable",
		}), &gorm.Config{DisableAutomaticPing: true})
		require.NoError(t, err)

		rec := dbmodels.Candidate{
			Email: "john@x.com",
			Name:  "John Doe",
			Phone: "+1 555 0100",
			FullData: dbmodels.ResumeData{
				ParsedResume: json.RawMessage(`{"skills":["Go"]}`),
			},
		}
		sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
			return upsert(tx, &rec)
		})
		require.Contains(t, sql, `INSERT INTO "resumes"`)
		require.Contains(t, sql, `ON CONFLICT ("email") DO UPDATE SET`)
		for _, column := range upsertColumns {
			require.Contains(t, sql, fmt.Sprintf(`"%s"="excluded"."%s"`, column, column))
		}
		require.NotContains(t, sql, `"created_at"="excluded"."created_at"`)
	})
}
