// Package testutil builds throwaway databases for tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	dbpkg "github.com/Soulinho/pandawok-project/internal/db"
	"github.com/Soulinho/pandawok-project/internal/models"
)

// NewDB opens a private in-memory sqlite database with the full schema.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// SeedSalon creates a salon with free tables using the given ids.
func SeedSalon(t *testing.T, db *gorm.DB, id, name string, tableIDs ...uint) {
	t.Helper()

	require.NoError(t, db.Create(&models.Salon{ID: id, Name: name}).Error)
	for _, tid := range tableIDs {
		require.NoError(t, db.Create(&models.Table{
			ID:      tid,
			SalonID: id,
			Shape:   "round",
			Size:    "small",
			Status:  "free",
		}).Error)
	}
}
