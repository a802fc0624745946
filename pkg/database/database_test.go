package database

import (
	"bytes"
	"coursehub_backend/internal/config"
	"coursehub_backend/internal/model"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	for _, mode := range []string{"release", "debug"} {
		t.Run(mode, func(t *testing.T) {
			var buf bytes.Buffer
			db, err := Open(sqlite.Open(filepath.Join(t.TempDir(), "log.db")), NewGormLogger(&buf, mode))
			require.NoError(t, err)
			require.NoError(t, Migrate(db))

			var progress model.CourseProgress
			err = db.Where("user_id = ? AND course_id = ?", 1, 1).First(&progress).Error
			assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
			assert.NotContains(t, buf.String(), "record not found")

			sqlDB, err := db.DB()
			require.NoError(t, err)
			require.NoError(t, sqlDB.Close())
		})
	}
}

func TestGormLoggerReportsErrors(t *testing.T) {
	var buf bytes.Buffer
	db, err := Open(sqlite.Open(filepath.Join(t.TempDir(), "log.db")), NewGormLogger(&buf, "release"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	err = db.Exec("SELECT * FROM missing_table").Error
	require.Error(t, err)
	assert.Contains(t, buf.String(), "missing_table")
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}
