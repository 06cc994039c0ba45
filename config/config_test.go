package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, DefaultSnapshotFile, cfg.SnapshotFile)
	assert.Equal(t, DefaultDownloadDir, cfg.DownloadDir)
	assert.Equal(t, 14, cfg.LoanDays)
	assert.Equal(t, 1.0, cfg.DailyFine)
	assert.Equal(t, 3, cfg.MaxBooks)
	assert.Equal(t, 12, cfg.BcryptCost)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("LIBRARY_DATA_DIR", "/var/lib/library")
	t.Setenv("LIBRARY_LOAN_DAYS", "21")
	t.Setenv("LIBRARY_DAILY_FINE", "0.5")
	t.Setenv("LIBRARY_MAX_BOOKS", "5")

	cfg := NewConfig()

	assert.Equal(t, "/var/lib/library", cfg.DataDir)
	assert.Equal(t, 21, cfg.LoanDays)
	assert.Equal(t, 0.5, cfg.DailyFine)
	assert.Equal(t, 5, cfg.MaxBooks)
}
