package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jcal/internal/calendar"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
calendar: gregorian
week_start: friday
date_format: "YYYY/MM/DD"
ics:
  - url: https://example.com/a.ics
    id: a
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, calendar.Gregorian, cfg.Kind())
	assert.Equal(t, "saturday", cfg.WeekStart)
	assert.Equal(t, time.Saturday, cfg.FirstWeekday())
	assert.Equal(t, "YYYY/MM/DD", cfg.DateFormat)
	assert.Equal(t, defaultRefreshCron, cfg.RefreshCron)
	assert.Equal(t, defaultHorizonDays, cfg.HorizonDays)
	require.Len(t, cfg.ICS, 1)
	assert.Equal(t, "a", cfg.ICS[0].ID)
	assert.NoError(t, cfg.Validate())
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ics: [unterminated"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)

	_, err = Load("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Calendar = "islamic"
	cfg.RefreshCron = "every now and then"
	cfg.Timezone = "Mars/Olympus"
	cfg.ICS = []ICSConfig{{ID: "x"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar")
	assert.Contains(t, err.Error(), "refresh")
	assert.Contains(t, err.Error(), "timezone")
	assert.Contains(t, err.Error(), "ics[0]")
	assert.Equal(t, time.Local, cfg.Location())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.OneBasedClock = true
	cfg.WeekStart = "monday"
	cfg.BasicAuth = &BasicAuthConfig{Username: "u", Password: "p"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
	assert.Equal(t, time.Monday, loaded.FirstWeekday())

	assert.Error(t, Save(path, nil))
}
