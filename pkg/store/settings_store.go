package store

import (
	"fyne.io/fyne/v2"
	"github.com/borgmon/deskclock/pkg/models"
)

// SettingsStore handles user settings persistence using Fyne preferences
type SettingsStore struct {
	prefs fyne.Preferences
}

// NewSettingsStore creates a new SettingsStore instance
func NewSettingsStore(prefs fyne.Preferences) *SettingsStore {
	return &SettingsStore{prefs: prefs}
}

// Load loads settings from preferences
func (ss *SettingsStore) Load() models.Settings {
	defaults := models.DefaultSettings()

	settings := models.Settings{
		AutoStart: ss.prefs.BoolWithFallback("auto_start", defaults.AutoStart),
		ClockFace: models.ClockFace(ss.prefs.StringWithFallback("clock_face", string(defaults.ClockFace))),
		Use24Hour: ss.prefs.BoolWithFallback("use_24_hour", defaults.Use24Hour),
	}

	if settings.ClockFace != models.ClockFaceDigital && settings.ClockFace != models.ClockFaceAnalog {
		settings.ClockFace = defaults.ClockFace
	}

	return settings
}

// Save saves settings to preferences
func (ss *SettingsStore) Save(settings models.Settings) {
	ss.prefs.SetBool("auto_start", settings.AutoStart)
	ss.prefs.SetString("clock_face", string(settings.ClockFace))
	ss.prefs.SetBool("use_24_hour", settings.Use24Hour)
}
