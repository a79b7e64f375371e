package store

import (
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/borgmon/deskclock/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestSettingsStoreDefaults(t *testing.T) {
	s := NewSettingsStore(test.NewTempApp(t).Preferences())

	assert.Equal(t, models.DefaultSettings(), s.Load())
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	s := NewSettingsStore(prefs)
	want := models.Settings{AutoStart: true, ClockFace: models.ClockFaceAnalog, Use24Hour: false}

	s.Save(want)

	assert.Equal(t, want, NewSettingsStore(prefs).Load())
}

func TestSettingsStoreRejectsUnknownFace(t *testing.T) {
	prefs := test.NewTempApp(t).Preferences()
	prefs.SetString("clock_face", "sundial")

	assert.Equal(t, models.ClockFaceDigital, NewSettingsStore(prefs).Load().ClockFace)
}
