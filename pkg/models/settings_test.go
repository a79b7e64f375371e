package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsTimeLayout(t *testing.T) {
	settings := DefaultSettings()
	assert.False(t, settings.IsAnalog())

	settings.Use24Hour = true
	assert.Equal(t, "15:04:05", settings.TimeLayout())

	settings.Use24Hour = false
	assert.Equal(t, "3:04:05 PM", settings.TimeLayout())
}
