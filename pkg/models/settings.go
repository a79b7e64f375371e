package models

// ClockFace selects how the clock mode renders the time
type ClockFace string

const (
	ClockFaceDigital ClockFace = "digital"
	ClockFaceAnalog  ClockFace = "analog"
)

// Settings holds user preferences edited from the UI
type Settings struct {
	AutoStart bool      `json:"auto_start"`
	ClockFace ClockFace `json:"clock_face"`
	Use24Hour bool      `json:"use_24_hour"`
}

// DefaultSettings returns the settings used on first launch
func DefaultSettings() Settings {
	return Settings{
		AutoStart: false,
		ClockFace: ClockFaceDigital,
		Use24Hour: true,
	}
}

// IsAnalog reports whether the analog face is selected
func (s Settings) IsAnalog() bool {
	return s.ClockFace == ClockFaceAnalog
}

// TimeLayout returns the time.Format layout for the digital face
func (s Settings) TimeLayout() string {
	if s.Use24Hour {
		return "15:04:05"
	}
	return "3:04:05 PM"
}
