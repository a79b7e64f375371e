package alarm

// AudioDevice is the process-wide playback channel shared by all alarms.
// Only one alarm holds it at a time.
type AudioDevice interface {
	// Load prepares the sound at path for playback, stopping anything already playing
	Load(path string) error
	// SetVolume applies v in [0, 1] to current and future playback
	SetVolume(v float64)
	// PlayLooping starts the loaded sound and repeats it until Stop
	PlayLooping() error
	Stop()
}
