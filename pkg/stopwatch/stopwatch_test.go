package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStopwatchAccumulatesAcrossPauses(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sw := New()

	sw.Start(t0)
	assert.True(t, sw.Running())
	assert.Equal(t, 2*time.Second, sw.Elapsed(t0.Add(2*time.Second)))

	sw.Pause(t0.Add(3 * time.Second))
	assert.False(t, sw.Running())
	assert.Equal(t, 3*time.Second, sw.Elapsed(t0.Add(time.Hour)))

	sw.Start(t0.Add(10 * time.Second))
	assert.Equal(t, 5*time.Second, sw.Elapsed(t0.Add(12*time.Second)))
}

func TestStopwatchStartIsNoOpWhileRunning(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sw := New()

	sw.Start(t0)
	sw.Start(t0.Add(5 * time.Second))

	assert.Equal(t, 6*time.Second, sw.Elapsed(t0.Add(6*time.Second)))
}

func TestStopwatchLapsAndReset(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	sw := New()
	sw.Start(t0)

	sw.Lap(t0.Add(time.Second))
	sw.Lap(t0.Add(4 * time.Second))
	assert.Equal(t, []time.Duration{time.Second, 4 * time.Second}, sw.Laps())

	sw.Reset()
	assert.False(t, sw.Running())
	assert.Zero(t, sw.Elapsed(t0.Add(time.Minute)))
	assert.Empty(t, sw.Laps())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00:00.00"},
		{"centiseconds", 1234 * time.Millisecond, "00:00:01.23"},
		{"hours", time.Hour + 2*time.Minute + 3*time.Second, "01:02:03.00"},
		{"negative", -time.Second, "00:00:00.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.d))
		})
	}
}
