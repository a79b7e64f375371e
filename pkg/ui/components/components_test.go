package components

import (
	"math"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldButtonFiresAfterHold(t *testing.T) {
	test.NewTempApp(t)
	var held atomic.Int32
	b := NewHoldButton("Stop", 150*time.Millisecond, func() { held.Add(1) })

	b.MouseDown(nil)

	require.Eventually(t, func() bool { return held.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1.0, b.Progress())
}

func TestHoldButtonReleaseEarlyCancels(t *testing.T) {
	test.NewTempApp(t)
	var held atomic.Int32
	b := NewHoldButton("Stop", time.Second, func() { held.Add(1) })

	b.MouseDown(nil)
	time.Sleep(120 * time.Millisecond)
	b.MouseUp(nil)
	time.Sleep(1200 * time.Millisecond)

	assert.Zero(t, held.Load())
	assert.Zero(t, b.Progress())
}

func TestAlarmListRemoveSelected(t *testing.T) {
	test.NewTempApp(t)
	var removed []string
	al, _ := NewAlarmList(AlarmListConfig{OnRemove: func(id string) { removed = append(removed, id) }})

	al.SetItems([]AlarmItem{{ID: "a", Label: "07:30  Once"}, {ID: "b", Label: "08:00  Mon"}})
	al.RemoveSelected()
	assert.Empty(t, removed, "nothing selected")

	al.Select(1)
	assert.Equal(t, "b", al.SelectedID())
	al.RemoveSelected()

	assert.Equal(t, []string{"b"}, removed)
	assert.Empty(t, al.SelectedID())
}

func TestAlarmListKeepsSelectionAcrossUpdates(t *testing.T) {
	test.NewTempApp(t)
	al, _ := NewAlarmList(AlarmListConfig{})

	al.SetItems([]AlarmItem{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	al.Select(2)

	al.SetItems([]AlarmItem{{ID: "b"}, {ID: "c"}})
	assert.Equal(t, "c", al.SelectedID())

	al.SetItems([]AlarmItem{{ID: "b"}})
	assert.Empty(t, al.SelectedID())
}

func TestDigitalClock(t *testing.T) {
	test.NewTempApp(t)
	c := NewDigitalClock("15:04:05")

	c.SetTime(time.Date(2024, 3, 4, 7, 5, 9, 0, time.Local))

	assert.Equal(t, "07:05:09", c.Text())
}

func TestHandFractions(t *testing.T) {
	hour, minute, second := HandFractions(time.Date(2024, 3, 4, 15, 30, 0, 0, time.Local))

	assert.InDelta(t, 3.5/12, hour, 1e-9)
	assert.InDelta(t, 0.5, minute, 1e-9)
	assert.InDelta(t, 0, second, 1e-9)
}

func TestHandEnd(t *testing.T) {
	center := fyne.NewPos(100, 100)

	twelve := HandEnd(center, 50, 0)
	assert.InDelta(t, 100, twelve.X, 1e-3)
	assert.InDelta(t, 50, twelve.Y, 1e-3)

	three := HandEnd(center, 50, 0.25)
	assert.InDelta(t, 150, three.X, 1e-3)
	assert.InDelta(t, 100, three.Y, 1e-3)

	six := HandEnd(center, 50, 0.5)
	assert.InDelta(t, 100, six.X, 1e-3)
	assert.InDelta(t, 150, six.Y, 1e-3)
	assert.False(t, math.IsNaN(float64(six.X)))
}
