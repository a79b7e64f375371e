package components

import (
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// DigitalClock renders the time as large text
type DigitalClock struct {
	widget.BaseWidget
	Layout string // time.Format layout

	mu   sync.Mutex
	text string
}

// NewDigitalClock creates a digital face using layout
func NewDigitalClock(layout string) *DigitalClock {
	c := &DigitalClock{Layout: layout}
	c.ExtendBaseWidget(c)
	return c
}

// SetTime updates the displayed time
func (c *DigitalClock) SetTime(t time.Time) {
	c.mu.Lock()
	c.text = t.Format(c.Layout)
	c.mu.Unlock()
	c.Refresh()
}

// Text returns the currently displayed string
func (c *DigitalClock) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// CreateRenderer implements fyne.Widget
func (c *DigitalClock) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(c.Text(), theme.Color(theme.ColorNameForeground))
	text.TextSize = 64
	text.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	text.Alignment = fyne.TextAlignCenter

	return &digitalClockRenderer{clock: c, text: text}
}

type digitalClockRenderer struct {
	clock *DigitalClock
	text  *canvas.Text
}

func (r *digitalClockRenderer) Layout(size fyne.Size) {
	r.text.Resize(size)
}

func (r *digitalClockRenderer) MinSize() fyne.Size {
	return r.text.MinSize()
}

func (r *digitalClockRenderer) Refresh() {
	r.text.Text = r.clock.Text()
	r.text.Color = theme.Color(theme.ColorNameForeground)
	r.text.Refresh()
}

func (r *digitalClockRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.text}
}

func (r *digitalClockRenderer) Destroy() {}

// AnalogClock renders the time with hour, minute and second hands
type AnalogClock struct {
	widget.BaseWidget

	mu sync.Mutex
	t  time.Time
}

// NewAnalogClock creates an analog face
func NewAnalogClock() *AnalogClock {
	c := &AnalogClock{}
	c.ExtendBaseWidget(c)
	return c
}

// SetTime updates the hands
func (c *AnalogClock) SetTime(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
	c.Refresh()
}

func (c *AnalogClock) current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

// CreateRenderer implements fyne.Widget
func (c *AnalogClock) CreateRenderer() fyne.WidgetRenderer {
	r := &analogClockRenderer{
		clock:  c,
		face:   canvas.NewCircle(theme.Color(theme.ColorNameInputBackground)),
		hour:   canvas.NewLine(theme.Color(theme.ColorNameForeground)),
		minute: canvas.NewLine(theme.Color(theme.ColorNameForeground)),
		second: canvas.NewLine(theme.Color(theme.ColorNamePrimary)),
	}
	r.face.StrokeColor = theme.Color(theme.ColorNameForeground)
	r.face.StrokeWidth = 2
	r.hour.StrokeWidth = 6
	r.minute.StrokeWidth = 4
	r.second.StrokeWidth = 1.5

	for n := 0; n < 12; n++ {
		tick := canvas.NewLine(theme.Color(theme.ColorNameForeground))
		tick.StrokeWidth = 2
		r.ticks = append(r.ticks, tick)
	}

	return r
}

type analogClockRenderer struct {
	clock  *AnalogClock
	face   *canvas.Circle
	ticks  []*canvas.Line
	hour   *canvas.Line
	minute *canvas.Line
	second *canvas.Line
}

func (r *analogClockRenderer) Layout(size fyne.Size) {
	diameter := min(size.Width, size.Height) - theme.Padding()*2
	radius := diameter / 2
	center := fyne.NewPos(size.Width/2, size.Height/2)

	r.face.Move(fyne.NewPos(center.X-radius, center.Y-radius))
	r.face.Resize(fyne.NewSize(diameter, diameter))

	for i, tick := range r.ticks {
		fraction := float64(i) / 12
		tick.Position1 = HandEnd(center, radius*0.85, fraction)
		tick.Position2 = HandEnd(center, radius*0.95, fraction)
	}

	hourF, minuteF, secondF := HandFractions(r.clock.current())
	placeHand(r.hour, center, radius*0.5, hourF)
	placeHand(r.minute, center, radius*0.75, minuteF)
	placeHand(r.second, center, radius*0.85, secondF)
}

func placeHand(hand *canvas.Line, center fyne.Position, length float32, fraction float64) {
	hand.Position1 = center
	hand.Position2 = HandEnd(center, length, fraction)
}

func (r *analogClockRenderer) MinSize() fyne.Size {
	return fyne.NewSize(220, 220)
}

func (r *analogClockRenderer) Refresh() {
	r.Layout(r.clock.Size())
	for _, o := range r.Objects() {
		o.Refresh()
	}
}

func (r *analogClockRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.face}
	for _, tick := range r.ticks {
		objects = append(objects, tick)
	}
	return append(objects, r.hour, r.minute, r.second)
}

func (r *analogClockRenderer) Destroy() {}

// HandFractions returns how far round the dial each hand is, 0 at twelve o'clock
func HandFractions(t time.Time) (hour, minute, second float64) {
	s := float64(t.Second()) + float64(t.Nanosecond())/1e9
	m := float64(t.Minute()) + s/60
	h := float64(t.Hour()%12) + m/60
	return h / 12, m / 60, s / 60
}

// HandEnd returns the tip of a hand of the given length pointing at fraction of a full turn.
// Screen y grows downward.
func HandEnd(center fyne.Position, length float32, fraction float64) fyne.Position {
	angle := fraction * 2 * math.Pi
	return fyne.NewPos(
		center.X+length*float32(math.Sin(angle)),
		center.Y-length*float32(math.Cos(angle)),
	)
}
