package components

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const holdTickInterval = 50 * time.Millisecond

// HoldButton fires OnHeld only after it has been held down for HoldDuration.
// Releasing or leaving the button early resets the progress bar.
type HoldButton struct {
	widget.BaseWidget
	Text         string
	HoldDuration time.Duration
	OnHeld       func()

	mu       sync.Mutex
	holding  bool
	hovered  bool
	progress float64
	ticker   *time.Ticker
}

// NewHoldButton creates a new HoldButton
func NewHoldButton(text string, hold time.Duration, onHeld func()) *HoldButton {
	b := &HoldButton{
		Text:         text,
		HoldDuration: hold,
		OnHeld:       onHeld,
	}
	b.ExtendBaseWidget(b)
	return b
}

// CreateRenderer implements fyne.Widget
func (b *HoldButton) CreateRenderer() fyne.WidgetRenderer {
	text := canvas.NewText(b.Text, theme.Color(theme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter
	text.TextSize = theme.TextSubHeadingSize()

	bg := canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	bg.CornerRadius = theme.InputRadiusSize()
	progressBar := canvas.NewRectangle(theme.Color(theme.ColorNamePrimary))
	progressBar.CornerRadius = theme.InputRadiusSize()

	return &holdButtonRenderer{
		button:      b,
		text:        text,
		bg:          bg,
		progressBar: progressBar,
	}
}

// Progress returns how far the current hold has advanced, 0 to 1
func (b *HoldButton) Progress() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.progress
}

func (b *HoldButton) setProgress(progress float64) {
	b.mu.Lock()
	b.progress = progress
	b.mu.Unlock()
	fyne.Do(b.Refresh)
}

// Tapped implements fyne.Tappable
func (b *HoldButton) Tapped(*fyne.PointEvent) {}

// MouseIn implements desktop.Hoverable
func (b *HoldButton) MouseIn(*desktop.MouseEvent) {
	b.hovered = true
	b.Refresh()
}

// MouseMoved implements desktop.Hoverable
func (b *HoldButton) MouseMoved(*desktop.MouseEvent) {}

// MouseOut implements desktop.Hoverable
func (b *HoldButton) MouseOut() {
	b.hovered = false
	// Leaving the button counts as letting go
	b.release()
	b.Refresh()
}

// MouseDown implements desktop.Mouseable
func (b *HoldButton) MouseDown(*desktop.MouseEvent) {
	b.press()
}

// MouseUp implements desktop.Mouseable
func (b *HoldButton) MouseUp(*desktop.MouseEvent) {
	b.release()
}

func (b *HoldButton) press() {
	b.mu.Lock()
	if b.holding {
		b.mu.Unlock()
		return
	}
	b.holding = true
	b.progress = 0

	hold := b.HoldDuration
	if hold <= 0 {
		hold = holdTickInterval
	}
	step := float64(holdTickInterval) / float64(hold)
	ticker := time.NewTicker(holdTickInterval)
	b.ticker = ticker
	b.mu.Unlock()

	go func() {
		for range ticker.C {
			b.mu.Lock()
			if !b.holding || b.ticker != ticker {
				b.mu.Unlock()
				return
			}
			b.progress = min(1, b.progress+step)
			done := b.progress >= 1
			if done {
				b.holding = false
				ticker.Stop()
			}
			b.mu.Unlock()

			fyne.Do(b.Refresh)
			if done {
				if b.OnHeld != nil {
					b.OnHeld()
				}
				return
			}
		}
	}()
}

func (b *HoldButton) release() {
	b.mu.Lock()
	if !b.holding {
		b.mu.Unlock()
		return
	}
	b.holding = false
	if b.ticker != nil {
		b.ticker.Stop()
		b.ticker = nil
	}
	b.mu.Unlock()

	b.setProgress(0)
}

type holdButtonRenderer struct {
	button      *HoldButton
	text        *canvas.Text
	bg          *canvas.Rectangle
	progressBar *canvas.Rectangle
}

func (r *holdButtonRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.text.Resize(size)

	// Progress bar fills from left to right
	progressWidth := size.Width * float32(r.button.Progress())
	r.progressBar.Resize(fyne.NewSize(progressWidth, size.Height))
	r.progressBar.Move(fyne.NewPos(0, 0))
}

func (r *holdButtonRenderer) MinSize() fyne.Size {
	textSize := r.text.MinSize()
	minWidth := textSize.Width + theme.Padding()*4
	minHeight := textSize.Height + theme.Padding()*2

	return fyne.NewSize(max(minWidth, 200), max(minHeight, 64))
}

func (r *holdButtonRenderer) Refresh() {
	r.text.Text = r.button.Text
	r.text.Color = theme.Color(theme.ColorNameForeground)

	if r.button.hovered {
		r.bg.FillColor = theme.Color(theme.ColorNameHover)
	} else {
		r.bg.FillColor = theme.Color(theme.ColorNameButton)
	}

	r.Layout(r.bg.Size())

	r.bg.Refresh()
	r.progressBar.Refresh()
	r.text.Refresh()
}

func (r *holdButtonRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.bg, r.progressBar, r.text}
}

func (r *holdButtonRenderer) Destroy() {}

func (r *holdButtonRenderer) BackgroundColor() color.Color {
	return theme.Color(theme.ColorNameButton)
}
