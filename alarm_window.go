package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/deskclock/pkg/alarm"
	"github.com/borgmon/deskclock/pkg/platform"
	"github.com/borgmon/deskclock/pkg/ui/components"
	"golang.design/x/hotkey"
)

const stopHoldDuration = 1500 * time.Millisecond

// AlarmWindow is the pop-up shown while an alarm rings
type AlarmWindow struct {
	window   fyne.Window
	alarm    *alarm.Alarm
	onStop   func()
	onSnooze func()

	finishOnce     sync.Once
	snoozeHotkey   *hotkey.Hotkey
	hotkeyMu       sync.Mutex
	stopMonitoring chan struct{}
}

func NewAlarmWindow(app fyne.App, a *alarm.Alarm, useHotkey bool, onStop, onSnooze func()) *AlarmWindow {
	aw := &AlarmWindow{
		alarm:          a,
		onStop:         onStop,
		onSnooze:       onSnooze,
		stopMonitoring: make(chan struct{}),
	}

	aw.window = app.NewWindow("Alarm")
	aw.window.SetFixedSize(true)
	aw.buildUI()

	// Closing the pop-up stops the alarm
	aw.window.SetCloseIntercept(func() {
		aw.finish(aw.onStop)
	})

	if useHotkey {
		aw.registerSnoozeHotkey()
	}
	aw.setupFocusMonitoring()

	return aw
}

func (aw *AlarmWindow) buildUI() {
	title := canvas.NewText(fmt.Sprintf("Alarm %s", aw.alarm.TimeOfDay), nil)
	title.TextSize = 36
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	days := widget.NewLabel(aw.alarm.Record().DaysLabel())
	days.Alignment = fyne.TextAlignCenter

	stopButton := components.NewHoldButton("Hold to Stop", stopHoldDuration, func() {
		aw.finish(aw.onStop)
	})

	nextSnooze := min(alarm.MaxSnoozeMinutes, aw.alarm.SnoozeMinutes()+alarm.SnoozeStep)
	snoozeButton := widget.NewButton(fmt.Sprintf("Snooze %d min", nextSnooze), func() {
		aw.finish(aw.onSnooze)
	})
	snoozeButton.Importance = widget.HighImportance

	hint := widget.NewLabel("Ctrl+Shift+S snoozes")
	hint.Importance = widget.LowImportance
	hint.Alignment = fyne.TextAlignCenter

	content := container.NewVBox(
		container.NewPadded(title),
		days,
		widget.NewSeparator(),
		snoozeButton,
		stopButton,
		hint,
	)

	aw.window.SetContent(container.NewPadded(content))
}

func (aw *AlarmWindow) Show() {
	aw.window.Show()
	aw.window.RequestFocus()
}

// finish runs action once, then tears the window down. Safe from any goroutine.
func (aw *AlarmWindow) finish(action func()) {
	aw.finishOnce.Do(func() {
		close(aw.stopMonitoring)
		aw.unregisterHotkey()

		if action != nil {
			action()
		}

		fyne.Do(func() {
			aw.window.Close()
		})
	})
}

func (aw *AlarmWindow) registerSnoozeHotkey() {
	go func() {
		hk := hotkey.New([]hotkey.Modifier{hotkey.ModCtrl, hotkey.ModShift}, hotkey.KeyS)
		if err := hk.Register(); err != nil {
			log.Printf("Failed to register snooze hotkey: %v", err)
			return
		}

		aw.hotkeyMu.Lock()
		select {
		case <-aw.stopMonitoring:
			// Window already gone
			aw.hotkeyMu.Unlock()
			hk.Unregister()
			return
		default:
		}
		aw.snoozeHotkey = hk
		aw.hotkeyMu.Unlock()

		select {
		case <-hk.Keydown():
			log.Printf("Snooze hotkey pressed for alarm %s", aw.alarm.TimeOfDay)
			aw.finish(aw.onSnooze)
		case <-aw.stopMonitoring:
		}
	}()
}

func (aw *AlarmWindow) unregisterHotkey() {
	aw.hotkeyMu.Lock()
	defer aw.hotkeyMu.Unlock()

	if aw.snoozeHotkey != nil {
		if err := aw.snoozeHotkey.Unregister(); err != nil {
			log.Printf("Failed to unregister snooze hotkey: %v", err)
		}
		aw.snoozeHotkey = nil
	}
}

func (aw *AlarmWindow) setupFocusMonitoring() {
	// Keep the pop-up in front until it is dealt with
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-aw.stopMonitoring:
				return
			case <-ticker.C:
				if !platform.IsAppActive() {
					log.Println("Alarm window not active - bringing to front")
					platform.ActivateApp()
					fyne.Do(func() {
						aw.window.Show()
					})
				}
			}
		}
	}()
}
