package main

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/deskclock/pkg/alarm"
	"github.com/borgmon/deskclock/pkg/countdown"
	"github.com/borgmon/deskclock/pkg/models"
	"github.com/borgmon/deskclock/pkg/platform"
	"github.com/borgmon/deskclock/pkg/stopwatch"
	"github.com/borgmon/deskclock/pkg/ui/components"
)

const displayRefreshInterval = 50 * time.Millisecond

type ClockWindow struct {
	window fyne.Window
	dc     *DeskClock

	// Clock tab
	digital   *components.DigitalClock
	analog    *components.AnalogClock
	faceStack *fyne.Container

	// Stopwatch tab
	stopwatch      *stopwatch.Stopwatch
	stopwatchLabel *widget.Label
	stopwatchStart *widget.Button
	lapsList       *widget.List

	// Timer tab
	timer        *countdown.Timer
	timerEntry   *widget.Entry
	timerLabel   *widget.Label
	timerPause   *widget.Button
	timerPlaying bool

	// Alarms tab
	alarmEntry *widget.Entry
	dayChecks  map[models.Weekday]*widget.Check
	alarmList  *components.AlarmList
	nextLabel  *widget.Label

	ticker *time.Ticker
	done   chan struct{}
}

func NewClockWindow(dc *DeskClock) *ClockWindow {
	cw := &ClockWindow{
		dc:        dc,
		stopwatch: stopwatch.New(),
		timer:     countdown.New(),
		dayChecks: make(map[models.Weekday]*widget.Check),
		done:      make(chan struct{}),
	}

	cw.window = dc.app.NewWindow("Desk Clock")
	cw.window.Resize(fyne.NewSize(480, 520))
	cw.buildUI()
	cw.applySettings(dc.settings)
	cw.refreshAlarms()

	// Closing the window keeps the app running in the tray when there is one
	if _, ok := dc.app.(desktop.App); ok {
		cw.window.SetCloseIntercept(func() {
			cw.window.Hide()
			platform.SetDockVisible(false)
		})
	} else {
		cw.window.SetOnClosed(dc.quit)
	}

	cw.startDisplay()
	return cw
}

func (cw *ClockWindow) Show() {
	platform.SetDockVisible(true)
	cw.window.Show()
	cw.window.RequestFocus()
}

func (cw *ClockWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItemWithIcon("Clock", theme.HistoryIcon(), cw.buildClockTab()),
		container.NewTabItemWithIcon("Stopwatch", theme.MediaPlayIcon(), cw.buildStopwatchTab()),
		container.NewTabItemWithIcon("Timer", theme.MediaStopIcon(), cw.buildTimerTab()),
		container.NewTabItemWithIcon("Alarms", theme.NotificationIcon(), cw.buildAlarmsTab()),
	)

	cw.window.SetContent(tabs)
	cw.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File",
			fyne.NewMenuItem("Settings", cw.dc.showSettingsWindow),
		),
	))
}

func (cw *ClockWindow) buildClockTab() fyne.CanvasObject {
	cw.digital = components.NewDigitalClock(cw.dc.settings.TimeLayout())
	cw.analog = components.NewAnalogClock()
	cw.faceStack = container.NewStack(cw.digital, cw.analog)

	switchButton := widget.NewButton("Switch Face", func() {
		settings := cw.dc.settings
		if settings.IsAnalog() {
			settings.ClockFace = models.ClockFaceDigital
		} else {
			settings.ClockFace = models.ClockFaceAnalog
		}
		if err := cw.dc.applySettings(settings); err != nil {
			dialog.ShowError(err, cw.window)
		}
	})

	return container.NewBorder(nil, container.NewCenter(switchButton), nil, nil, cw.faceStack)
}

func (cw *ClockWindow) buildStopwatchTab() fyne.CanvasObject {
	cw.stopwatchLabel = widget.NewLabel(stopwatch.Format(0))
	cw.stopwatchLabel.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	cw.stopwatchLabel.SizeName = theme.SizeNameHeadingText
	cw.stopwatchLabel.Alignment = fyne.TextAlignCenter

	cw.stopwatchStart = widget.NewButton("Start", func() {
		now := time.Now()
		if cw.stopwatch.Running() {
			cw.stopwatch.Pause(now)
			cw.stopwatchStart.SetText("Start")
		} else {
			cw.stopwatch.Start(now)
			cw.stopwatchStart.SetText("Pause")
		}
	})
	cw.stopwatchStart.Importance = widget.HighImportance

	lapButton := widget.NewButton("Lap", func() {
		if cw.stopwatch.Running() {
			cw.stopwatch.Lap(time.Now())
			cw.lapsList.Refresh()
		}
	})

	resetButton := widget.NewButton("Reset", func() {
		cw.stopwatch.Reset()
		cw.stopwatchStart.SetText("Start")
		cw.stopwatchLabel.SetText(stopwatch.Format(0))
		cw.lapsList.Refresh()
	})

	cw.lapsList = widget.NewList(
		func() int {
			return len(cw.stopwatch.Laps())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("Lap 00  00:00:00.00")
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			laps := cw.stopwatch.Laps()
			if i < len(laps) {
				o.(*widget.Label).SetText(fmt.Sprintf("Lap %02d  %s", i+1, stopwatch.Format(laps[i])))
			}
		})

	controls := container.NewHBox(layout.NewSpacer(), cw.stopwatchStart, lapButton, resetButton, layout.NewSpacer())
	return container.NewBorder(container.NewVBox(cw.stopwatchLabel, controls), nil, nil, nil, cw.lapsList)
}

func (cw *ClockWindow) buildTimerTab() fyne.CanvasObject {
	cw.timerEntry = widget.NewEntry()
	cw.timerEntry.SetPlaceHolder("Minutes (e.g. 1 or 0.5)")

	cw.timerLabel = widget.NewLabel(countdown.Format(0))
	cw.timerLabel.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	cw.timerLabel.SizeName = theme.SizeNameHeadingText
	cw.timerLabel.Alignment = fyne.TextAlignCenter

	startButton := widget.NewButton("Start", func() {
		d, err := countdown.ParseMinutes(cw.timerEntry.Text)
		if err != nil {
			dialog.ShowError(err, cw.window)
			return
		}
		cw.stopTimerSound()
		if err := cw.timer.Start(d, time.Now()); err != nil {
			dialog.ShowError(err, cw.window)
			return
		}
		cw.timerPause.SetText("Pause")
	})
	startButton.Importance = widget.HighImportance

	cw.timerPause = widget.NewButton("Pause", func() {
		now := time.Now()
		switch cw.timer.State() {
		case countdown.Running:
			cw.timer.Pause(now)
			cw.timerPause.SetText("Resume")
		case countdown.Paused:
			cw.timer.Resume(now)
			cw.timerPause.SetText("Pause")
		}
	})

	resetButton := widget.NewButton("Reset", func() {
		cw.timer.Reset()
		cw.stopTimerSound()
		cw.timerPause.SetText("Pause")
		cw.timerLabel.SetText(countdown.Format(0))
	})

	controls := container.NewHBox(layout.NewSpacer(), startButton, cw.timerPause, resetButton, layout.NewSpacer())
	return container.NewVBox(cw.timerEntry, cw.timerLabel, controls)
}

func (cw *ClockWindow) buildAlarmsTab() fyne.CanvasObject {
	cw.alarmEntry = widget.NewEntry()
	cw.alarmEntry.SetPlaceHolder("HH:MM")
	cw.alarmEntry.Validator = func(s string) error {
		_, err := models.ParseTimeOfDay(s)
		return err
	}
	cw.alarmEntry.OnSubmitted = func(string) { cw.addAlarm() }

	days := container.NewHBox()
	for _, day := range models.AllWeekdays {
		check := widget.NewCheck(string(day), nil)
		cw.dayChecks[day] = check
		days.Add(check)
	}

	addButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), cw.addAlarm)
	addButton.Importance = widget.HighImportance

	addRow := container.NewBorder(nil, nil, nil, addButton, cw.alarmEntry)

	var listContainer *fyne.Container
	cw.alarmList, listContainer = components.NewAlarmList(components.AlarmListConfig{
		OnRemove: cw.removeAlarm,
	})

	cw.nextLabel = widget.NewLabel("")
	cw.nextLabel.Importance = widget.MediumImportance

	return container.NewBorder(
		container.NewVBox(addRow, container.NewHScroll(days), widget.NewSeparator()),
		cw.nextLabel,
		nil,
		nil,
		listContainer,
	)
}

func (cw *ClockWindow) addAlarm() {
	tod, err := models.ParseTimeOfDay(cw.alarmEntry.Text)
	if err != nil {
		dialog.ShowError(err, cw.window)
		return
	}

	days := []models.Weekday{}
	for _, day := range models.AllWeekdays {
		if cw.dayChecks[day].Checked {
			days = append(days, day)
		}
	}

	if _, err := cw.dc.manager.AddAlarm(tod, days); err != nil {
		dialog.ShowError(fmt.Errorf("alarm added but not saved: %w", err), cw.window)
	}

	cw.alarmEntry.SetText("")
	for _, check := range cw.dayChecks {
		check.SetChecked(false)
	}
	cw.refreshAlarms()
	cw.dc.updateSystemTrayMenu()
}

func (cw *ClockWindow) removeAlarm(id string) {
	a := cw.dc.manager.Find(id)
	if a == nil {
		return
	}
	cw.dc.dismissAlarm(a)
	if err := cw.dc.manager.RemoveAlarm(a); err != nil {
		dialog.ShowError(err, cw.window)
	}
	cw.refreshAlarms()
	cw.dc.updateSystemTrayMenu()
}

// refreshAlarms rebuilds the alarm rows from the manager
func (cw *ClockWindow) refreshAlarms() {
	alarms := cw.dc.manager.Alarms()
	items := make([]components.AlarmItem, len(alarms))
	for i, a := range alarms {
		items[i] = components.AlarmItem{
			ID:     a.ID,
			Label:  a.Label(),
			Status: alarmStatus(a),
		}
	}
	cw.alarmList.SetItems(items)

	if next, ok := cw.dc.manager.NextAlarm(time.Now()); ok {
		cw.nextLabel.SetText("Next alarm: " + next.At.Format("Mon 15:04"))
	} else {
		cw.nextLabel.SetText("No alarms set")
	}
}

func alarmStatus(a *alarm.Alarm) string {
	if a.Ringing() {
		return "ringing"
	}
	if until, ok := a.SnoozeUntil(); ok {
		return "snoozed until " + until.Format("15:04")
	}
	return ""
}

func (cw *ClockWindow) applySettings(settings models.Settings) {
	cw.digital.Layout = settings.TimeLayout()
	if settings.IsAnalog() {
		cw.digital.Hide()
		cw.analog.Show()
	} else {
		cw.analog.Hide()
		cw.digital.Show()
	}
	cw.updateDisplay(time.Now())
}

func (cw *ClockWindow) startDisplay() {
	cw.ticker = time.NewTicker(displayRefreshInterval)
	go func() {
		for {
			select {
			case <-cw.done:
				return
			case now := <-cw.ticker.C:
				fyne.Do(func() {
					cw.updateDisplay(now)
				})
			}
		}
	}()
}

func (cw *ClockWindow) updateDisplay(now time.Time) {
	if cw.dc.settings.IsAnalog() {
		cw.analog.SetTime(now)
	} else {
		cw.digital.SetTime(now)
	}

	if cw.stopwatch.Running() {
		cw.stopwatchLabel.SetText(stopwatch.Format(cw.stopwatch.Elapsed(now)))
	}

	switch cw.timer.State() {
	case countdown.Running:
		if cw.timer.Update(now) {
			cw.timerExpired()
		}
		cw.timerLabel.SetText(countdown.Format(cw.timer.Remaining(now)))
	case countdown.Paused:
		cw.timerLabel.SetText(countdown.Format(cw.timer.Remaining(now)))
	}
}

func (cw *ClockWindow) timerExpired() {
	log.Println("Countdown finished")

	// An alarm owns the audio device while it rings
	if len(cw.dc.manager.Ringing()) == 0 {
		if err := cw.dc.audio.Load(cw.dc.cfg.SoundFile); err != nil {
			log.Printf("Failed to load timer sound: %v", err)
		} else {
			cw.dc.audio.SetVolume(alarm.MaxVolume)
			if err := cw.dc.audio.PlayLooping(); err != nil {
				log.Printf("Failed to play timer sound: %v", err)
			} else {
				cw.timerPlaying = true
			}
		}
	}

	info := dialog.NewInformation("Timer", "Time's up!", cw.window)
	info.SetOnClosed(cw.stopTimerSound)
	cw.Show()
	info.Show()
}

func (cw *ClockWindow) stopTimerSound() {
	if !cw.timerPlaying {
		return
	}
	cw.timerPlaying = false
	// A ringing alarm has taken the device over since
	if len(cw.dc.manager.Ringing()) == 0 {
		cw.dc.audio.Stop()
	}
}

func (cw *ClockWindow) stop() {
	close(cw.done)
	cw.ticker.Stop()
	cw.stopTimerSound()
}
