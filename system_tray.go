package main

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

func (dc *DeskClock) setupSystemTray() {
	dc.updateSystemTrayMenu()
}

func (dc *DeskClock) updateSystemTrayMenu() {
	desk, ok := dc.app.(desktop.App)
	if !ok {
		return
	}

	menuItems := []*fyne.MenuItem{}

	// Ringing alarms first, so they can be silenced from the tray
	for _, a := range dc.manager.Ringing() {
		a := a // per-iteration copy; go directive is below 1.22
		menuItems = append(menuItems, fyne.NewMenuItem(fmt.Sprintf("Stop alarm %s", a.TimeOfDay), func() {
			dc.mu.Lock()
			aw := dc.alarmWindows[a.ID]
			dc.mu.Unlock()
			if aw != nil {
				aw.finish(aw.onStop)
				return
			}
			dc.manager.Stop(a)
			dc.clockWindow.refreshAlarms()
			dc.updateSystemTrayMenu()
		}))
	}

	nextItem := fyne.NewMenuItem(nextAlarmText(dc, time.Now()), nil)
	nextItem.Disabled = true
	menuItems = append(menuItems, nextItem, fyne.NewMenuItemSeparator())

	menuItems = append(menuItems,
		fyne.NewMenuItem("Show Clock", func() {
			dc.clockWindow.Show()
		}),
		fyne.NewMenuItem("Settings", func() {
			dc.showSettingsWindow()
		}),
	)

	// Marked as the quit item so fyne does not append a second one
	quitItem := fyne.NewMenuItem("Quit", func() {
		dc.quit()
	})
	quitItem.IsQuit = true
	menuItems = append(menuItems, fyne.NewMenuItemSeparator(), quitItem)

	menu := fyne.NewMenu("Desk Clock", menuItems...)
	desk.SetSystemTrayMenu(menu)
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

func nextAlarmText(dc *DeskClock, now time.Time) string {
	next, ok := dc.manager.NextAlarm(now)
	if !ok {
		return "No alarms set"
	}

	when := next.At.Format("15:04")
	if next.At.YearDay() != now.YearDay() || next.At.Year() != now.Year() {
		when = next.At.Format("Mon 15:04")
	}
	return "Next alarm: " + when
}
