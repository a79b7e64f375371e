package main

import (
	"context"
	"log"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/deskclock/pkg/alarm"
	"github.com/borgmon/deskclock/pkg/audio"
	"github.com/borgmon/deskclock/pkg/config"
	"github.com/borgmon/deskclock/pkg/models"
	"github.com/borgmon/deskclock/pkg/platform"
	"github.com/borgmon/deskclock/pkg/store"
)

const appID = "io.github.borgmon.deskclock"

type DeskClock struct {
	app           fyne.App
	cfg           *config.Config
	settings      models.Settings
	settingsStore *store.SettingsStore
	history       *store.HistoryStore
	audio         alarm.AudioDevice
	manager       *alarm.Manager
	poller        *alarm.Poller

	clockWindow    *ClockWindow
	settingsWindow *SettingsWindow

	mu           sync.Mutex
	alarmWindows map[string]*AlarmWindow
}

func runApp(cfg *config.Config) error {
	dc := &DeskClock{
		app:          app.NewWithID(appID),
		cfg:          cfg,
		alarmWindows: make(map[string]*AlarmWindow),
	}

	if err := dc.initialize(); err != nil {
		return err
	}

	dc.run()
	return nil
}

func (dc *DeskClock) initialize() error {
	dc.settingsStore = store.NewSettingsStore(dc.app.Preferences())
	dc.settings = dc.settingsStore.Load()

	// Sync autostart state with settings on startup
	if err := setupAutostart(dc.settings.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}

	var opts []alarm.Option
	dc.history = store.NewHistoryStore(dc.cfg.HistoryDB)
	if err := dc.history.Init(context.Background()); err != nil {
		log.Printf("Warning: alarm history disabled: %v", err)
		dc.history = nil
	} else {
		opts = append(opts, alarm.WithRecorder(dc.history))
	}

	if dc.cfg.AudioEnabled {
		dc.audio = audio.NewDevice()
	} else {
		log.Println("Audio disabled, alarms will ring silently")
		dc.audio = audio.Silent{}
	}

	env := &alarm.Env{
		Clock:           alarm.SystemClock{},
		Audio:           dc.audio,
		SoundPath:       dc.cfg.SoundFile,
		HonorRepeatDays: dc.cfg.HonorRepeatDays,
	}
	dc.manager = alarm.NewManager(store.NewFileAlarmStore(dc.cfg.AlarmsFile), env, opts...)
	dc.poller = alarm.NewPoller(dc.manager, dc.cfg.TickInterval())

	dc.clockWindow = NewClockWindow(dc)
	dc.setupSystemTray()

	go dc.watchAlarms(dc.poller.Subscribe(16))

	return nil
}

func (dc *DeskClock) run() {
	dc.app.Lifecycle().SetOnStarted(func() {
		platform.SetDockVisible(true)
		dc.poller.Start()
	})
	dc.clockWindow.Show()
	dc.app.Run()
}

// watchAlarms turns poller events into UI updates on the fyne thread
func (dc *DeskClock) watchAlarms(events <-chan alarm.Event) {
	lastMinute := -1
	for event := range events {
		switch event.Type {
		case alarm.EventFired:
			fired := event.Alarm
			fyne.Do(func() {
				dc.showAlarm(fired)
				dc.clockWindow.refreshAlarms()
				dc.updateSystemTrayMenu()
			})
		case alarm.EventTick:
			refreshTray := event.At.Minute() != lastMinute
			lastMinute = event.At.Minute()
			fyne.Do(func() {
				dc.clockWindow.refreshAlarms()
				if refreshTray {
					dc.updateSystemTrayMenu()
				}
			})
		}
	}
}

func (dc *DeskClock) showAlarm(a *alarm.Alarm) {
	dc.mu.Lock()
	if existing := dc.alarmWindows[a.ID]; existing != nil {
		dc.mu.Unlock()
		existing.Show()
		return
	}
	aw := NewAlarmWindow(dc.app, a, dc.cfg.SnoozeHotkey, func() {
		dc.manager.Stop(a)
		dc.alarmClosed(a)
	}, func() {
		dc.manager.Snooze(a)
		dc.alarmClosed(a)
	})
	dc.alarmWindows[a.ID] = aw
	dc.mu.Unlock()

	aw.Show()
}

func (dc *DeskClock) alarmClosed(a *alarm.Alarm) {
	dc.mu.Lock()
	delete(dc.alarmWindows, a.ID)
	dc.mu.Unlock()

	fyne.Do(func() {
		dc.clockWindow.refreshAlarms()
		dc.updateSystemTrayMenu()
	})
}

// dismissAlarm closes the pop-up of a without running its Stop or Snooze action
func (dc *DeskClock) dismissAlarm(a *alarm.Alarm) {
	dc.mu.Lock()
	aw := dc.alarmWindows[a.ID]
	delete(dc.alarmWindows, a.ID)
	dc.mu.Unlock()

	if aw != nil {
		aw.finish(nil)
	}
}

// applySettings persists new settings and updates the open windows
func (dc *DeskClock) applySettings(settings models.Settings) error {
	if err := setupAutostart(settings.AutoStart); err != nil {
		return err
	}

	dc.settings = settings
	dc.settingsStore.Save(settings)
	dc.clockWindow.applySettings(settings)
	return nil
}

func (dc *DeskClock) showSettingsWindow() {
	// If settings window already exists, just bring it to front
	if dc.settingsWindow != nil {
		dc.settingsWindow.window.RequestFocus()
		dc.settingsWindow.window.Show()
		return
	}

	dc.settingsWindow = NewSettingsWindow(dc.app, dc.settings, dc.cfg, dc.applySettings)
	dc.settingsWindow.window.SetOnClosed(func() {
		dc.settingsWindow = nil
	})
	dc.settingsWindow.Show()
}

func (dc *DeskClock) quit() {
	dc.poller.Stop()
	for _, a := range dc.manager.Ringing() {
		dc.manager.Stop(a)
	}
	dc.clockWindow.stop()
	if dc.history != nil {
		if err := dc.history.Close(); err != nil {
			log.Printf("Failed to close history database: %v", err)
		}
	}
	dc.app.Quit()
}
