package main

import (
	"log"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/deskclock/pkg/config"
	"github.com/borgmon/deskclock/pkg/models"
)

const savedMessage = "Settings saved"

type SettingsWindow struct {
	window fyne.Window
	cfg    *config.Config
	saved  models.Settings
	onSave func(models.Settings) error

	autoStartCheck *widget.Check
	faceRadio      *widget.RadioGroup
	use24HourCheck *widget.Check

	saveStatusLabel *widget.Label
	saveButton      *widget.Button
}

func NewSettingsWindow(app fyne.App, settings models.Settings, cfg *config.Config, onSave func(models.Settings) error) *SettingsWindow {
	sw := &SettingsWindow{
		cfg:    cfg,
		saved:  settings,
		onSave: onSave,
	}

	sw.window = app.NewWindow("Desk Clock - Settings")
	sw.buildUI(settings)
	sw.setupKeyboardShortcuts()
	sw.window.SetCloseIntercept(sw.handleClose)

	return sw
}

func (sw *SettingsWindow) buildUI(settings models.Settings) {
	sw.autoStartCheck = widget.NewCheck("Start on System Boot", func(bool) { sw.updateSaveButtonState() })
	sw.autoStartCheck.SetChecked(settings.AutoStart)

	sw.faceRadio = widget.NewRadioGroup([]string{"Digital", "Analog"}, func(string) { sw.updateSaveButtonState() })
	sw.faceRadio.Horizontal = true
	if settings.IsAnalog() {
		sw.faceRadio.SetSelected("Analog")
	} else {
		sw.faceRadio.SetSelected("Digital")
	}

	sw.use24HourCheck = widget.NewCheck("24-hour clock", func(bool) { sw.updateSaveButtonState() })
	sw.use24HourCheck.SetChecked(settings.Use24Hour)

	autoStartHelp := widget.NewLabel("Launch Desk Clock automatically when your system starts")
	autoStartHelp.Importance = widget.MediumImportance

	alarmsFile := widget.NewEntry()
	alarmsFile.SetText(sw.cfg.AlarmsFile)
	alarmsFile.Disable()

	soundFile := widget.NewEntry()
	soundFile.SetText(sw.cfg.SoundFile)
	soundFile.Disable()

	openDataButton := widget.NewButton("Open in File Manager", func() {
		openInFileManager(filepath.Dir(sw.cfg.AlarmsFile))
	})

	filesHelp := widget.NewLabel("Paths come from config.yaml or DESKCLOCK_* environment variables")
	filesHelp.Wrapping = fyne.TextWrapWord
	filesHelp.Importance = widget.MediumImportance

	// Use FormLayout for proper label-value alignment
	form := container.New(layout.NewFormLayout(),
		container.NewVBox(widget.NewLabel("Auto Start:"), autoStartHelp),
		sw.autoStartCheck,

		widget.NewLabel("Clock Face:"),
		sw.faceRadio,

		widget.NewLabel("Time Format:"),
		sw.use24HourCheck,

		widget.NewLabel("Alarms File:"),
		alarmsFile,

		widget.NewLabel("Alarm Sound:"),
		soundFile,
	)

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable()

	content := container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		form,
		filesHelp,
		container.NewHBox(openDataButton),
	)

	bottom := container.NewBorder(nil, nil, sw.saveStatusLabel, sw.saveButton)
	sw.window.SetContent(container.NewBorder(nil, container.NewPadded(bottom), nil, nil, container.NewPadded(container.NewVScroll(content))))
	sw.window.Resize(fyne.NewSize(560, 420))
}

func (sw *SettingsWindow) settingsFromUI() models.Settings {
	face := models.ClockFaceDigital
	if sw.faceRadio.Selected == "Analog" {
		face = models.ClockFaceAnalog
	}

	return models.Settings{
		AutoStart: sw.autoStartCheck.Checked,
		ClockFace: face,
		Use24Hour: sw.use24HourCheck.Checked,
	}
}

// hasChanges reports whether the form differs from the saved settings
func (sw *SettingsWindow) hasChanges() bool {
	return sw.settingsFromUI() != sw.saved
}

// updateSaveButtonState enables the save button only when there is something to save
func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasChanges() {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

func (sw *SettingsWindow) save() {
	if !sw.hasChanges() {
		return
	}
	sw.saveButton.Disable()

	settings := sw.settingsFromUI()
	if err := sw.onSave(settings); err != nil {
		log.Printf("Error saving settings: %v", err)
		sw.saveStatusLabel.SetText("Error: Failed to set autostart")
		sw.saveStatusLabel.Importance = widget.DangerImportance
		sw.saveStatusLabel.Refresh()
		sw.updateSaveButtonState()
		return
	}
	sw.saved = settings

	sw.saveStatusLabel.SetText(savedMessage)
	sw.saveStatusLabel.Importance = widget.SuccessImportance
	sw.saveStatusLabel.Refresh()

	// Clear success message after 3 seconds
	go func() {
		time.Sleep(3 * time.Second)
		fyne.Do(func() {
			if sw.saveStatusLabel.Text == savedMessage {
				sw.saveStatusLabel.SetText("")
			}
		})
	}()
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

// handleClose asks before discarding unsaved changes
func (sw *SettingsWindow) handleClose() {
	if !sw.hasChanges() {
		sw.window.Close()
		return
	}

	dialog.ShowConfirm("Unsaved Changes",
		"You have unsaved changes. Are you sure you want to close?",
		func(confirmed bool) {
			if confirmed {
				sw.window.Close()
			}
		}, sw.window)
}

// setupKeyboardShortcuts binds Ctrl/Cmd+S to save and Escape to close
func (sw *SettingsWindow) setupKeyboardShortcuts() {
	saveShortcut := &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	sw.window.Canvas().AddShortcut(saveShortcut, func(fyne.Shortcut) {
		sw.save()
	})

	sw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			sw.handleClose()
		}
	})
}

func openInFileManager(path string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		log.Printf("Unsupported OS: %s", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Error opening file manager: %v", err)
	}
}
