package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"
)

func autostartApp() (*autostart.App, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	// Resolve symlinks if any
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	// Relaunch with the same config file
	args := []string{execPath, "run"}
	if configPath != "" {
		if abs, err := filepath.Abs(configPath); err == nil {
			args = append(args, "--config", abs)
		}
	}

	return &autostart.App{
		Name:        "deskclock",
		DisplayName: "Desk Clock",
		Exec:        args,
	}, nil
}

// setupAutostart makes the login item match enable
func setupAutostart(enable bool) error {
	app, err := autostartApp()
	if err != nil {
		return err
	}

	switch {
	case enable && !app.IsEnabled():
		if err := app.Enable(); err != nil {
			log.Printf("Failed to enable autostart: %v", err)
			return err
		}
		log.Println("Autostart enabled")
	case !enable && app.IsEnabled():
		if err := app.Disable(); err != nil {
			log.Printf("Failed to disable autostart: %v", err)
			return err
		}
		log.Println("Autostart disabled")
	}

	return nil
}
