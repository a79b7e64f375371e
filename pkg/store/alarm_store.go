package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/borgmon/deskclock/pkg/models"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// AlarmStore keeps the alarm list in a JSON file
type AlarmStore struct {
	fs   billy.Filesystem
	path string
}

// NewAlarmStore creates a store for the file at path inside fs
func NewAlarmStore(fs billy.Filesystem, path string) *AlarmStore {
	return &AlarmStore{fs: fs, path: path}
}

// NewFileAlarmStore creates a store backed by the OS file at path
func NewFileAlarmStore(path string) *AlarmStore {
	return NewAlarmStore(osfs.New(filepath.Dir(path)), filepath.Base(path))
}

// Path returns the file path relative to the store filesystem
func (s *AlarmStore) Path() string {
	return s.path
}

// Load reads the alarm list. A missing file means no alarms. A corrupt file is
// logged and overwritten with an empty list; nothing of it is kept.
func (s *AlarmStore) Load() []models.AlarmRecord {
	records, err := s.read()
	if errors.Is(err, os.ErrNotExist) {
		return []models.AlarmRecord{}
	}
	if err != nil {
		log.Printf("Warning: alarms file %s is corrupted, discarding all stored alarms and resetting: %v", s.path, err)
		if err := s.Save(nil); err != nil {
			log.Printf("Failed to reset alarms file: %v", err)
		}
		return []models.AlarmRecord{}
	}

	return records
}

func (s *AlarmStore) read() ([]models.AlarmRecord, error) {
	data, err := util.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("read alarms file: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("alarms file does not contain a JSON array")
	}

	var records []models.AlarmRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("parse alarms file: %w", err)
	}
	if records == nil {
		records = []models.AlarmRecord{}
	}

	return records, nil
}

// Save overwrites the file with records
func (s *AlarmStore) Save(records []models.AlarmRecord) error {
	if records == nil {
		records = []models.AlarmRecord{}
	}

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal alarms: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create alarms directory: %w", err)
		}
	}

	if err := util.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write alarms file: %w", err)
	}
	return nil
}
