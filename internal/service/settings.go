package service

import (
	"fmt"
	"log"
	"strconv"

	"whiteboard/internal/domain"
	"whiteboard/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Settings Persistence
// ─────────────────────────────────────────────────────────────
//
// Remembers the last selected tool and terminal size between sessions.
// Stored in SQLite as key-value rows in the preferences table.

// TerminalSize holds the saved terminal dimensions in cells.
type TerminalSize struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// SettingsService persists user preferences.
type SettingsService struct {
	db *storage.DB
}

// NewSettingsService creates a SettingsService.
func NewSettingsService(db *storage.DB) *SettingsService {
	return &SettingsService{db: db}
}

const (
	settingTool         = "tool"
	settingTerminalCols = "terminal_cols"
	settingTerminalRows = "terminal_rows"
	defaultTerminalCols = 120
	defaultTerminalRows = 40
)

// LoadTool returns the saved tool, or fallback when none is stored or the
// stored value is no longer a known tool.
func (s *SettingsService) LoadTool(fallback domain.Tool) domain.Tool {
	if s.db == nil {
		return fallback
	}
	v, ok, err := s.db.GetSetting(settingTool)
	if err != nil {
		log.Printf("settings: load tool: %v", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	t, err := domain.ParseTool(v)
	if err != nil {
		return fallback
	}
	return t
}

// SaveTool persists the selected tool.
func (s *SettingsService) SaveTool(t domain.Tool) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	return s.db.SetSetting(settingTool, string(t))
}

// LoadTerminalSize returns the saved terminal dimensions, or defaults.
func (s *SettingsService) LoadTerminalSize() TerminalSize {
	size := TerminalSize{Cols: defaultTerminalCols, Rows: defaultTerminalRows}
	if s.db == nil {
		return size
	}
	size.Cols = s.loadInt(settingTerminalCols, defaultTerminalCols)
	size.Rows = s.loadInt(settingTerminalRows, defaultTerminalRows)

	if size.Cols < 20 {
		size.Cols = defaultTerminalCols
	}
	if size.Rows < 5 {
		size.Rows = defaultTerminalRows
	}
	return size
}

// SaveTerminalSize persists the current terminal dimensions.
func (s *SettingsService) SaveTerminalSize(cols, rows int) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	if err := s.db.SetSetting(settingTerminalCols, strconv.Itoa(cols)); err != nil {
		return err
	}
	return s.db.SetSetting(settingTerminalRows, strconv.Itoa(rows))
}

func (s *SettingsService) loadInt(key string, fallback int) int {
	v, ok, err := s.db.GetSetting(key)
	if err != nil || !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
