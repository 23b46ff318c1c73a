package app

import (
	"os"
	"path/filepath"
	"testing"

	"whiteboard/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.rc")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStartup_WiresServices(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	path := writeConfig(t, "data_dir = "+dataDir+"\ndefault_tool = rectangle\nhistory_limit = 5\n")

	a := New(path)
	if err := a.Startup(false); err != nil {
		t.Fatalf("Startup: %v", err)
	}
	defer a.Shutdown()

	if _, err := os.Stat(filepath.Join(dataDir, "whiteboard.db")); err != nil {
		t.Errorf("expected settings database in data dir: %v", err)
	}
	if a.cfgFile != path {
		t.Errorf("expected config file %s, got %s", path, a.cfgFile)
	}

	id := a.boards.CreateBoard("").ID
	st, err := a.boards.State(id)
	if err != nil {
		t.Fatal(err)
	}
	if st.Tool != domain.ToolRectangle {
		t.Errorf("expected default tool from config, got %s", st.Tool)
	}
}

func TestStartup_SavedToolWins(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")
	path := writeConfig(t, "data_dir = "+dataDir+"\ndefault_tool = rectangle\n")

	first := New(path)
	if err := first.Startup(false); err != nil {
		t.Fatal(err)
	}
	if err := first.settings.SaveTool(domain.ToolOrGate); err != nil {
		t.Fatal(err)
	}
	first.Shutdown()

	second := New(path)
	if err := second.Startup(false); err != nil {
		t.Fatal(err)
	}
	defer second.Shutdown()

	st, _ := second.boards.State(second.boards.CreateBoard("").ID)
	if st.Tool != domain.ToolOrGate {
		t.Errorf("expected saved tool %s, got %s", domain.ToolOrGate, st.Tool)
	}
}

func TestStartup_BadConfig(t *testing.T) {
	path := writeConfig(t, "default_tool = ellipse\n")
	a := New(path)
	defer a.Shutdown()
	if err := a.Startup(false); err == nil {
		t.Fatal("expected an error for an unknown default tool")
	}
}
