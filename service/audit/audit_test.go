package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSinkWritesAndFlushesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	s, err := NewFileSink(path, 8)
	if err != nil {
		t.Fatalf("NewFileSink failed: %v", err)
	}
	s.Record("Nouvelle connexion: admin (ADMIN) ID: c-1")
	s.Record("Nouvelle connexion: user (USER) ID: c-2")
	s.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	if !strings.Contains(lines[0], "Nouvelle connexion: admin (ADMIN) ID: c-1") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[0], "[") {
		t.Errorf("line 0 missing timestamp prefix: %q", lines[0])
	}
}

func TestFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.log")

	for i := 0; i < 2; i++ {
		s, err := NewFileSink(path, 4)
		if err != nil {
			t.Fatalf("NewFileSink failed: %v", err)
		}
		s.Record("event")
		s.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if n := strings.Count(string(data), "event"); n != 2 {
		t.Errorf("got %d events after reopen, want 2", n)
	}
}

func TestFileSinkBadPath(t *testing.T) {
	if _, err := NewFileSink(filepath.Join(t.TempDir(), "missing", "audit.log"), 4); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestNopSink(t *testing.T) {
	NopSink{}.Record("ignored")
}
