package sweeper

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-procure/internal/config"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name string, modTime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSweepRemovesOnlyStaleFiles(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	stale := writeFile(t, dir, "bulk_1_old.xlsx", now.Add(-2*time.Hour))
	fresh := writeFile(t, dir, "bulk_2_new.xlsx", now.Add(-time.Minute))

	s := NewSweeper(&config.Config{UploadPath: dir}, zap.NewNop())
	if removed := s.Sweep(now); removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}

	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale file still present")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Errorf("fresh file removed: %v", err)
	}
}

func TestSweepMissingDirectory(t *testing.T) {
	s := NewSweeper(&config.Config{UploadPath: filepath.Join(t.TempDir(), "nope")}, zap.NewNop())
	if removed := s.Sweep(time.Now()); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
}

func TestSweepSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "keep")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-3 * time.Hour)
	if err := os.Chtimes(sub, old, old); err != nil {
		t.Fatal(err)
	}

	s := NewSweeper(&config.Config{UploadPath: dir}, zap.NewNop())
	if removed := s.Sweep(time.Now()); removed != 0 {
		t.Fatalf("removed = %d, want 0", removed)
	}
	if _, err := os.Stat(sub); err != nil {
		t.Errorf("directory removed: %v", err)
	}
}
