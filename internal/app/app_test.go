package app

import (
	"context"
	"errors"
	"testing"

	"github.com/campuskit/advisor/internal/config"
)

func TestSetupRejectsInvalidConfig(t *testing.T) {
	cfg := &config.Config{Provider: "mainframe"}

	_, err := Setup(context.Background(), cfg)
	if err == nil {
		t.Fatal("Setup() accepted an invalid provider")
	}
	if !errors.Is(err, config.ErrInvalidProvider) {
		t.Errorf("error = %v, want wrapped %v", err, config.ErrInvalidProvider)
	}
}

func TestSnapshotPath(t *testing.T) {
	a := &App{Config: &config.Config{}}
	if got := a.SnapshotPath(); got != config.DefaultSnapshotFile {
		t.Errorf("SnapshotPath() = %q, want default %q", got, config.DefaultSnapshotFile)
	}

	a.Config.SnapshotPath = "/tmp/backup.json"
	if got := a.SnapshotPath(); got != "/tmp/backup.json" {
		t.Errorf("SnapshotPath() = %q, want configured path", got)
	}
}
