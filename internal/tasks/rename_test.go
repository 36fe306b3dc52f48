package tasks

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

func TestRenameEngine(t *testing.T) {
	engine := NewRenameEngine(nil)

	t.Run("LoadManifest", func(t *testing.T) {
		t.Run("parses CSV with header", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plan.csv")
			content := "from,to\nold one.mp4,Chapter 1 - Intro.mp4\nold two.mp4,Chapter 2 - Loops.mp4\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}

			entries, err := engine.LoadManifest(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("expected 2 entries, got %d", len(entries))
			}
			if entries[0].From != "old one.mp4" || entries[0].To != "Chapter 1 - Intro.mp4" {
				t.Errorf("unexpected first entry: %+v", entries[0])
			}
		})

		t.Run("parses YAML", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plan.yaml")
			content := "- from: old one.mp4\n  to: Chapter 1 - Intro.mp4\n"
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}

			entries, err := engine.LoadManifest(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(entries) != 1 || entries[0].To != "Chapter 1 - Intro.mp4" {
				t.Errorf("unexpected entries: %+v", entries)
			}
		})

		t.Run("rejects unknown formats", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "plan.toml")
			if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := engine.LoadManifest(path); !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("fails for missing file", func(t *testing.T) {
			if _, err := engine.LoadManifest("/nonexistent/plan.csv"); !errors.Is(err, shared.ErrFileNotFound) {
				t.Fatalf("expected ErrFileNotFound, got %v", err)
			}
		})
	})

	t.Run("Plan", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"a.mp4", "b.mp4", "taken.mp4"} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte("v"), 0644); err != nil {
				t.Fatal(err)
			}
		}

		actions := engine.Plan(dir, []models.RenameEntry{
			{From: "a.mp4", To: "Chapter 1 - A.mp4"},
			{From: "missing.mp4", To: "Chapter 2 - B.mp4"},
			{From: "b.mp4", To: "taken.mp4"},
			{From: "taken.mp4", To: "Chapter 1 - A.mp4"},
		})

		if actions[0].Err != nil {
			t.Errorf("expected first action to be valid, got %v", actions[0].Err)
		}
		if !errors.Is(actions[1].Err, shared.ErrFileNotFound) {
			t.Errorf("expected missing source error, got %v", actions[1].Err)
		}
		if !errors.Is(actions[2].Err, shared.ErrFileExists) {
			t.Errorf("expected collision error, got %v", actions[2].Err)
		}
		if !errors.Is(actions[3].Err, shared.ErrFileExists) {
			t.Errorf("expected duplicate target error, got %v", actions[3].Err)
		}

		// Plan must not touch the filesystem.
		if _, err := os.Stat(filepath.Join(dir, "a.mp4")); err != nil {
			t.Error("expected plan to leave files untouched")
		}
	})

	t.Run("Apply", func(t *testing.T) {
		t.Run("renames valid entries and skips collisions", func(t *testing.T) {
			dir := t.TempDir()
			for _, name := range []string{"a.mp4", "b.mp4", "taken.mp4"} {
				if err := os.WriteFile(filepath.Join(dir, name), []byte("v"), 0644); err != nil {
					t.Fatal(err)
				}
			}

			logPath := filepath.Join(t.TempDir(), "rename.log")
			result, err := engine.Apply(dir, []models.RenameEntry{
				{From: "a.mp4", To: "Chapter 1 - A.mp4"},
				{From: "b.mp4", To: "taken.mp4"},
			}, logPath)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result.Renamed != 1 {
				t.Errorf("expected 1 rename, got %d", result.Renamed)
			}
			if len(result.Failed) != 1 || result.Failed[0] != "b.mp4" {
				t.Errorf("unexpected failures: %v", result.Failed)
			}

			if _, err := os.Stat(filepath.Join(dir, "Chapter 1 - A.mp4")); err != nil {
				t.Error("expected renamed file to exist")
			}
			if _, err := os.Stat(filepath.Join(dir, "b.mp4")); err != nil {
				t.Error("expected collided source to remain")
			}

			data, err := os.ReadFile(logPath)
			if err != nil {
				t.Fatalf("expected rename log: %v", err)
			}
			if !strings.Contains(string(data), "a.mp4 -> Chapter 1 - A.mp4") {
				t.Errorf("unexpected log contents: %s", data)
			}
		})

		t.Run("works without a log file", func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "a.mp4"), []byte("v"), 0644); err != nil {
				t.Fatal(err)
			}

			result, err := engine.Apply(dir, []models.RenameEntry{{From: "a.mp4", To: "b.mp4"}}, "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result.Renamed != 1 {
				t.Errorf("expected 1 rename, got %d", result.Renamed)
			}
		})
	})
}
