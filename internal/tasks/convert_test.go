package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// stubConverter records inputs and writes an empty output file.
type stubConverter struct {
	converted []string
	failOn    string
}

func (s *stubConverter) Convert(ctx context.Context, input, output string) error {
	if filepath.Base(input) == s.failOn {
		return fmt.Errorf("%w: exit status 1", shared.ErrEncodeFailed)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(output, []byte("mp4"), 0644); err != nil {
		return err
	}
	s.converted = append(s.converted, input)
	return nil
}

func TestConvertEngine(t *testing.T) {
	buildInput := func(t *testing.T) string {
		t.Helper()
		dir := t.TempDir()
		files := []string{
			"intro.mov",
			"Chapter 1/lesson.mkv",
			"Chapter 1/notes.txt",
			"Chapter 2/demo.avi",
		}
		for _, name := range files {
			path := filepath.Join(dir, name)
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, []byte("raw"), 0644); err != nil {
				t.Fatal(err)
			}
		}
		return dir
	}

	t.Run("mirrors the tree with mp4 outputs", func(t *testing.T) {
		input := buildInput(t)
		output := t.TempDir()
		conv := &stubConverter{}

		engine := NewConvertEngine(ConvertEngineOpts{Converter: conv})
		result, err := engine.Run(context.Background(), input, output, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Converted) != 3 {
			t.Fatalf("expected 3 conversions, got %d", len(result.Converted))
		}
		for _, rel := range []string{"intro.mp4", "Chapter 1/lesson.mp4", "Chapter 2/demo.mp4"} {
			if _, err := os.Stat(filepath.Join(output, rel)); err != nil {
				t.Errorf("expected output %s: %v", rel, err)
			}
		}
		if _, err := os.Stat(filepath.Join(output, "Chapter 1/notes.txt")); err == nil {
			t.Error("expected non-video file to be ignored")
		}
	})

	t.Run("skips existing outputs", func(t *testing.T) {
		input := buildInput(t)
		output := t.TempDir()
		if err := os.WriteFile(filepath.Join(output, "intro.mp4"), []byte("done"), 0644); err != nil {
			t.Fatal(err)
		}

		conv := &stubConverter{}
		engine := NewConvertEngine(ConvertEngineOpts{Converter: conv})
		result, err := engine.Run(context.Background(), input, output, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Skipped) != 1 {
			t.Fatalf("expected 1 skip, got %d", len(result.Skipped))
		}
		if len(result.Converted) != 2 {
			t.Errorf("expected 2 conversions, got %d", len(result.Converted))
		}
	})

	t.Run("records failures and continues", func(t *testing.T) {
		input := buildInput(t)
		output := t.TempDir()
		conv := &stubConverter{failOn: "lesson.mkv"}

		engine := NewConvertEngine(ConvertEngineOpts{Converter: conv})
		result, err := engine.Run(context.Background(), input, output, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(result.Failed) != 1 {
			t.Fatalf("expected 1 failure, got %d", len(result.Failed))
		}
		if len(result.Converted) != 2 {
			t.Errorf("expected the walk to continue, got %d conversions", len(result.Converted))
		}
	})

	t.Run("fails for non-directory input", func(t *testing.T) {
		engine := NewConvertEngine(ConvertEngineOpts{Converter: &stubConverter{}})
		if _, err := engine.Run(context.Background(), "/nonexistent/input", t.TempDir(), nil); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		input := buildInput(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		engine := NewConvertEngine(ConvertEngineOpts{Converter: &stubConverter{}})
		if _, err := engine.Run(ctx, input, t.TempDir(), nil); err == nil {
			t.Fatal("expected context error")
		}
	})
}
