package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeBinary puts a shell script named name on PATH that runs the given body.
func fakeBinary(t *testing.T, name, body string) {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, name)
	if err := os.WriteFile(script, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write script: %v", err)
	}
	t.Setenv("PATH", dir+":"+os.Getenv("PATH"))
}

func TestIsVideo(t *testing.T) {
	exts := ExtensionSet(nil)

	tc := []struct {
		path string
		want bool
	}{
		{"lecture.mp4", true},
		{"lecture.MOV", true},
		{"notes.txt", false},
		{"archive.mkv", true},
		{"noext", false},
	}

	for _, tt := range tc {
		if got := IsVideo(tt.path, exts); got != tt.want {
			t.Errorf("IsVideo(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestProber(t *testing.T) {
	t.Run("parses duration output", func(t *testing.T) {
		fakeBinary(t, "ffprobe", "echo 123.45")
		p := NewProber("")

		seconds, err := p.Duration(context.Background(), "dummy.mp4")
		if err != nil {
			t.Fatalf("Duration: %v", err)
		}
		if seconds != 123.45 {
			t.Errorf("seconds = %v", seconds)
		}
	})

	t.Run("empty output errors", func(t *testing.T) {
		fakeBinary(t, "ffprobe", "true")
		p := NewProber("")

		if _, err := p.Duration(context.Background(), "dummy.mp4"); err == nil {
			t.Error("expected error for empty output")
		}
	})

	t.Run("missing binary errors", func(t *testing.T) {
		p := NewProber("/no/such/ffprobe")
		if _, err := p.Duration(context.Background(), "dummy.mp4"); err == nil {
			t.Error("expected error for missing binary")
		}
	})
}

func TestConverterBuildArgs(t *testing.T) {
	t.Run("software encode", func(t *testing.T) {
		c := NewConverter(ConverterOpts{})
		args := strings.Join(c.buildArgs("in.mov", "out.mp4"), " ")

		for _, want := range []string{"-c:v libx264", "scale=-2:720", "-preset fast", "-b:a 320k", "-c:a aac"} {
			if !strings.Contains(args, want) {
				t.Errorf("args missing %q: %s", want, args)
			}
		}
		if strings.Contains(args, "cuda") {
			t.Errorf("unexpected cuda args: %s", args)
		}
	})

	t.Run("cuda encode", func(t *testing.T) {
		c := NewConverter(ConverterOpts{UseCUDA: true})
		args := strings.Join(c.buildArgs("in.mov", "out.mp4"), " ")

		for _, want := range []string{"-hwaccel cuda", "-c:v h264_nvenc"} {
			if !strings.Contains(args, want) {
				t.Errorf("args missing %q: %s", want, args)
			}
		}
	})
}

func TestConverterConvert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		fakeBinary(t, "ffmpeg", "exit 0")
		c := NewConverter(ConverterOpts{})

		out := filepath.Join(t.TempDir(), "out", "video.mp4")
		if err := c.Convert(context.Background(), "in.mov", out); err != nil {
			t.Fatalf("Convert: %v", err)
		}
	})

	t.Run("failure writes error log", func(t *testing.T) {
		fakeBinary(t, "ffmpeg", "echo 'encoder blew up' >&2; exit 1")
		c := NewConverter(ConverterOpts{})

		out := filepath.Join(t.TempDir(), "video.mp4")
		err := c.Convert(context.Background(), "in.mov", out)
		if err == nil {
			t.Fatal("expected error")
		}

		logPath := strings.TrimSuffix(out, ".mp4") + ".log"
		data, readErr := os.ReadFile(logPath)
		if readErr != nil {
			t.Fatalf("error log not written: %v", readErr)
		}
		if !strings.Contains(string(data), "encoder blew up") {
			t.Errorf("log missing encoder output: %s", data)
		}
		if !strings.Contains(string(data), "in.mov") {
			t.Errorf("log missing input path: %s", data)
		}
	})
}

func TestListVideos(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "extras")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"part_10.mp4", "part_2.mp4", "notes.txt", "extras/bonus.mp4"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	exts := ExtensionSet(nil)

	t.Run("natural order, top folder only", func(t *testing.T) {
		videos, err := ListVideos(dir, exts, false)
		if err != nil {
			t.Fatalf("ListVideos: %v", err)
		}
		if len(videos) != 2 {
			t.Fatalf("expected 2 videos, got %v", videos)
		}
		if filepath.Base(videos[0]) != "part_2.mp4" || filepath.Base(videos[1]) != "part_10.mp4" {
			t.Errorf("expected natural order, got %v", videos)
		}
	})

	t.Run("recursive includes subfolders", func(t *testing.T) {
		videos, err := ListVideos(dir, exts, true)
		if err != nil {
			t.Fatalf("ListVideos: %v", err)
		}
		if len(videos) != 3 {
			t.Fatalf("expected 3 videos, got %v", videos)
		}
	})
}

func TestCombiner(t *testing.T) {
	t.Run("buildArgs uses the concat demuxer with stream copy", func(t *testing.T) {
		c := NewCombiner("")
		args := strings.Join(c.buildArgs("videos.txt", "out.mp4"), " ")

		for _, want := range []string{"-f concat", "-safe 0", "-i videos.txt", "-c copy"} {
			if !strings.Contains(args, want) {
				t.Errorf("args missing %q: %s", want, args)
			}
		}
	})

	t.Run("concat list quotes paths", func(t *testing.T) {
		list := filepath.Join(t.TempDir(), "videos.txt")
		if err := WriteConcatList(list, []string{"/tmp/a.mp4", "/tmp/b's.mp4"}); err != nil {
			t.Fatalf("WriteConcatList: %v", err)
		}

		data, err := os.ReadFile(list)
		if err != nil {
			t.Fatalf("read list: %v", err)
		}
		content := string(data)
		if !strings.Contains(content, "file '/tmp/a.mp4'\n") {
			t.Errorf("list missing entry: %s", content)
		}
		if !strings.Contains(content, `b'\''s.mp4`) {
			t.Errorf("quote not escaped: %s", content)
		}
	})

	t.Run("rejects an empty input list", func(t *testing.T) {
		c := NewCombiner("")
		if err := c.Combine(context.Background(), nil, "out.mp4"); err == nil {
			t.Error("expected error for no inputs")
		}
	})

	t.Run("runs ffmpeg", func(t *testing.T) {
		fakeBinary(t, "ffmpeg", "exit 0")
		c := NewCombiner("")
		if err := c.Combine(context.Background(), []string{"a.mp4", "b.mp4"}, "out.mp4"); err != nil {
			t.Fatalf("Combine: %v", err)
		}
	})

	t.Run("failure surfaces encoder output", func(t *testing.T) {
		fakeBinary(t, "ffmpeg", "echo 'stream mismatch' >&2; exit 1")
		c := NewCombiner("")
		err := c.Combine(context.Background(), []string{"a.mp4"}, "out.mp4")
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "stream mismatch") {
			t.Errorf("error missing encoder output: %v", err)
		}
	})
}

func TestMixer(t *testing.T) {
	t.Run("buildArgs shape", func(t *testing.T) {
		m := NewMixer("")
		args := strings.Join(m.buildArgs("v.mp4", "bgm.mp3", "out.mp4", 0.05), " ")

		for _, want := range []string{
			"-stream_loop -1",
			"volume=0.05[a1]",
			"amix=inputs=2:duration=first",
			"-map 0:v",
			"-c:v copy",
			"-shortest",
		} {
			if !strings.Contains(args, want) {
				t.Errorf("args missing %q: %s", want, args)
			}
		}
	})

	t.Run("rejects volume out of range", func(t *testing.T) {
		m := NewMixer("")
		if err := m.Mix(context.Background(), "v.mp4", "b.mp3", "o.mp4", 0); err == nil {
			t.Error("expected error for zero volume")
		}
		if err := m.Mix(context.Background(), "v.mp4", "b.mp3", "o.mp4", 1.5); err == nil {
			t.Error("expected error for volume above 1")
		}
	})

	t.Run("runs ffmpeg", func(t *testing.T) {
		fakeBinary(t, "ffmpeg", "exit 0")
		m := NewMixer("")
		if err := m.Mix(context.Background(), "v.mp4", "b.mp3", "o.mp4", 0.05); err != nil {
			t.Fatalf("Mix: %v", err)
		}
	})
}
