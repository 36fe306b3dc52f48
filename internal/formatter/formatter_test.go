package formatter

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/krisk248/IITM-reap-project/internal/models"
)

func TestHoursCSV(t *testing.T) {
	totals := []models.FolderTotal{
		{Path: "", Seconds: 7384},
		{Path: "Chapter 1", Seconds: 3661},
		{Path: "Chapter 2", Seconds: 3723},
	}

	data, err := HoursCSV(totals, "Python Course")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("expected valid CSV, got %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(records))
	}
	if records[0][0] != "Course Name" || records[0][1] != "Duration" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][0] != "Python Course" {
		t.Errorf("expected root row to use the root name, got %q", records[1][0])
	}
	if records[2][1] != "1 hours 1 minutes and 1 seconds" {
		t.Errorf("unexpected duration format: %q", records[2][1])
	}
}

func TestHoursLog(t *testing.T) {
	totals := []models.FolderTotal{
		{Path: "", Seconds: 60},
		{Path: "Chapter 1", Seconds: 60},
	}

	out := string(HoursLog(totals, "Course", 3, []string{"Chapter 1/broken.mp4"}))

	if !strings.Contains(out, "Course: 0 hours 1 minutes and 0 seconds") {
		t.Errorf("expected root line, got:\n%s", out)
	}
	if !strings.Contains(out, "3 video files scanned") {
		t.Errorf("expected file count, got:\n%s", out)
	}
	if !strings.Contains(out, "Chapter 1/broken.mp4") {
		t.Errorf("expected failure listing, got:\n%s", out)
	}
}

func TestDuplicatesReport(t *testing.T) {
	t.Run("lists groups in scan order", func(t *testing.T) {
		groups := []models.DuplicateGroup{
			{Digest: "abc123", Paths: []string{"a/video.mp4", "b/video.mp4"}},
		}

		out := string(DuplicatesReport(groups))
		if !strings.Contains(out, "1 duplicate groups found") {
			t.Errorf("expected group count, got:\n%s", out)
		}
		if !strings.Contains(out, "abc123") || !strings.Contains(out, "b/video.mp4") {
			t.Errorf("expected digest and paths, got:\n%s", out)
		}
	})

	t.Run("reports when nothing is duplicated", func(t *testing.T) {
		out := string(DuplicatesReport(nil))
		if !strings.Contains(out, "No duplicate files found") {
			t.Errorf("unexpected report: %s", out)
		}
	})
}

func TestTranslationCSV(t *testing.T) {
	videos := []models.PlaylistVideo{
		{VideoID: "v2", Title: "Chapter 2 - Loops"},
		{VideoID: "v1", Title: "Chapter 1 - Intro"},
	}

	data, err := TranslationCSV(TranslationOpts{
		ProjectID: "42",
		Gender:    "Female",
		Assignee:  "translator@example.org",
	}, videos)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("expected valid CSV, got %v", err)
	}

	wantHeader := []string{
		"Project Id", "Youtube URL", "Source Language", "Gender", "Task Type",
		"Target Language", "Assignee", "Description", "Video Description", "Task Description",
	}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Fatalf("header column %d: expected %q, got %q", i, col, records[0][i])
		}
	}

	if len(records) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(records))
	}

	// Rows are ordered by title.
	first := records[1]
	if first[1] != "https://www.youtube.com/watch?v=v1" {
		t.Errorf("expected chapter 1 first, got %q", first[1])
	}
	if first[2] != "en" || first[4] != "Transcription Edit" {
		t.Errorf("expected defaults, got %v", first)
	}
	if first[5] != "" {
		t.Errorf("expected empty target language, got %q", first[5])
	}
	if first[7] != "Chapter 1 - Intro" {
		t.Errorf("expected title as description, got %q", first[7])
	}
}
