package formatter

import (
	"path/filepath"
	"testing"

	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestChapterLabel(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Chapter 1 - Getting Started", "1"},
		{"Chapter 12A - Extra Exercises", "12A"},
		{"chapter 3 - lowercase", "3"},
		{"Chapter2 - No Space", "2"},
		{"Course Introduction", ""},
	}

	for _, tc := range cases {
		if got := ChapterLabel(tc.title); got != tc.want {
			t.Errorf("ChapterLabel(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestBuildReportRows(t *testing.T) {
	videos := []models.PlaylistVideo{
		{VideoID: "v10", Title: "Chapter 10 - Closures"},
		{VideoID: "v2a", Title: "Chapter 2A - Exercises"},
		{VideoID: "intro", Title: "Course Introduction"},
		{VideoID: "v2", Title: "Chapter 2 - Variables"},
	}

	rows := BuildReportRows(videos)

	want := []string{
		"Chapter 2 - Variables",
		"Chapter 2A - Exercises",
		"Chapter 10 - Closures",
		"Course Introduction",
	}
	for i, title := range want {
		if rows[i].Title != title {
			t.Errorf("row %d: expected %q, got %q", i, title, rows[i].Title)
		}
		if rows[i].Order != i+1 {
			t.Errorf("row %d: expected order %d, got %d", i, i+1, rows[i].Order)
		}
	}

	if rows[0].URL != "https://www.youtube.com/watch?v=v2" {
		t.Errorf("unexpected URL: %s", rows[0].URL)
	}
}

func TestWriteExcel(t *testing.T) {
	rows := BuildReportRows([]models.PlaylistVideo{
		{VideoID: "v1", Title: "Chapter 1 - Getting Started"},
		{VideoID: "v2", Title: "Chapter 2 - Variables"},
	})

	path := filepath.Join(t.TempDir(), "reports", "Python Course.xlsx")
	if err := WriteExcel(path, rows); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("expected readable workbook: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	header, err := f.GetCellValue(sheet, "A1")
	if err != nil || header != "Order Number" {
		t.Errorf("expected header cell, got %q (%v)", header, err)
	}
	title, _ := f.GetCellValue(sheet, "C2")
	if title != "Chapter 1 - Getting Started" {
		t.Errorf("unexpected first title: %q", title)
	}
	url, _ := f.GetCellValue(sheet, "D3")
	if url != "https://www.youtube.com/watch?v=v2" {
		t.Errorf("unexpected URL cell: %q", url)
	}
}

func TestWorkbookName(t *testing.T) {
	if got := WorkbookName("Python: The Course"); got != "Python_The_Course.xlsx" {
		t.Errorf("unexpected workbook name: %q", got)
	}
	if got := WorkbookName("   "); got != "Playlist.xlsx" {
		t.Errorf("expected fallback name, got %q", got)
	}
}
