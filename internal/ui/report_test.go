package ui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseDuration(t *testing.T) {
	cases := []struct {
		text    string
		want    float64
		wantErr bool
	}{
		{"1 hours 1 minutes and 1 seconds", 3661, false},
		{"0 hours 0 minutes and 0 seconds", 0, false},
		{"12 hours 30 minutes and 5 seconds", 45005, false},
		{"ninety minutes", 0, true},
	}

	for _, tc := range cases {
		got, err := parseDuration(tc.text)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseDuration(%q): expected error", tc.text)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDuration(%q): unexpected error %v", tc.text, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestLoadReport(t *testing.T) {
	t.Run("parses the hours CSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.csv")
		content := "Course Name,Duration\n" +
			"Python Course,2 hours 15 minutes and 0 seconds\n" +
			"Go Course,1 hours 0 minutes and 30 seconds\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		rows, err := LoadReport(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(rows) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(rows))
		}
		if rows[0].Name != "Python Course" || rows[0].Seconds != 8100 {
			t.Errorf("unexpected first row: %+v", rows[0])
		}
	})

	t.Run("fails for missing file", func(t *testing.T) {
		if _, err := LoadReport("/nonexistent/report.csv"); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("fails for malformed durations", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.csv")
		if err := os.WriteFile(path, []byte("A,ninety minutes\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadReport(path); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestSortRows(t *testing.T) {
	rows := []CourseRow{
		{Name: "Course 10", Seconds: 100},
		{Name: "Course 2", Seconds: 300},
		{Name: "Course 1", Seconds: 200},
	}

	t.Run("report order leaves rows alone", func(t *testing.T) {
		ordered := sortRows(rows, SortReport)
		if ordered[0].Name != "Course 10" {
			t.Errorf("unexpected order: %+v", ordered)
		}
	})

	t.Run("name order is natural", func(t *testing.T) {
		ordered := sortRows(rows, SortName)
		want := []string{"Course 1", "Course 2", "Course 10"}
		for i, name := range want {
			if ordered[i].Name != name {
				t.Errorf("position %d: expected %s, got %s", i, name, ordered[i].Name)
			}
		}
	})

	t.Run("duration order is descending", func(t *testing.T) {
		ordered := sortRows(rows, SortDuration)
		if ordered[0].Name != "Course 2" || ordered[2].Name != "Course 10" {
			t.Errorf("unexpected order: %+v", ordered)
		}
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		sortRows(rows, SortName)
		if rows[0].Name != "Course 10" {
			t.Error("expected input to be untouched")
		}
	})
}

func TestSortModeCycle(t *testing.T) {
	mode := SortReport
	seen := map[SortMode]bool{mode: true}
	for range 2 {
		mode = mode.next()
		seen[mode] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected the cycle to cover all modes, saw %d", len(seen))
	}
	if mode.next() != SortReport {
		t.Error("expected the cycle to wrap")
	}
}

func TestRenderBar(t *testing.T) {
	if got := renderBar(50, 100, 10); len([]rune(got)) != 5 {
		t.Errorf("expected 5 cells, got %q", got)
	}
	if got := renderBar(1, 1000, 10); len([]rune(got)) != 1 {
		t.Errorf("expected non-zero rows to show one cell, got %q", got)
	}
	if got := renderBar(0, 100, 10); got != "" {
		t.Errorf("expected empty bar for zero, got %q", got)
	}
	if got := renderBar(100, 0, 10); got != "" {
		t.Errorf("expected empty bar for zero max, got %q", got)
	}
	if got := renderBar(1000, 100, 10); len([]rune(got)) != 10 {
		t.Errorf("expected bar to clamp at width, got %q", got)
	}
}
