package shared

import (
	"strings"
	"testing"
)

func TestNaturalLess(t *testing.T) {
	tc := []struct {
		name string
		a, b string
		want bool
	}{
		{
			name: "numeric ordering beats lexical",
			a:    "Chapter 2 - Basics",
			b:    "Chapter 10 - Advanced",
			want: true,
		},
		{
			name: "equal prefix, longer sorts after",
			a:    "Chapter 1",
			b:    "Chapter 1A",
			want: true,
		},
		{
			name: "case insensitive text",
			a:    "chapter 3",
			b:    "Chapter 4",
			want: true,
		},
		{
			name: "plain strings fall back to lexical",
			a:    "beta",
			b:    "alpha",
			want: false,
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := NaturalLess(tt.a, tt.b); got != tt.want {
				t.Errorf("NaturalLess(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSortNatural(t *testing.T) {
	items := []string{
		"Chapter 10 - Recap",
		"Chapter 2 - Basics",
		"Chapter 1 - Intro",
		"Chapter 2A - Exercise",
	}
	SortNatural(items)

	want := []string{
		"Chapter 1 - Intro",
		"Chapter 2 - Basics",
		"Chapter 2A - Exercise",
		"Chapter 10 - Recap",
	}
	for i := range want {
		if items[i] != want[i] {
			t.Fatalf("position %d: got %q, want %q", i, items[i], want[i])
		}
	}
}

func TestSanitizeTitle(t *testing.T) {
	got := SanitizeTitle("Chapter `1` - It's Go")
	if got != "Chapter 1 - Its Go" {
		t.Errorf("SanitizeTitle() = %q", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	t.Run("strips invalid characters", func(t *testing.T) {
		got := SanitizeFileName(`Intro: Part <1>/Final?`)
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("invalid characters remain in %q", got)
		}
	})

	t.Run("collapses whitespace to underscores", func(t *testing.T) {
		got := SanitizeFileName("My   Course  Name")
		if got != "My_Course_Name" {
			t.Errorf("SanitizeFileName() = %q", got)
		}
	})

	t.Run("truncates long names", func(t *testing.T) {
		got := SanitizeFileName(strings.Repeat("a", 300))
		if len(got) != 150 {
			t.Errorf("expected 150 chars, got %d", len(got))
		}
	})
}

func TestFormatSeconds(t *testing.T) {
	tc := []struct {
		seconds float64
		want    string
	}{
		{0, "0 hours 0 minutes and 0 seconds"},
		{59.9, "0 hours 0 minutes and 59 seconds"},
		{3661, "1 hours 1 minutes and 1 seconds"},
		{7325, "2 hours 2 minutes and 5 seconds"},
	}

	for _, tt := range tc {
		if got := FormatSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatSeconds(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
