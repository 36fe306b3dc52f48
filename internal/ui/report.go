package ui

import (
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// CourseRow is one course folder from the hours report.
type CourseRow struct {
	Name    string
	Seconds float64
}

var durationPattern = regexp.MustCompile(`(\d+) hours (\d+) minutes and (\d+) seconds`)

// parseDuration reads the "H hours M minutes and S seconds" format the hours
// report writes.
func parseDuration(text string) (float64, error) {
	m := durationPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, fmt.Errorf("%w: unrecognized duration %q", shared.ErrInvalidInput, text)
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return float64(hours*3600 + minutes*60 + seconds), nil
}

// LoadReport reads a two-column hours CSV ("Course Name","Duration") into rows.
func LoadReport(path string) ([]CourseRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrFileNotFound, path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var rows []CourseRow
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d columns, want 2", shared.ErrInvalidInput, i+1, len(record))
		}
		if i == 0 && strings.EqualFold(record[0], "Course Name") {
			continue
		}
		seconds, err := parseDuration(record[1])
		if err != nil {
			return nil, err
		}
		rows = append(rows, CourseRow{Name: record[0], Seconds: seconds})
	}

	return rows, nil
}

// SortMode selects the dashboard row ordering.
type SortMode int

const (
	SortReport SortMode = iota // Order the report was written in
	SortName
	SortDuration
)

func (s SortMode) String() string {
	switch s {
	case SortReport:
		return "report order"
	case SortName:
		return "name"
	case SortDuration:
		return "duration"
	default:
		return ""
	}
}

// next cycles to the following sort mode.
func (s SortMode) next() SortMode {
	switch s {
	case SortReport:
		return SortName
	case SortName:
		return SortDuration
	default:
		return SortReport
	}
}

// sortRows returns rows ordered by the mode, leaving the input untouched.
func sortRows(rows []CourseRow, mode SortMode) []CourseRow {
	ordered := make([]CourseRow, len(rows))
	copy(ordered, rows)

	switch mode {
	case SortName:
		sort.SliceStable(ordered, func(i, j int) bool {
			return shared.NaturalLess(ordered[i].Name, ordered[j].Name)
		})
	case SortDuration:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Seconds > ordered[j].Seconds
		})
	}

	return ordered
}

// totalSeconds sums every row.
func totalSeconds(rows []CourseRow) float64 {
	var total float64
	for _, row := range rows {
		total += row.Seconds
	}
	return total
}

// maxSeconds finds the longest row, for bar scaling.
func maxSeconds(rows []CourseRow) float64 {
	var max float64
	for _, row := range rows {
		if row.Seconds > max {
			max = row.Seconds
		}
	}
	return max
}

// renderBar builds a proportional bar of width cells for seconds against max.
// Non-zero rows always show at least one cell.
func renderBar(seconds, max float64, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	cells := int(seconds / max * float64(width))
	if cells == 0 && seconds > 0 {
		cells = 1
	}
	if cells > width {
		cells = width
	}
	return strings.Repeat("█", cells)
}
