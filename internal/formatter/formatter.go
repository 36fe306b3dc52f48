// package formatter renders scan results and playlist data to the report
// formats the channel workflows consume (plain text logs, CSV, Excel).
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// HoursCSV renders folder duration totals as a two-column CSV report.
// The root folder (empty relative path) is labeled with rootName.
func HoursCSV(totals []models.FolderTotal, rootName string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Course Name", "Duration"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, total := range totals {
		name := total.Path
		if name == "" {
			name = rootName
		}
		record := []string{name, shared.FormatSeconds(total.Seconds)}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// HoursLog renders folder duration totals as a human-readable log.
func HoursLog(totals []models.FolderTotal, rootName string, fileCount int, failures []string) []byte {
	var buf bytes.Buffer

	for _, total := range totals {
		name := total.Path
		if name == "" {
			name = rootName
		}
		fmt.Fprintf(&buf, "%s: %s\n", name, shared.FormatSeconds(total.Seconds))
	}

	fmt.Fprintf(&buf, "\n%d video files scanned\n", fileCount)
	if len(failures) > 0 {
		fmt.Fprintf(&buf, "%d files could not be probed:\n", len(failures))
		for _, path := range failures {
			fmt.Fprintf(&buf, "  %s\n", path)
		}
	}

	return buf.Bytes()
}

// DuplicatesReport renders duplicate groups as a plain text report.
// Groups keep scan order; an empty group set renders a single line.
func DuplicatesReport(groups []models.DuplicateGroup) []byte {
	var buf bytes.Buffer

	if len(groups) == 0 {
		buf.WriteString("No duplicate files found.\n")
		return buf.Bytes()
	}

	fmt.Fprintf(&buf, "%d duplicate groups found\n\n", len(groups))
	for i, group := range groups {
		fmt.Fprintf(&buf, "Group %d (%s):\n", i+1, group.Digest)
		for _, path := range group.Paths {
			fmt.Fprintf(&buf, "  %s\n", path)
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}

// TranslationOpts holds the per-project values repeated on every CSV row.
type TranslationOpts struct {
	ProjectID      string
	SourceLanguage string // Defaults to "en"
	Gender         string
	TaskType       string // Defaults to "Transcription Edit"
	TargetLanguage string // Empty for transcription tasks
	Assignee       string
}

// TranslationCSV renders a bulk-upload CSV for the translation pipeline, one
// row per playlist video, ordered by title.
func TranslationCSV(opts TranslationOpts, videos []models.PlaylistVideo) ([]byte, error) {
	if opts.SourceLanguage == "" {
		opts.SourceLanguage = "en"
	}
	if opts.TaskType == "" {
		opts.TaskType = "Transcription Edit"
	}

	ordered := make([]models.PlaylistVideo, len(videos))
	copy(ordered, videos)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Title < ordered[j].Title })

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{
		"Project Id", "Youtube URL", "Source Language", "Gender", "Task Type",
		"Target Language", "Assignee", "Description", "Video Description", "Task Description",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, video := range ordered {
		record := []string{
			opts.ProjectID,
			video.URL(),
			opts.SourceLanguage,
			opts.Gender,
			opts.TaskType,
			opts.TargetLanguage,
			opts.Assignee,
			video.Title,
			"",
			"",
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}
