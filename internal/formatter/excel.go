package formatter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"github.com/xuri/excelize/v2"
)

var chapterLabelPattern = regexp.MustCompile(`(?i)Chapter\s*(\d+[A-Za-z]?)`)

// ReportRow is one numbered row of a playlist Excel report.
type ReportRow struct {
	Order   int
	Chapter string
	Title   string
	URL     string
}

// ChapterLabel extracts the "N" or "NA" chapter label from a video title.
// Titles without a chapter label return the empty string.
func ChapterLabel(title string) string {
	if m := chapterLabelPattern.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	return ""
}

// chapterKey splits a chapter label into its numeric and letter parts for
// ordering. Unlabeled rows sort last.
func chapterKey(label string) (int, string) {
	if label == "" {
		return int(^uint(0) >> 1), ""
	}
	i := 0
	for i < len(label) && label[i] >= '0' && label[i] <= '9' {
		i++
	}
	number, err := strconv.Atoi(label[:i])
	if err != nil {
		return int(^uint(0) >> 1), ""
	}
	return number, strings.ToUpper(label[i:])
}

// SortByChapter orders playlist videos by their chapter label. Videos without
// a label keep their playlist order at the end.
func SortByChapter(videos []models.PlaylistVideo) {
	sort.SliceStable(videos, func(i, j int) bool {
		ni, li := chapterKey(ChapterLabel(videos[i].Title))
		nj, lj := chapterKey(ChapterLabel(videos[j].Title))
		if ni != nj {
			return ni < nj
		}
		return li < lj
	})
}

// BuildReportRows orders playlist videos by chapter label and numbers them.
func BuildReportRows(videos []models.PlaylistVideo) []ReportRow {
	ordered := make([]models.PlaylistVideo, len(videos))
	copy(ordered, videos)
	SortByChapter(ordered)

	rows := make([]ReportRow, 0, len(ordered))
	for i, video := range ordered {
		rows = append(rows, ReportRow{
			Order:   i + 1,
			Chapter: ChapterLabel(video.Title),
			Title:   video.Title,
			URL:     video.URL(),
		})
	}
	return rows
}

// WriteExcel writes report rows to an .xlsx workbook at path, creating
// parent directories as needed.
func WriteExcel(path string, rows []ReportRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report folder: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"Order Number", "Chapter", "Video Title", "Youtube URL"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, row := range rows {
		values := []any{row.Order, row.Chapter, row.Title, row.URL}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WorkbookName builds a safe .xlsx file name from a playlist title or
// description.
func WorkbookName(label string) string {
	name := strings.TrimSpace(label)
	if name == "" {
		name = "Playlist"
	}
	return shared.SanitizeFileName(name) + ".xlsx"
}
