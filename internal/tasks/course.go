package tasks

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/krisk248/IITM-reap-project/internal/media"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

// errorFileName is written into the course folder when validation fails.
const errorFileName = "error.txt"

var (
	supplementPattern = regexp.MustCompile(`^Chapter\s+(\d+)([A-Za-z]+)\s*-\s*(.+)$`)
	chapterPattern    = regexp.MustCompile(`^Chapter\s+(\d+)\s*-\s*(.+)$`)
)

// CourseVideo is one validated video in upload order.
type CourseVideo struct {
	Path        string // Absolute file path
	Title       string // File base name without extension
	Description string // Text after the first " - ", empty for the introduction
	Chapter     int    // Chapter number, 0 for the introduction
	Supplement  string // Supplement letter(s), empty for main chapter videos
	Intro       bool   // True for the course introduction video
}

// CoursePlan is the validated, natural-ordered upload set for one course folder.
type CoursePlan struct {
	CourseName string        // Folder base name
	Dir        string        // Course folder path
	Videos     []CourseVideo // Introduction first, then chapters in natural order
	Violations []string      // Empty when the folder is valid
}

// Valid reports whether the folder passed structure validation.
func (p *CoursePlan) Valid() bool {
	return len(p.Violations) == 0
}

// ValidateCourseDir checks a course folder against the required naming
// structure: exactly one course introduction video, main videos named
// "Chapter N - Title", and supplemental videos named "Chapter NA - Title".
//
// Violations are collected, written to error.txt inside the folder, and the
// plan is returned alongside [shared.ErrInvalidStructure]. A valid folder
// returns the videos with the introduction first and the chapters in natural
// sort order.
func ValidateCourseDir(dir string, extensions map[string]struct{}) (*CoursePlan, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrFileNotFound, dir)
	}

	plan := &CoursePlan{
		CourseName: filepath.Base(dir),
		Dir:        dir,
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !media.IsVideo(entry.Name(), extensions) {
			continue
		}
		names = append(names, entry.Name())
	}

	if len(names) == 0 {
		plan.Violations = append(plan.Violations, "no video files found")
		writeViolations(dir, plan.Violations)
		return plan, fmt.Errorf("%w: %s", shared.ErrInvalidStructure, dir)
	}

	shared.SortNatural(names)

	intros := 0
	var intro *CourseVideo
	var chapters []CourseVideo

	for _, name := range names {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		path := filepath.Join(dir, name)

		if isIntroduction(base) {
			intros++
			if intros > 1 {
				plan.Violations = append(plan.Violations, fmt.Sprintf("%s: more than one course introduction video", name))
				continue
			}
			intro = &CourseVideo{Path: path, Title: base, Intro: true}
			continue
		}

		if m := supplementPattern.FindStringSubmatch(base); m != nil {
			number, _ := strconv.Atoi(m[1])
			chapters = append(chapters, CourseVideo{
				Path:        path,
				Title:       base,
				Description: m[3],
				Chapter:     number,
				Supplement:  strings.ToUpper(m[2]),
			})
			continue
		}

		if m := chapterPattern.FindStringSubmatch(base); m != nil {
			number, _ := strconv.Atoi(m[1])
			chapters = append(chapters, CourseVideo{
				Path:        path,
				Title:       base,
				Description: m[2],
				Chapter:     number,
			})
			continue
		}

		plan.Violations = append(plan.Violations, fmt.Sprintf("%s: does not match 'Chapter N - Title' or 'Chapter NA - Title'", name))
	}

	if intro == nil {
		plan.Violations = append(plan.Violations, "missing course introduction video")
	}

	if len(plan.Violations) > 0 {
		writeViolations(dir, plan.Violations)
		return plan, fmt.Errorf("%w: %s", shared.ErrInvalidStructure, dir)
	}

	plan.Videos = make([]CourseVideo, 0, len(chapters)+1)
	plan.Videos = append(plan.Videos, *intro)
	plan.Videos = append(plan.Videos, chapters...)
	return plan, nil
}

func isIntroduction(base string) bool {
	return strings.HasPrefix(strings.ToLower(base), "course introduction")
}

func writeViolations(dir string, violations []string) {
	path := filepath.Join(dir, errorFileName)
	content := strings.Join(violations, "\n") + "\n"
	os.WriteFile(path, []byte(content), 0644)
}
