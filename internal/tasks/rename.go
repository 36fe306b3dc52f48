package tasks

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/krisk248/IITM-reap-project/internal/models"
	"github.com/krisk248/IITM-reap-project/internal/shared"
	"gopkg.in/yaml.v3"
)

// RenameAction is one planned rename with its validation outcome.
type RenameAction struct {
	From string // Existing file name, relative to the folder
	To   string // Target file name
	Err  error  // Non-nil when the rename cannot proceed
}

// RenameResult contains the outcome of applying a rename manifest.
type RenameResult struct {
	Renamed int      // Renames performed
	Failed  []string // Entries that could not be renamed
}

// RenameEngine applies old-name to new-name manifests to a folder of videos.
// Collisions never overwrite: an entry whose target already exists is an
// error, logged, and the loop continues with the next entry.
type RenameEngine struct {
	logger *log.Logger
}

// NewRenameEngine creates a RenameEngine.
func NewRenameEngine(logger *log.Logger) *RenameEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &RenameEngine{logger: logger}
}

// LoadManifest reads a rename manifest. The format is chosen by extension:
// .yaml/.yml files hold a list of {from, to} entries, .csv files hold two
// columns (an optional "from,to" header row is skipped).
func (e *RenameEngine) LoadManifest(path string) ([]models.RenameEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", shared.ErrFileNotFound, path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var entries []models.RenameEntry
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
		}
		return entries, nil
	case ".csv":
		return parseCSVManifest(data)
	default:
		return nil, fmt.Errorf("%w: unsupported manifest format %q", shared.ErrInvalidInput, filepath.Ext(path))
	}
}

func parseCSVManifest(data []byte) ([]models.RenameEntry, error) {
	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	var entries []models.RenameEntry
	for i, record := range records {
		if len(record) < 2 {
			return nil, fmt.Errorf("%w: row %d has %d columns, want 2", shared.ErrInvalidInput, i+1, len(record))
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(record[0]), "from") {
			continue
		}
		entries = append(entries, models.RenameEntry{
			From: strings.TrimSpace(record[0]),
			To:   strings.TrimSpace(record[1]),
		})
	}
	return entries, nil
}

// Plan validates a manifest against a folder without touching any file.
func (e *RenameEngine) Plan(dir string, entries []models.RenameEntry) []RenameAction {
	actions := make([]RenameAction, 0, len(entries))
	targets := make(map[string]bool, len(entries))

	for _, entry := range entries {
		action := RenameAction{From: entry.From, To: entry.To}

		switch {
		case entry.From == "" || entry.To == "":
			action.Err = fmt.Errorf("%w: empty name in manifest entry", shared.ErrInvalidInput)
		case entry.From == entry.To:
			action.Err = fmt.Errorf("%w: source and target are the same", shared.ErrInvalidInput)
		case !fileExists(filepath.Join(dir, entry.From)):
			action.Err = fmt.Errorf("%w: %s", shared.ErrFileNotFound, entry.From)
		case fileExists(filepath.Join(dir, entry.To)):
			action.Err = fmt.Errorf("%w: %s", shared.ErrFileExists, entry.To)
		case targets[entry.To]:
			action.Err = fmt.Errorf("%w: %s targeted twice", shared.ErrFileExists, entry.To)
		}

		targets[entry.To] = true
		actions = append(actions, action)
	}

	return actions
}

// Apply performs the renames from a manifest. Entries that fail validation
// are logged and skipped, and each successful rename is appended to the log
// file when logPath is set.
func (e *RenameEngine) Apply(dir string, entries []models.RenameEntry, logPath string) (*RenameResult, error) {
	var logFile *os.File
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open rename log: %w", err)
		}
		logFile = f
		defer logFile.Close()
	}

	result := &RenameResult{}

	for _, action := range e.Plan(dir, entries) {
		if action.Err != nil {
			e.logger.Error("skipping rename", "from", action.From, "to", action.To, "error", action.Err)
			result.Failed = append(result.Failed, action.From)
			continue
		}

		from := filepath.Join(dir, action.From)
		to := filepath.Join(dir, action.To)
		if err := os.Rename(from, to); err != nil {
			e.logger.Error("rename failed", "from", action.From, "to", action.To, "error", err)
			result.Failed = append(result.Failed, action.From)
			continue
		}

		result.Renamed++
		e.logger.Info("renamed", "from", action.From, "to", action.To)
		if logFile != nil {
			fmt.Fprintf(logFile, "%s\t%s -> %s\n", time.Now().Format(time.RFC3339), action.From, action.To)
		}
	}

	return result, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
