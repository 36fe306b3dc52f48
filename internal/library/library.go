// Package library scans local course trees: collecting video files,
// aggregating per-folder durations bottom-up, and grouping duplicate
// files by content digest.
package library

import (
	"context"
	"os"
)

// DurationProber returns a video file's duration in seconds.
// Implemented by media.Prober.
type DurationProber interface {
	Duration(ctx context.Context, file string) (float64, error)
}

// Cache stores probe results between runs so unchanged files are not
// probed twice. Implemented by repositories.ProbeCache.
type Cache interface {
	Lookup(path string, info os.FileInfo) (float64, bool)
	Record(path string, info os.FileInfo, seconds float64) error
}

// noopCache is used when no cache is configured.
type noopCache struct{}

func (noopCache) Lookup(string, os.FileInfo) (float64, bool)    { return 0, false }
func (noopCache) Record(string, os.FileInfo, float64) error     { return nil }
