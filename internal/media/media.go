// Package media wraps the external ffmpeg and ffprobe binaries.
//
// Nothing in this package decodes video itself; every operation builds an
// argument list and runs the encoder as a child process with a context so
// cancellation kills the process.
package media

import (
	"path/filepath"
	"strings"
)

// DefaultExtensions are the video file extensions recognized by scans and
// conversion when the config does not override them.
var DefaultExtensions = []string{".mp4", ".mov", ".mkv", ".avi"}

// ExtensionSet builds a lookup set from a list of extensions.
// Extensions are matched case-insensitively and must include the dot.
func ExtensionSet(exts []string) map[string]struct{} {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(ext)] = struct{}{}
	}
	return set
}

// IsVideo reports whether the path has one of the recognized extensions.
func IsVideo(path string, exts map[string]struct{}) bool {
	_, ok := exts[strings.ToLower(filepath.Ext(path))]
	return ok
}
