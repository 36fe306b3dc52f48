package models

import "time"

// Video represents a local video file discovered during a library scan.
type Video struct {
	Path     string
	Name     string
	Duration time.Duration
	Size     int64
	ModTime  time.Time
	Err      error // non-nil when the file could not be probed
}

// FolderTotal is the aggregated duration of a folder, including all
// descendant folders.
type FolderTotal struct {
	Path    string // relative to the scan root; "" is the root itself
	Seconds float64
}

// DuplicateGroup is a set of paths whose file contents hash to the same digest.
type DuplicateGroup struct {
	Digest string
	Paths  []string
}

// Playlist represents a playlist on the channel.
type Playlist struct {
	ID          string
	Title       string
	Description string
	Privacy     string
	ItemCount   int64
}

// PlaylistVideo represents one video entry inside a playlist.
type PlaylistVideo struct {
	VideoID  string
	ItemID   string // playlistItems resource ID, needed for removal
	Title    string
	Position int64
}

// URL returns the public watch URL for the video.
func (v PlaylistVideo) URL() string {
	return "https://www.youtube.com/watch?v=" + v.VideoID
}

// RenameEntry is one row of a rename manifest: a file's current name and
// the name it should receive.
type RenameEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}
