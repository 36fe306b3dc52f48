// Package ui implements the course hours dashboard using bubbletea's Elm
// architecture.
//
// The dashboard consumes the CSV report produced by the hours scan and shows
// one row per course folder with a proportional bar of its total duration.
// Rows can be re-sorted between report order, name, and duration. Keyboard
// navigation uses vim-style bindings (j/k, s, q) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui
