// Package store contains the SQLite-backed repositories for the named record
// collections: settings, clients, material presets, printer profiles,
// templates, quote history and backup registry entries.
package store

import "errors"

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")
