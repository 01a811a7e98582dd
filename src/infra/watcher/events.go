package watcher

import (
	"time"
)

// ChangeType represents the type of file system event
type ChangeType string

const (
	ChangeCreated  ChangeType = "created"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// LibraryEvent signals that the watched library changed and the catalog is
// stale. Events are debounced, one event may cover a burst of file changes.
type LibraryEvent struct {
	Path      string
	Change    ChangeType
	Timestamp time.Time
}
