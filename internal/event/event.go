package event

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a hierarchical event type in dot notation.
type Topic string

// File event topics.
const (
	// TopicFileOpened is published when a file-backed buffer is opened.
	TopicFileOpened Topic = "file.opened"

	// TopicFileSaved is published when a buffer is written back to disk.
	TopicFileSaved Topic = "file.saved"

	// TopicFileClosed is published when a file-backed buffer is closed.
	TopicFileClosed Topic = "file.closed"
)

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// NewMetadata creates metadata for a fresh event.
func NewMetadata(source string) Metadata {
	return Metadata{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Source:    source,
	}
}

// FileOpened is the payload published when a file is opened. It is an
// immutable snapshot: produced once per occurrence, consumed
// synchronously, and not retained by handlers.
type FileOpened struct {
	// Path is the absolute path of the opened file. It may carry
	// backup/version suffixes exactly as the opening layer saw them.
	Path string

	// RemoteMarker is the remote-authority prefix for non-local paths
	// (e.g. "/ssh:host:"), or empty for local files.
	RemoteMarker string

	// Metadata is the standard event metadata.
	Metadata Metadata
}

// FileSaved is the payload published when a file is saved.
type FileSaved struct {
	// Path is the absolute path of the saved file.
	Path string

	// Metadata is the standard event metadata.
	Metadata Metadata
}
