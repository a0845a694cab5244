package resources

import (
	"time"

	"github.com/google/uuid"
)

// maxHistory bounds the number of LoadEvents a Store keeps.
const maxHistory = 64

// LoadMode tells whether a load replaced the registry or merged into it.
type LoadMode string

const (
	ModeReplace LoadMode = "replace"
	ModeMerge   LoadMode = "merge"
)

// LoadStatus is the outcome of a load attempt.
type LoadStatus string

const (
	StatusLoaded      LoadStatus = "loaded"
	StatusUnreachable LoadStatus = "unreachable"
	StatusMalformed   LoadStatus = "malformed"
)

// LoadEvent records one Update that actually touched the source file.
// Short-circuited updates are not recorded.
type LoadEvent struct {
	ID     uuid.UUID
	Path   string
	Mode   LoadMode
	Status LoadStatus
	Loaded int // records read from the file
	Total  int // registry size after the load
	At     time.Time
	Err    error
}

func newLoadEvent(path string, mode LoadMode) LoadEvent {
	return LoadEvent{
		ID:   uuid.New(),
		Path: path,
		Mode: mode,
		At:   time.Now(),
	}
}

// appendEvent adds event to history, dropping the oldest entries past maxHistory.
func appendEvent(history []LoadEvent, event LoadEvent) []LoadEvent {
	history = append(history, event)
	if over := len(history) - maxHistory; over > 0 {
		history = append(history[:0:0], history[over:]...)
	}
	return history
}
