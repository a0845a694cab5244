package resources

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// UpdateOptions controls a single Store.Update call.
type UpdateOptions struct {
	// Path overrides the store's default source for this load.
	Path string
	// Force re-reads the source even when the registry is already populated.
	Force bool
	// RemoveOld replaces the registry instead of merging into it.
	RemoveOld bool
}

// Store holds the currently loaded registry: resource name -> Record.
//
// Updates are serialized internally and committed atomically; readers
// always see either the state before or after a load, never a partial merge.
type Store struct {
	updateMu sync.Mutex

	mu      sync.RWMutex
	entries map[string]Record
	order   []string
	history []LoadEvent

	defaultPath string
	logger      *zap.Logger
	console     io.Writer
	readFile    func(string) ([]byte, error)
}

// NewStore creates an empty store whose default source is path.
// A nil logger discards log output; a nil console writes diagnostics to stderr.
func NewStore(path string, logger *zap.Logger, console io.Writer) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if console == nil {
		console = os.Stderr
	}
	return &Store{
		entries:     make(map[string]Record),
		defaultPath: path,
		logger:      logger,
		console:     console,
		readFile:    os.ReadFile,
	}
}

// Path returns the default metadata source.
func (s *Store) Path() string {
	return s.defaultPath
}

// Update (re)populates the registry from a metadata file.
//
// When the registry is already populated and neither opts.Path nor
// opts.Force is set the call is a no-op. An empty registry or
// opts.RemoveOld selects replace semantics; otherwise loaded records are
// merged in, overwriting same-named entries.
//
// A file that cannot be read is reported on the console and leaves the
// registry untouched; Update then returns nil. A file that cannot be
// decoded yields a *MalformedSourceError and also leaves the registry
// untouched.
func (s *Store) Update(opts UpdateOptions) error {
	_, err := s.update(opts)
	return err
}

// update performs Update and returns the LoadEvent it recorded, or nil when
// the call was a no-op.
func (s *Store) update(opts UpdateOptions) (*LoadEvent, error) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	populated := s.Len() > 0
	if populated && opts.Path == "" && !opts.Force {
		return nil, nil
	}

	mode := ModeMerge
	if !populated || opts.RemoveOld {
		mode = ModeReplace
	}

	path := opts.Path
	if path == "" {
		path = s.defaultPath
	}
	event := newLoadEvent(path, mode)

	data, err := s.readFile(path)
	if err != nil {
		event.Status = StatusUnreachable
		event.Err = fmt.Errorf("%w: %s: %v", ErrSourceUnreachable, path, err)
		event.Total = s.Len()
		s.recordEvent(event)
		s.reportUnreachable(path, err)
		return &event, nil
	}

	loaded, err := decode(data, FormatFor(path))
	if err != nil {
		merr := &MalformedSourceError{Path: path, Err: err}
		event.Status = StatusMalformed
		event.Err = merr
		event.Total = s.Len()
		s.recordEvent(event)
		return &event, merr
	}

	s.mu.Lock()
	if mode == ModeReplace {
		s.entries = make(map[string]Record, len(loaded))
		s.order = make([]string, 0, len(loaded))
	}
	for _, entry := range loaded {
		if _, exists := s.entries[entry.Name]; !exists {
			s.order = append(s.order, entry.Name)
		}
		s.entries[entry.Name] = entry.Record
	}
	event.Status = StatusLoaded
	event.Loaded = len(loaded)
	event.Total = len(s.entries)
	s.history = appendEvent(s.history, event)
	s.mu.Unlock()

	s.logger.Info("resource information has been read",
		zap.String("path", path),
		zap.String("mode", string(mode)),
		zap.Int("loaded", event.Loaded),
		zap.Int("total", event.Total),
		zap.Stringer("load_id", event.ID),
	)

	return &event, nil
}

// reportUnreachable emits the user-visible diagnostic for a file that
// cannot be accessed.
func (s *Store) reportUnreachable(path string, err error) {
	warn := color.New(color.FgRed)
	warn.Fprintf(s.console, "File %s with resources information cannot be accessed. Check the name of the file.\n", path)

	s.logger.Warn("resource information file cannot be accessed",
		zap.String("path", path),
		zap.Error(err),
	)
}

func (s *Store) recordEvent(event LoadEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = appendEvent(s.history, event)
}

// Len returns the number of resources in the registry.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Names returns the resource names in registry order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Get returns a deep copy of the record stored under name.
func (s *Store) Get(name string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.entries[name]
	if !ok {
		return nil, false
	}
	return record.Clone(), true
}

// Snapshot returns deep copies of all entries in registry order.
func (s *Store) Snapshot() []Entry {
	entries := s.snapshot()
	for i := range entries {
		entries[i].Record = entries[i].Record.Clone()
	}
	return entries
}

// snapshot returns the current entries without copying the records.
// Records are only ever replaced by Update, never mutated in place, so the
// result stays consistent after the lock is released.
func (s *Store) snapshot() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		entries = append(entries, Entry{Name: name, Record: s.entries[name]})
	}
	return entries
}

// History returns the recorded load attempts, oldest first.
func (s *Store) History() []LoadEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := make([]LoadEvent, len(s.history))
	copy(history, s.history)
	return history
}
