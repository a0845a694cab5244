package resources

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/omnipathdb/resctl/internal/watch"
)

// DefaultPath is the built-in location of the resource information file.
var DefaultPath = []string{"resources", "data", "resources.json"}

// EnzymeSubstrate is the category of enzyme-substrate relationships.
const EnzymeSubstrate = "enzyme_substrate"

// packageDir resolves the directory relative paths are anchored to when
// WithPackagePath is set. Replaced in tests.
var packageDir = executableDir

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}

type options struct {
	path           []string
	usePackagePath bool
	logger         *zap.Logger
	console        io.Writer
	kinds          *KindTable
	debounce       time.Duration
}

// Option configures a Controller.
type Option func(*options)

// WithPath sets the default metadata source; elements are joined with filepath.Join.
func WithPath(elems ...string) Option {
	return func(o *options) {
		o.path = elems
	}
}

// WithPackagePath anchors the default path at the directory of the running
// executable instead of taking it as given.
func WithPackagePath(use bool) Option {
	return func(o *options) {
		o.usePackagePath = use
	}
}

// WithLogger sets the logger for informational messages.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithConsole sets the writer receiving user-visible diagnostics.
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.console = w
	}
}

// WithKinds sets the table descriptor kinds are resolved from.
// Defaults to DefaultKinds.
func WithKinds(kinds *KindTable) Option {
	return func(o *options) {
		o.kinds = kinds
	}
}

// WithDebounce sets the quiet period Watch waits for before reloading.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// Controller is the entry point for consulting resource information: it
// owns the Store and the Factory built on top of it.
type Controller struct {
	store      *Store
	factory    *Factory
	kindSource *KindTable
	logger     *zap.Logger
	debounce   time.Duration
}

// New resolves the default metadata path, logs it and performs the initial
// load. A missing file is survivable and leaves the registry empty; a
// malformed one is returned as an error.
func New(opts ...Option) (*Controller, error) {
	o := options{
		path:     DefaultPath,
		logger:   zap.NewNop(),
		kinds:    DefaultKinds,
		debounce: watch.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	path, err := resolvePath(o.path, o.usePackagePath)
	if err != nil {
		return nil, err
	}

	o.logger.Info("loading resource information", zap.String("path", path))

	store := NewStore(path, o.logger, o.console)
	c := &Controller{
		store:      store,
		factory:    NewFactory(store, o.kinds.Clone()),
		kindSource: o.kinds,
		logger:     o.logger,
		debounce:   o.debounce,
	}

	if err := c.Update(UpdateOptions{}); err != nil {
		return nil, err
	}
	return c, nil
}

func resolvePath(elems []string, usePackagePath bool) (string, error) {
	if len(elems) == 0 {
		return "", fmt.Errorf("resource information path is empty")
	}
	path := filepath.Join(elems...)

	if usePackagePath && !filepath.IsAbs(path) {
		dir, err := packageDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve package path: %w", err)
		}
		path = filepath.Join(dir, path)
	}
	return path, nil
}

// Store returns the underlying metadata store.
func (c *Controller) Store() *Store {
	return c.store
}

// Kinds returns the kind table Collect currently resolves against.
func (c *Controller) Kinds() *KindTable {
	return c.factory.Kinds()
}

// Path returns the default metadata source.
func (c *Controller) Path() string {
	return c.store.Path()
}

// Update reads resource information; see Store.Update.
func (c *Controller) Update(opts UpdateOptions) error {
	return c.store.Update(opts)
}

// Collect builds descriptors for every resource supporting category; see
// Factory.Collect.
func (c *Controller) Collect(category string) ([]Descriptor, error) {
	return c.factory.Collect(category)
}

// CollectEnzymeSubstrate is Collect for the enzyme_substrate category.
func (c *Controller) CollectEnzymeSubstrate() ([]Descriptor, error) {
	return c.Collect(EnzymeSubstrate)
}

// Reload re-resolves the descriptor kinds from the source table, picking up
// kinds registered since the controller was created, and forces a re-read
// of the default source, merged into the current registry.
func (c *Controller) Reload() error {
	kinds := c.kindSource.Clone()
	c.factory.SetKinds(kinds)

	c.logger.Info("reloading resource controller",
		zap.String("path", c.store.Path()),
		zap.Int("kinds", kinds.Len()),
	)

	return c.store.Update(UpdateOptions{Force: true})
}

// Watch re-reads the default source whenever it changes on disk until ctx
// is cancelled. notify, when non-nil, receives the LoadEvent of every
// triggered load together with its error.
func (c *Controller) Watch(ctx context.Context, notify func(LoadEvent, error)) error {
	fw, err := watch.NewFileWatcher([]string{c.store.Path()}, c.debounce, c.logger, func([]string) error {
		event, err := c.store.update(UpdateOptions{Force: true})
		if notify != nil && event != nil {
			notify(*event, err)
		}
		return err
	})
	if err != nil {
		return err
	}

	if err := fw.Start(); err != nil {
		fw.Stop()
		return err
	}
	c.logger.Info("watching resource information", zap.String("path", c.store.Path()))

	<-ctx.Done()
	return fw.Stop()
}

// Names returns the resource names in registry order.
func (c *Controller) Names() []string {
	return c.store.Names()
}

// Record returns a copy of the record of the named resource.
func (c *Controller) Record(name string) (Record, bool) {
	return c.store.Get(name)
}

// Categories returns every category declared by at least one resource, sorted.
func (c *Controller) Categories() []string {
	seen := make(map[string]struct{})
	for _, entry := range c.store.snapshot() {
		for _, category := range entry.Record.Categories() {
			seen[category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// History returns the load attempts recorded by the store.
func (c *Controller) History() []LoadEvent {
	return c.store.History()
}
