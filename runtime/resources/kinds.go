package resources

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	strutil "github.com/omnipathdb/resctl/internal/util/strings"
)

// KindSuffix terminates every descriptor type name.
const KindSuffix = "Resource"

// Descriptor describes how to consume one resource for one data category.
type Descriptor interface {
	// Name is the resource name, the registry key unless a name argument overrides it.
	Name() string
	// Category is the data category the descriptor was built for.
	Category() string
	// ResourceAttrs is the full record of the resource.
	ResourceAttrs() Record
}

// Constructor builds a descriptor from its keyword arguments. args always
// contains "name" and "resource_attrs" in addition to the declared spec.
type Constructor func(args Spec) (Descriptor, error)

// TypeName derives the descriptor type name for a category:
// enzyme_substrate -> EnzymeSubstrateResource.
func TypeName(category string) string {
	return strutil.ToPascalCase(category) + KindSuffix
}

// KindTable maps descriptor type names to their constructors.
type KindTable struct {
	mu    sync.RWMutex
	kinds map[string]Constructor
}

// DefaultKinds is the table descriptor families register into from init.
var DefaultKinds = NewKindTable()

// NewKindTable creates an empty table.
func NewKindTable() *KindTable {
	return &KindTable{kinds: make(map[string]Constructor)}
}

// RegisterKind registers a constructor in DefaultKinds.
func RegisterKind(typeName string, ctor Constructor) error {
	return DefaultKinds.Register(typeName, ctor)
}

// Register associates typeName with ctor. typeName must end in KindSuffix
// and may only be registered once.
func (t *KindTable) Register(typeName string, ctor Constructor) error {
	if ctor == nil {
		return fmt.Errorf("descriptor kind %s: constructor is nil", typeName)
	}
	if !strings.HasSuffix(typeName, KindSuffix) || typeName == KindSuffix {
		return fmt.Errorf("descriptor kind %q must be named <Category>%s", typeName, KindSuffix)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.kinds[typeName]; exists {
		return fmt.Errorf("%w: %s", ErrKindExists, typeName)
	}
	t.kinds[typeName] = ctor
	return nil
}

// MustRegister is like Register but panics on error. Intended for init functions.
func (t *KindTable) MustRegister(typeName string, ctor Constructor) {
	if err := t.Register(typeName, ctor); err != nil {
		panic(err)
	}
}

// Lookup returns the constructor registered under typeName.
func (t *KindTable) Lookup(typeName string) (Constructor, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ctor, ok := t.kinds[typeName]
	return ctor, ok
}

// Resolve finds the constructor for category, returning an
// *UnknownCategoryError when none is registered.
func (t *KindTable) Resolve(category string) (Constructor, string, error) {
	typeName := TypeName(category)
	if ctor, ok := t.Lookup(typeName); ok {
		return ctor, typeName, nil
	}
	return nil, typeName, &UnknownCategoryError{
		Category: category,
		TypeName: typeName,
		Known:    t.Names(),
	}
}

// Names returns the registered type names, sorted.
func (t *KindTable) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	names := make([]string, 0, len(t.kinds))
	for name := range t.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns the canonical category for every registered type name
// (EnzymeSubstrateResource -> enzyme_substrate), sorted.
func (t *KindTable) Categories() []string {
	names := t.Names()
	categories := make([]string, len(names))
	for i, name := range names {
		categories[i] = strutil.ToSnakeCase(strings.TrimSuffix(name, KindSuffix))
	}
	sort.Strings(categories)
	return categories
}

// Len returns the number of registered kinds.
func (t *KindTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.kinds)
}

// Clone returns an independent copy of the table.
func (t *KindTable) Clone() *KindTable {
	t.mu.RLock()
	defer t.mu.RUnlock()

	clone := NewKindTable()
	for name, ctor := range t.kinds {
		clone.kinds[name] = ctor
	}
	return clone
}
