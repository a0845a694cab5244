package resources

import (
	"fmt"
	"sync"
)

// Factory turns registry entries into typed descriptors.
type Factory struct {
	store *Store

	mu    sync.RWMutex
	kinds *KindTable
}

// NewFactory creates a factory reading from store and resolving descriptor
// kinds in kinds.
func NewFactory(store *Store, kinds *KindTable) *Factory {
	return &Factory{store: store, kinds: kinds}
}

// Kinds returns the kind table currently used for resolution.
func (f *Factory) Kinds() *KindTable {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.kinds
}

// SetKinds swaps the kind table used by subsequent Collect calls.
func (f *Factory) SetKinds(kinds *KindTable) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.kinds = kinds
}

// Collect builds one descriptor for every resource declaring inputs for
// category, in registry order.
//
// An unregistered category fails with *UnknownCategoryError before any
// resource is visited. The first constructor failure aborts the call with a
// *ConstructionError; resources after it are not processed. No resource
// declaring the category yields an empty, non-nil slice.
func (f *Factory) Collect(category string) ([]Descriptor, error) {
	ctor, typeName, err := f.Kinds().Resolve(category)
	if err != nil {
		return nil, err
	}

	result := make([]Descriptor, 0)
	for _, entry := range f.store.snapshot() {
		raw, ok := entry.Record.Input(category)
		if !ok {
			continue
		}

		args, err := buildArgs(entry, raw)
		if err == nil {
			var d Descriptor
			d, err = ctor(args)
			if err == nil {
				result = append(result, d)
				continue
			}
		}

		return nil, &ConstructionError{
			Resource: entry.Name,
			Category: category,
			TypeName: typeName,
			Err:      err,
		}
	}

	return result, nil
}

// buildArgs deep-copies the declared spec and injects the contextual
// arguments: the full record and, unless overridden, the registry key as name.
func buildArgs(entry Entry, raw any) (Spec, error) {
	declared, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("construction arguments must be an object, got %T", raw)
	}

	args := Spec(deepCopyMap(declared))
	args[ResourceAttrsKey] = entry.Record.Clone()
	if _, ok := args[NameKey]; !ok {
		args[NameKey] = entry.Name
	}
	return args, nil
}
