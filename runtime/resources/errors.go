package resources

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceUnreachable marks a metadata file that could not be opened or read.
	// Update never returns it; it is recorded on the LoadEvent instead.
	ErrSourceUnreachable = errors.New("resource information file cannot be accessed")

	// ErrMalformedSource is returned when the metadata file is not valid structured data
	ErrMalformedSource = errors.New("malformed resource information")

	// ErrUnknownCategory is returned when no descriptor kind matches a category
	ErrUnknownCategory = errors.New("unknown data category")

	// ErrKindExists is returned when a descriptor kind is registered twice
	ErrKindExists = errors.New("descriptor kind already registered")
)

// MalformedSourceError reports a metadata file that was reachable but could
// not be decoded.
type MalformedSourceError struct {
	Path string
	Err  error
}

func (e *MalformedSourceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrMalformedSource, e.Path, e.Err)
}

func (e *MalformedSourceError) Unwrap() []error {
	return []error{ErrMalformedSource, e.Err}
}

// UnknownCategoryError reports a category whose derived type name has no
// registered constructor. Known lists the type names that were available.
type UnknownCategoryError struct {
	Category string
	TypeName string
	Known    []string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("%s %q: no descriptor kind named %s", ErrUnknownCategory, e.Category, e.TypeName)
}

func (e *UnknownCategoryError) Unwrap() error {
	return ErrUnknownCategory
}

// ConstructionError reports a descriptor constructor that rejected the
// arguments declared by a resource.
type ConstructionError struct {
	Resource string
	Category string
	TypeName string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("failed to construct %s for resource %q: %v", e.TypeName, e.Resource, e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}
