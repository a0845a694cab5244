package resources

// Reserved argument keys injected into every construction spec.
const (
	InputsKey        = "inputs"
	NameKey          = "name"
	ResourceAttrsKey = "resource_attrs"
)

// Record is the free-form attribute mapping of one resource, exactly as read
// from the metadata source.
type Record map[string]any

// Spec holds the keyword arguments used to construct a descriptor for one
// (resource, category) pair.
type Spec map[string]any

// Entry pairs a registry key with its record.
type Entry struct {
	Name   string
	Record Record
}

// Inputs returns the record's category -> construction spec mapping, or nil
// when the record declares none.
func (r Record) Inputs() map[string]any {
	inputs, _ := r[InputsKey].(map[string]any)
	return inputs
}

// Input returns the raw construction spec declared for category.
// The second result reports whether the record declares the category at all.
func (r Record) Input(category string) (any, bool) {
	inputs := r.Inputs()
	if inputs == nil {
		return nil, false
	}
	spec, ok := inputs[category]
	return spec, ok
}

// Categories lists the categories the record declares inputs for.
func (r Record) Categories() []string {
	inputs := r.Inputs()
	categories := make([]string, 0, len(inputs))
	for category := range inputs {
		categories = append(categories, category)
	}
	return categories
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	return Record(deepCopyMap(r))
}

// Clone returns a deep copy of the spec.
func (s Spec) Clone() Spec {
	if s == nil {
		return nil
	}
	return Spec(deepCopyMap(s))
}

// String returns the string argument stored under key, or "" when absent or
// not a string.
func (s Spec) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// deepCopyValue copies the JSON-compatible value tree rooted at v. Maps and
// slices are duplicated; scalars are shared.
func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case Record:
		return Record(deepCopyMap(t))
	case Spec:
		return Spec(deepCopyMap(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}
