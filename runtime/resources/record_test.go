package resources

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Inputs(t *testing.T) {
	record := Record{
		"inputs": map[string]any{
			"enzyme_substrate": map[string]any{"input_method": "m"},
			"complex":          map[string]any{},
		},
	}

	spec, ok := record.Input("enzyme_substrate")
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"input_method": "m"}, spec)

	_, ok = record.Input("interaction")
	assert.False(t, ok)

	categories := record.Categories()
	sort.Strings(categories)
	assert.Equal(t, []string{"complex", "enzyme_substrate"}, categories)
}

func TestRecord_NoInputs(t *testing.T) {
	for _, record := range []Record{
		{},
		{"license": "CC"},
		{"inputs": []any{"enzyme_substrate"}},
		{"inputs": nil},
	} {
		_, ok := record.Input("enzyme_substrate")
		assert.False(t, ok)
		assert.Empty(t, record.Categories())
	}
}

func TestRecord_CloneIsDeep(t *testing.T) {
	record := Record{
		"urls":   []any{"a", map[string]any{"b": "c"}},
		"nested": map[string]any{"k": []any{float64(1)}},
		"flag":   true,
	}
	clone := record.Clone()
	assert.Equal(t, record, clone)

	clone["urls"].([]any)[1].(map[string]any)["b"] = "changed"
	clone["nested"].(map[string]any)["k"].([]any)[0] = "changed"
	clone["flag"] = false

	assert.Equal(t, "c", record["urls"].([]any)[1].(map[string]any)["b"])
	assert.Equal(t, float64(1), record["nested"].(map[string]any)["k"].([]any)[0])
	assert.Equal(t, true, record["flag"])

	assert.Nil(t, Record(nil).Clone())
}

func TestSpec_Clone(t *testing.T) {
	spec := Spec{"resource_attrs": Record{"inputs": map[string]any{}}, "name": "A"}
	clone := spec.Clone()

	clone["resource_attrs"].(Record)["license"] = "x"
	assert.NotContains(t, spec["resource_attrs"].(Record), "license")
	assert.Equal(t, "A", clone.String("name"))
	assert.Equal(t, "", clone.String("missing"))
}
