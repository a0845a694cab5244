package resources

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const controllerSource = `{
	"SIGNOR": {
		"inputs": {
			"enzyme_substrate": {"input_method": "signor.signor_enzyme_substrate"},
			"interaction": {"input_method": "signor.signor_interactions"}
		}
	},
	"CORUM": {"inputs": {"complex": {"input_method": "corum.corum_complexes"}}}
}`

func TestNew_LoadsDefaultPath(t *testing.T) {
	path := writeSource(t, t.TempDir(), "resources.json", controllerSource)
	core, logs := observer.New(zapcore.InfoLevel)

	ctrl, err := New(
		WithPath(path),
		WithLogger(zap.New(core)),
		WithKinds(testKinds(t, "enzyme_substrate")),
	)
	require.NoError(t, err)

	assert.Equal(t, path, ctrl.Path())
	assert.Equal(t, []string{"SIGNOR", "CORUM"}, ctrl.Names())

	loading := logs.FilterMessage("loading resource information").All()
	require.Len(t, loading, 1)
	assert.Equal(t, path, loading[0].ContextMap()["path"])
	assert.Equal(t, 1, logs.FilterMessage("resource information has been read").Len())
}

func TestNew_PathElements(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0755))
	writeSource(t, filepath.Join(dir, "data"), "resources.json", controllerSource)

	ctrl, err := New(WithPath(dir, "data", "resources.json"), WithKinds(NewKindTable()))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "data", "resources.json"), ctrl.Path())
	assert.Len(t, ctrl.Names(), 2)
}

func TestNew_PackagePath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "resources", "data"), 0755))
	writeSource(t, filepath.Join(dir, "resources", "data"), "resources.json", controllerSource)

	orig := packageDir
	packageDir = func() (string, error) { return dir, nil }
	defer func() { packageDir = orig }()

	ctrl, err := New(WithPackagePath(true), WithKinds(NewKindTable()))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "resources", "data", "resources.json"), ctrl.Path())
	assert.Len(t, ctrl.Names(), 2)

	// relative paths are taken as given without the flag
	ctrl, err = New(WithPath("resources", "data", "resources.json"), WithConsole(&bytes.Buffer{}), WithKinds(NewKindTable()))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("resources", "data", "resources.json"), ctrl.Path())
}

func TestNew_MissingFileIsSurvivable(t *testing.T) {
	console := &bytes.Buffer{}
	missing := filepath.Join(t.TempDir(), "missing.json")

	ctrl, err := New(WithPath(missing), WithConsole(console))
	require.NoError(t, err)
	assert.Empty(t, ctrl.Names())
	assert.Contains(t, console.String(), missing)
}

func TestNew_MalformedFileFails(t *testing.T) {
	path := writeSource(t, t.TempDir(), "resources.json", `{"A": `)

	ctrl, err := New(WithPath(path))
	assert.Nil(t, ctrl)
	assert.ErrorIs(t, err, ErrMalformedSource)
}

func TestNew_EmptyPath(t *testing.T) {
	_, err := New(WithPath())
	assert.Error(t, err)
}

func TestController_CollectEnzymeSubstrate(t *testing.T) {
	path := writeSource(t, t.TempDir(), "resources.json", controllerSource)
	ctrl, err := New(WithPath(path), WithKinds(testKinds(t, "enzyme_substrate")))
	require.NoError(t, err)

	ds, err := ctrl.CollectEnzymeSubstrate()
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, "SIGNOR", ds[0].Name())

	same, err := ctrl.Collect(EnzymeSubstrate)
	require.NoError(t, err)
	assert.Equal(t, ds, same)
}

func TestController_UpdateComposesFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "resources.json", controllerSource)
	local := writeSource(t, dir, "local.yaml", "Local:\n  inputs:\n    complex:\n      input_method: local.complexes\n")

	ctrl, err := New(WithPath(path), WithKinds(testKinds(t, "complex")))
	require.NoError(t, err)
	require.NoError(t, ctrl.Update(UpdateOptions{Path: local}))

	ds, err := ctrl.Collect("complex")
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "CORUM", ds[0].Name())
	assert.Equal(t, "Local", ds[1].Name())
}

func TestController_ReloadResolvesKindsAndRereads(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "resources.json", controllerSource)
	kinds := testKinds(t, "enzyme_substrate")

	ctrl, err := New(WithPath(path), WithKinds(kinds))
	require.NoError(t, err)

	// kinds registered after construction are invisible until Reload
	require.NoError(t, kinds.Register("ComplexResource", testConstructor("complex")))
	_, err = ctrl.Collect("complex")
	require.ErrorIs(t, err, ErrUnknownCategory)

	writeSource(t, dir, "resources.json", `{"Extra": {"inputs": {"complex": {}}}}`)
	require.NoError(t, ctrl.Reload())

	ds, err := ctrl.Collect("complex")
	require.NoError(t, err)
	require.Len(t, ds, 2)
	assert.Equal(t, "CORUM", ds[0].Name())
	assert.Equal(t, "Extra", ds[1].Name())
	assert.Equal(t, 2, ctrl.Kinds().Len())
	assert.Len(t, ctrl.History(), 2)
}

func TestController_ReloadMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "resources.json", controllerSource)
	ctrl, err := New(WithPath(path), WithKinds(NewKindTable()))
	require.NoError(t, err)

	writeSource(t, dir, "resources.json", `not json`)
	assert.ErrorIs(t, ctrl.Reload(), ErrMalformedSource)
	assert.Equal(t, []string{"SIGNOR", "CORUM"}, ctrl.Names())
}

func TestController_CategoriesAndRecord(t *testing.T) {
	path := writeSource(t, t.TempDir(), "resources.json", controllerSource)
	ctrl, err := New(WithPath(path), WithKinds(NewKindTable()))
	require.NoError(t, err)

	assert.Equal(t, []string{"complex", "enzyme_substrate", "interaction"}, ctrl.Categories())

	record, ok := ctrl.Record("CORUM")
	require.True(t, ok)
	assert.Equal(t, []string{"complex"}, record.Categories())

	_, ok = ctrl.Record("nope")
	assert.False(t, ok)
}

func TestController_Watch(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "resources.json", controllerSource)
	ctrl, err := New(WithPath(path), WithKinds(NewKindTable()), WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	var mu sync.Mutex
	var events []LoadEvent
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- ctrl.Watch(ctx, func(event LoadEvent, err error) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, event)
		})
	}()

	time.Sleep(150 * time.Millisecond) // Allow watcher to initialize
	writeSource(t, dir, "resources.json", `{"Added": {}}`)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) > 0
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}

	assert.Contains(t, ctrl.Names(), "Added")
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, StatusLoaded, events[0].Status)
	assert.Equal(t, ModeMerge, events[0].Mode)
}
