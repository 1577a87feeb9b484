package ribs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/ribs/pkg/ribs"
	"github.com/BrandonKowalski/ribs/pkg/ribs/router"
	"github.com/BrandonKowalski/ribs/pkg/ribs/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ribs.toml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadOptions(t *testing.T) {
	path := writeFile(t, `
log_level = "debug"
internal_log_level = "warn"
strict_assertions = true
`)

	options, err := ribs.LoadOptions(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", options.LogLevel)
	assert.Equal(t, "warn", options.InternalLogLevel)
	require.NotNil(t, options.StrictAssertions)
	assert.True(t, *options.StrictAssertions)
	assert.Empty(t, options.LogPath)
}

func TestLoadOptionsMalformed(t *testing.T) {
	path := writeFile(t, `log_level = `)

	_, err := ribs.LoadOptions(path)

	require.Error(t, err)
	assert.True(t, ribs.IsConfigError(err))
	assert.Contains(t, err.Error(), "ribs: load_options:")
}

func TestLoadOptionsMissingFile(t *testing.T) {
	_, err := ribs.LoadOptions(filepath.Join(t.TempDir(), "missing.toml"))

	assert.True(t, ribs.IsConfigError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestInitAppliesStrictAssertions(t *testing.T) {
	previous := ribs.SetStrictAssertions(false)
	t.Cleanup(func() { ribs.SetStrictAssertions(previous) })

	strict := true
	ribs.Init(ribs.Options{StrictAssertions: &strict})

	parent := router.New(nil, router.WithRouteIdentifier("Parent"))
	child := router.New(nil, router.WithRouteIdentifier("Child"))
	parent.AttachChild(child)

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)
		assert.True(t, ribs.IsProgrammerError(recovered))
	}()
	parent.AttachChild(child)
}

func TestIsProgrammerError(t *testing.T) {
	assert.False(t, ribs.IsProgrammerError("boom"))
	assert.False(t, ribs.IsProgrammerError(errors.New("boom")))
	assert.True(t, ribs.IsProgrammerError(&ribs.ProgrammerError{Op: "attach", Msg: "twice"}))
}

func TestIsCancelled(t *testing.T) {
	wf := workflow.New[string]()
	workflow.Begin(wf, func(string) workflow.Producer[string, int] {
		return workflow.NewDeferred[string, int]().Producer()
	}).Commit()
	wf.Subscribe("x")

	wf.Cancel()

	assert.True(t, ribs.IsCancelled(wf.Err()))
	assert.False(t, ribs.IsCancelled(errors.New("other")))
}
