package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "nativedemo version "+Version), out)
}

func TestList(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "counter")
	assert.Contains(t, out, "todo")
}

func TestRunUnknownDemo(t *testing.T) {
	_, err := execute(t, "run", "nope")
	assert.ErrorContains(t, err, "unknown demo")
}

func TestRunCounterWithConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "native.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
window: {title: From Config, width: 500, height: 300}
log: {level: error}
`), 0o644))

	out, err := execute(t, "run", "counter", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, `window "From Config"`)
	assert.Contains(t, out, `text "clicked 3"`)
}

func TestRunRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "native.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: {format: xml}\n"), 0o644))

	_, err := execute(t, "run", "todo", "--config", path)
	assert.ErrorContains(t, err, "log.format")

	require.NoError(t, os.WriteFile(path, []byte("app: {id: nodots}\n"), 0o644))
	_, err = execute(t, "run", "todo", "--config", path)
	assert.ErrorContains(t, err, "app.id")
}
