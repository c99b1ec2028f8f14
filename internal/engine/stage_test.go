package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStage(t *testing.T) {
	t.Run("writes dataset and returns its path", func(t *testing.T) {
		stager := &Stager{Dir: filepath.Join(t.TempDir(), "staging")}

		path, err := stager.Stage("req-1", strings.NewReader("0.1\n0.2\n"))
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "0.1\n0.2\n", string(content))
	})

	t.Run("creates missing staging directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "staging")
		stager := &Stager{Dir: dir}

		_, err := stager.Stage("req-1", strings.NewReader("data"))
		require.NoError(t, err)

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("distinct ids get distinct paths", func(t *testing.T) {
		stager := &Stager{Dir: t.TempDir()}

		first, err := stager.Stage("req-1", strings.NewReader("first"))
		require.NoError(t, err)

		second, err := stager.Stage("req-2", strings.NewReader("second"))
		require.NoError(t, err)

		assert.NotEqual(t, first, second)

		content, err := os.ReadFile(first)
		require.NoError(t, err)
		assert.Equal(t, "first", string(content))
	})

	t.Run("unwritable directory propagates error", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}

		dir := t.TempDir()
		require.NoError(t, os.Chmod(dir, 0555))
		t.Cleanup(func() { os.Chmod(dir, 0755) })

		stager := &Stager{Dir: filepath.Join(dir, "staging")}

		_, err := stager.Stage("req-1", strings.NewReader("data"))
		assert.Error(t, err)
	})
}
