package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Should hide debug entries by default", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(Options{Output: &buf})
		require.NoError(t, err)
		log.Debug("git command")
		log.Warn("lock is stale")
		assert.NotContains(t, buf.String(), "git command")
		assert.Contains(t, buf.String(), "lock is stale")
		assert.Contains(t, buf.String(), "run_id")
	})
	t.Run("Should show debug entries when verbose", func(t *testing.T) {
		var buf bytes.Buffer
		log, err := New(Options{Output: &buf, Verbose: true})
		require.NoError(t, err)
		log.Debug("git command")
		assert.Contains(t, buf.String(), "git command")
	})
	t.Run("Should require an output", func(t *testing.T) {
		_, err := New(Options{})
		assert.Error(t, err)
	})
}
