package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesPlainText(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info")
	require.NoError(t, err)

	log.Info().Msg("Downloading card details...")
	log.Debug().Msg("hidden")

	out := buf.String()
	assert.Contains(t, out, "Downloading card details...")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "\x1b[", "non-terminal output must not be colored")
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud")
	assert.Error(t, err)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
