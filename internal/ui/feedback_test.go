package ui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stride/internal/session"
)

func TestBell_Play(t *testing.T) {
	var buf bytes.Buffer
	bell := NewBell(&buf, termenv.WithProfile(termenv.Ascii))

	require.NoError(t, bell.Play(session.CueStep))
	require.NoError(t, bell.Play(session.Cue("unknown")))

	assert.Equal(t, "\a", buf.String())
}
