package terminal

import (
	"bytes"
	"os"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_FallbackWhenNotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	require.NoError(t, err)
	defer f.Close()

	w, h := Size(int(f.Fd()))
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
}

func TestSize_PTY(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 30, Cols: 100}))

	w, h := Size(int(tty.Fd()))
	assert.Equal(t, 100, w)
	assert.Equal(t, 30, h)
}

func TestEmergencyReset_WritesResetSequences(t *testing.T) {
	var buf bytes.Buffer
	EmergencyReset(&buf)

	assert.Equal(t, "\x1b[1049l\x1b[0m", buf.String())
}
