package terminal

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDevice records output and reports a fixed descriptor
type fakeDevice struct {
	bytes.Buffer
	fd       uintptr
	writeErr error
}

func (d *fakeDevice) Write(p []byte) (int, error) {
	if d.writeErr != nil {
		return 0, d.writeErr
	}
	return d.Buffer.Write(p)
}

func (d *fakeDevice) Fd() uintptr { return d.fd }

// fakeBackend keeps attributes in memory per descriptor
type fakeBackend struct {
	modes  map[int]Mode
	getErr error
	setErr error
	sets   int
}

func newFakeBackend(fd int) *fakeBackend {
	var m Mode
	m.setCanonical(true)
	m.setEcho(true)
	m.setMinReadBlock(true)
	return &fakeBackend{modes: map[int]Mode{fd: m}}
}

func (b *fakeBackend) GetAttr(fd int) (Mode, error) {
	if b.getErr != nil {
		return Mode{}, b.getErr
	}
	m, ok := b.modes[fd]
	if !ok {
		return Mode{}, errors.New("inappropriate ioctl for device")
	}
	return m, nil
}

func (b *fakeBackend) SetAttr(fd int, m Mode) error {
	b.sets++
	if b.setErr != nil {
		return b.setErr
	}
	b.modes[fd] = m
	return nil
}

func newTestSession(t *testing.T) (*Session, *fakeDevice, *fakeBackend) {
	t.Helper()
	dev := &fakeDevice{fd: 7}
	be := newFakeBackend(7)
	s, err := NewSessionWithBackend(dev, strings.NewReader(""), be)
	require.NoError(t, err)
	return s, dev, be
}

func TestNewSession_QueryError(t *testing.T) {
	dev := &fakeDevice{fd: 3}
	be := newFakeBackend(9) // no attributes for fd 3

	s, err := NewSessionWithBackend(dev, strings.NewReader(""), be)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrQuery)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, 3, qe.Fd)
}

func TestNewSession_SeedsCurrentFromOriginal(t *testing.T) {
	s, _, _ := newTestSession(t)
	assert.True(t, s.Current().Equal(s.Original()))
	assert.True(t, s.Original().Canonical())
	assert.True(t, s.Original().Echo())
	assert.False(t, s.AltScreen())
}

func TestCommit_AppliesStagedAttributes(t *testing.T) {
	s, dev, be := newTestSession(t)

	err := s.Begin().Canonical(false).Echo(false).MinReadBlock(false).Commit()
	require.NoError(t, err)

	applied := be.modes[7]
	assert.False(t, applied.Canonical())
	assert.False(t, applied.Echo())
	assert.False(t, applied.MinReadBlock())
	assert.Equal(t, 1, be.sets, "one attribute-set call per commit")
	assert.Zero(t, dev.Len(), "no screen transition staged, nothing written")
	assert.True(t, s.Current().Equal(applied))
}

func TestBegin_ComposesWithCurrentMode(t *testing.T) {
	s, _, be := newTestSession(t)

	require.NoError(t, s.Begin().Echo(false).Commit())
	require.NoError(t, s.Begin().Canonical(false).Commit())

	// Echo stays off: the second builder started from the first commit
	applied := be.modes[7]
	assert.False(t, applied.Echo())
	assert.False(t, applied.Canonical())
	assert.True(t, applied.MinReadBlock())
}

func TestCommit_AltScreenSequences(t *testing.T) {
	s, dev, _ := newTestSession(t)

	require.NoError(t, s.Begin().AltScreen(true).Commit())
	assert.Equal(t, "\x1b[1049h", dev.String())
	assert.True(t, s.AltScreen())

	dev.Reset()
	require.NoError(t, s.Begin().AltScreen(false).Commit())
	assert.Equal(t, "\x1b[1049l", dev.String())
	assert.False(t, s.AltScreen())
}

func TestCommit_ClearedAltScreenWritesNothing(t *testing.T) {
	s, dev, _ := newTestSession(t)

	require.NoError(t, s.Begin().AltScreen(true).ClearAltScreen().Echo(false).Commit())
	assert.Empty(t, dev.String())
	assert.False(t, s.AltScreen())
	assert.False(t, s.Current().Echo())

	require.NoError(t, s.Begin().AltScreen(true).Commit())
	dev.Reset()
	require.NoError(t, s.Begin().AltScreen(false).ClearAltScreen().Commit())
	assert.Empty(t, dev.String())
	assert.True(t, s.AltScreen(), "cleared exit leaves the screen as it was")
}

func TestCommit_SetErrorLeavesCurrentUnchanged(t *testing.T) {
	s, _, be := newTestSession(t)
	before := s.Current()

	be.setErr = errors.New("device busy")
	err := s.Begin().Canonical(false).Echo(false).Commit()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSet)
	assert.True(t, s.Current().Equal(before))
}

func TestCommit_WriteErrorIsSetError(t *testing.T) {
	s, dev, be := newTestSession(t)
	dev.writeErr = errors.New("broken pipe")

	err := s.Begin().AltScreen(true).Echo(false).Commit()
	require.ErrorIs(t, err, ErrSet)
	assert.False(t, s.AltScreen())
	assert.Zero(t, be.sets, "attributes not applied after a failed sequence write")
}

func TestClose_RestoresOriginalAfterManyCommits(t *testing.T) {
	s, dev, be := newTestSession(t)
	original := s.Original()

	require.NoError(t, s.Begin().Canonical(false).Echo(false).AltScreen(true).Commit())
	require.NoError(t, s.Begin().MinReadBlock(false).Commit())
	require.NoError(t, s.Begin().Echo(true).AltScreen(false).Commit())
	require.NoError(t, s.Begin().Echo(false).Commit())

	dev.Reset()
	require.NoError(t, s.Close())

	assert.True(t, be.modes[7].Equal(original))
	// Alternate screen was entered during the session, so exit is written even though it is currently off
	assert.Equal(t, "\x1b[1049l", dev.String())
}

func TestClose_Idempotent(t *testing.T) {
	s, dev, be := newTestSession(t)
	require.NoError(t, s.Begin().AltScreen(true).Commit())

	require.NoError(t, s.Close())
	sets := be.sets
	out := dev.Len()

	require.NoError(t, s.Close())
	assert.Equal(t, sets, be.sets)
	assert.Equal(t, out, dev.Len())

	assert.ErrorIs(t, s.Begin().Echo(false).Commit(), ErrClosed)
}

func TestClose_SwallowsErrors(t *testing.T) {
	s, dev, be := newTestSession(t)
	require.NoError(t, s.Begin().AltScreen(true).Commit())

	dev.writeErr = errors.New("gone")
	be.setErr = errors.New("gone")
	assert.NoError(t, s.Close())
}

func TestClose_NoAltScreenNoExitSequence(t *testing.T) {
	s, dev, _ := newTestSession(t)
	require.NoError(t, s.Begin().Echo(false).Commit())
	require.NoError(t, s.Close())
	assert.Zero(t, dev.Len())
}

func TestClose_RunsOnPanicUnwind(t *testing.T) {
	s, _, be := newTestSession(t)
	original := s.Original()

	func() {
		defer func() { _ = recover() }()
		defer s.Close()
		require.NoError(t, s.Begin().Canonical(false).Echo(false).Commit())
		panic("editor crashed")
	}()

	assert.True(t, be.modes[7].Equal(original))
}

func TestSession_ReadCodepoint(t *testing.T) {
	dev := &fakeDevice{fd: 7}
	s, err := NewSessionWithBackend(dev, strings.NewReader("aé"), newFakeBackend(7))
	require.NoError(t, err)

	ch, ok, err := s.ReadCodepoint()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 'a', ch)

	ch, ok, err = s.ReadCodepoint()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 'é', ch)

	_, ok, err = s.ReadCodepoint()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSession_ReadKey(t *testing.T) {
	dev := &fakeDevice{fd: 7}
	s, err := NewSessionWithBackend(dev, strings.NewReader("\x80j"), newFakeBackend(7))
	require.NoError(t, err)

	_, ok, err := s.ReadKey()
	require.NoError(t, err)
	assert.False(t, ok)

	ch, ok, err := s.ReadKey()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 'j', ch)

	_, _, err = s.ReadKey()
	assert.ErrorIs(t, err, io.EOF)
}

func TestNewSession_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	require.NoError(t, err)
	defer f.Close()

	_, err = NewSession(f, f)
	assert.ErrorIs(t, err, ErrQuery)
	assert.False(t, IsTerminal(int(f.Fd())))
}

func TestSession_PTYRestoresAttributes(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	require.True(t, IsTerminal(int(tty.Fd())))

	s, err := NewSession(tty, tty)
	require.NoError(t, err)
	original := s.Original()

	require.NoError(t, s.Begin().Canonical(false).Echo(false).MinReadBlock(true).Commit())

	live, err := NewTermiosBackend().GetAttr(int(tty.Fd()))
	require.NoError(t, err)
	assert.False(t, live.Canonical())
	assert.False(t, live.Echo())

	require.NoError(t, s.Begin().MinReadBlock(false).Commit())
	require.NoError(t, s.Close())

	restored, err := NewTermiosBackend().GetAttr(int(tty.Fd()))
	require.NoError(t, err)
	assert.True(t, restored.Equal(original))
}
