package terminal

import (
	"io"
	"sync"
)

// Device is the output side of a session: raw byte writes plus a descriptor
// that answers attribute queries. *os.File satisfies it.
type Device interface {
	io.Writer
	Fd() uintptr
}

// Session owns a terminal's input and output for the lifetime of the editor.
// The attributes present at construction are restored by Close, which callers
// defer immediately after NewSession succeeds.
type Session struct {
	out     Device
	in      io.Reader
	fd      int
	backend Backend

	mu         sync.Mutex
	original   Mode // never mutated after construction
	current    Mode
	altScreen  bool // screen state recorded by the last commit that staged it
	altEntered bool
	closed     bool
}

// NewSession captures out's current attributes using the termios backend
func NewSession(out Device, in io.Reader) (*Session, error) {
	return NewSessionWithBackend(out, in, NewTermiosBackend())
}

// NewSessionWithBackend is NewSession with an explicit attribute backend
func NewSessionWithBackend(out Device, in io.Reader, backend Backend) (*Session, error) {
	fd := int(out.Fd())
	mode, err := backend.GetAttr(fd)
	if err != nil {
		return nil, &QueryError{Fd: fd, Err: err}
	}

	return &Session{
		out:      out,
		in:       in,
		fd:       fd,
		backend:  backend,
		original: mode,
		current:  mode,
	}, nil
}

// Begin starts a staged mode change seeded from the currently applied mode
func (s *Session) Begin() *ModeChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &ModeChange{
		session: s,
		mode:    s.current,
	}
}

// Original returns the attributes captured at construction
func (s *Session) Original() Mode {
	return s.original
}

// Current returns the last successfully committed attributes
func (s *Session) Current() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// AltScreen reports whether the alternate screen is active
func (s *Session) AltScreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.altScreen
}

// Fd returns the output descriptor
func (s *Session) Fd() int {
	return s.fd
}

// Write passes bytes straight to the output device
func (s *Session) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// ReadCodepoint reads one keystroke's worth of UTF-8 from the session input
func (s *Session) ReadCodepoint() (rune, bool, error) {
	return ReadCodepoint(s.in)
}

// ReadKey is ReadCodepoint reporting end of input as io.EOF
func (s *Session) ReadKey() (rune, bool, error) {
	return ReadKey(s.in)
}

// Close restores the original attributes and leaves the alternate screen if
// it was ever entered. Both steps are best effort: errors are discarded so
// Close never fails. Only the first call does work; it is safe from a signal
// handler goroutine racing the deferred call.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.altEntered {
		_, _ = s.out.Write(csiAltScreenExit)
		s.altScreen = false
	}
	_ = s.backend.SetAttr(s.fd, s.original)
	s.current = s.original
	return nil
}

// ModeChange stages attribute changes for a single commit.
// Setters do no I/O; an attribute never set keeps its current value.
type ModeChange struct {
	session *Session
	mode    Mode
	alt     *bool
}

// Canonical stages line-buffered (true) or byte-at-a-time (false) input
func (c *ModeChange) Canonical(v bool) *ModeChange {
	c.mode.setCanonical(v)
	return c
}

// Echo stages input echo
func (c *ModeChange) Echo(v bool) *ModeChange {
	c.mode.setEcho(v)
	return c
}

// MinReadBlock stages VMIN: true blocks reads for one byte, false allows zero-byte reads
func (c *ModeChange) MinReadBlock(v bool) *ModeChange {
	c.mode.setMinReadBlock(v)
	return c
}

// AltScreen stages an alternate screen transition
func (c *ModeChange) AltScreen(v bool) *ModeChange {
	c.alt = &v
	return c
}

// ClearAltScreen drops a staged alternate screen transition, so Commit writes
// no sequence and the session's alternate screen state is left as it is
func (c *ModeChange) ClearAltScreen() *ModeChange {
	c.alt = nil
	return c
}

// Commit writes the staged alternate screen sequence, if any, then applies the
// attributes in one set call. On failure the session's current mode is unchanged.
func (c *ModeChange) Commit() error {
	s := c.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if c.alt != nil {
		seq := csiAltScreenExit
		if *c.alt {
			seq = csiAltScreenEnter
		}
		if _, err := s.out.Write(seq); err != nil {
			return &SetError{Op: "alternate screen", Err: err}
		}
		s.altScreen = *c.alt
		if *c.alt {
			s.altEntered = true
		}
	}

	if err := s.backend.SetAttr(s.fd, c.mode); err != nil {
		return &SetError{Op: "attributes", Err: err}
	}
	s.current = c.mode
	return nil
}
