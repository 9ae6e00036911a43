package terminal

import "golang.org/x/sys/unix"

// Mode is a snapshot of terminal attributes
// The zero value is a valid, all-clear attribute set
type Mode struct {
	t unix.Termios
}

// Canonical reports whether line buffering is on
func (m Mode) Canonical() bool {
	return m.t.Lflag&unix.ICANON != 0
}

// Echo reports whether typed input is echoed
func (m Mode) Echo() bool {
	return m.t.Lflag&unix.ECHO != 0
}

// MinReadBlock reports whether a read blocks for at least one byte (VMIN >= 1)
func (m Mode) MinReadBlock() bool {
	return m.t.Cc[unix.VMIN] != 0
}

// Equal compares every attribute field
func (m Mode) Equal(o Mode) bool {
	return m.t == o.t
}

func (m *Mode) setCanonical(v bool) {
	m.t.Lflag &^= unix.ICANON
	if v {
		m.t.Lflag |= unix.ICANON
	}
}

func (m *Mode) setEcho(v bool) {
	m.t.Lflag &^= unix.ECHO
	if v {
		m.t.Lflag |= unix.ECHO
	}
}

func (m *Mode) setMinReadBlock(v bool) {
	if v {
		m.t.Cc[unix.VMIN] = 1
	} else {
		m.t.Cc[unix.VMIN] = 0
	}
}
