package terminal

import "golang.org/x/sys/unix"

// Backend performs the platform attribute calls for a file descriptor.
// Session talks to the device only through this interface so tests can
// substitute an in-memory device.
type Backend interface {
	GetAttr(fd int) (Mode, error)
	SetAttr(fd int, m Mode) error
}

// termiosBackend issues tcgetattr/tcsetattr(TCSANOW) equivalents
type termiosBackend struct{}

// NewTermiosBackend returns the ioctl-based backend used by NewSession
func NewTermiosBackend() Backend {
	return termiosBackend{}
}

func (termiosBackend) GetAttr(fd int) (Mode, error) {
	t, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return Mode{}, err
	}
	return Mode{t: *t}, nil
}

func (termiosBackend) SetAttr(fd int, m Mode) error {
	t := m.t
	return unix.IoctlSetTermios(fd, ioctlSetTermios, &t)
}
