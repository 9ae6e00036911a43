package terminal

import (
	"errors"
	"fmt"
)

var (
	ErrQuery         = errors.New("terminal attribute query failed")
	ErrSet           = errors.New("terminal attribute set failed")
	ErrClosed        = errors.New("terminal session closed")
	ErrMalformedUTF8 = errors.New("malformed utf-8 input")
)

// QueryError reports a device that rejected an attribute query, typically not a terminal
type QueryError struct {
	Fd  int
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("terminal query fd %d: %v", e.Fd, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool { return target == ErrQuery }

// SetError reports a failed commit; Op names the step that failed
type SetError struct {
	Op  string
	Err error
}

func (e *SetError) Error() string {
	return fmt.Sprintf("terminal set (%s): %v", e.Op, e.Err)
}

func (e *SetError) Unwrap() error { return e.Err }

func (e *SetError) Is(target error) bool { return target == ErrSet }
