package core

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/lixenwraith/vi-todo/terminal"
)

// Closer restores the terminal; *terminal.Session satisfies it
type Closer interface {
	Close() error
}

var (
	crashMu      sync.Mutex
	crashSession Closer

	// Replaced in tests
	exit             func(int) = os.Exit
	crashOut         io.Writer = os.Stderr
	crashTerminalOut io.Writer = os.Stdout
)

// SetCrashSession registers the session restored by HandleCrash, nil clears it
func SetCrashSession(s Closer) {
	crashMu.Lock()
	crashSession = s
	crashMu.Unlock()
}

// HandleCrash is the unified panic handler that restores the terminal and prints the stack trace
func HandleCrash(r any) {
	if r == nil {
		return
	}

	crashMu.Lock()
	s := crashSession
	crashMu.Unlock()

	// Terminal cleanup if available
	if s != nil {
		s.Close()
	} else {
		// Fallback for panics before the session exists
		terminal.EmergencyReset(crashTerminalOut)
	}

	fmt.Fprintf(crashOut, "\r\n\x1b[31mCRASH DETECTED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(crashOut, "Stack Trace:\r\n%s\r\n", debug.Stack())

	if f, ok := crashOut.(*os.File); ok {
		f.Sync()
	}

	exit(1)
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
