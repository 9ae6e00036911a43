package core

import (
	"bytes"
	"testing"
)

type countingCloser struct {
	closes int
}

func (c *countingCloser) Close() error {
	c.closes++
	return nil
}

// captureCrash redirects output and exit for the duration of a test
func captureCrash(t *testing.T) (*bytes.Buffer, *int) {
	t.Helper()
	var out bytes.Buffer
	code := -1

	oldExit, oldOut, oldTerm := exit, crashOut, crashTerminalOut
	exit = func(c int) { code = c }
	crashOut = &out
	crashTerminalOut = &bytes.Buffer{}
	t.Cleanup(func() {
		exit, crashOut, crashTerminalOut = oldExit, oldOut, oldTerm
		SetCrashSession(nil)
	})
	return &out, &code
}

func TestHandleCrash_ClosesRegisteredSession(t *testing.T) {
	out, code := captureCrash(t)
	s := &countingCloser{}
	SetCrashSession(s)

	HandleCrash("boom")

	if s.closes != 1 {
		t.Errorf("expected session closed once, got %d", s.closes)
	}
	if *code != 1 {
		t.Errorf("expected exit code 1, got %d", *code)
	}
	if !bytes.Contains(out.Bytes(), []byte("CRASH DETECTED: boom")) {
		t.Errorf("missing crash banner: %q", out.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("Stack Trace:")) {
		t.Errorf("missing stack trace: %q", out.String())
	}
}

func TestHandleCrash_NilIsNoop(t *testing.T) {
	out, code := captureCrash(t)
	s := &countingCloser{}
	SetCrashSession(s)

	HandleCrash(nil)

	if s.closes != 0 || *code != -1 || out.Len() != 0 {
		t.Errorf("nil recover value must not act: closes=%d code=%d out=%q", s.closes, *code, out.String())
	}
}

func TestHandleCrash_FallsBackToEmergencyReset(t *testing.T) {
	out, code := captureCrash(t)
	term := &bytes.Buffer{}
	crashTerminalOut = term

	HandleCrash("early")

	if *code != 1 {
		t.Errorf("expected exit code 1, got %d", *code)
	}
	// Leave alternate screen and reset attributes
	if !bytes.Contains(term.Bytes(), []byte("\x1b[0m")) {
		t.Errorf("expected attribute reset on terminal, got %q", term.String())
	}
	if !bytes.Contains(out.Bytes(), []byte("early")) {
		t.Errorf("missing crash banner: %q", out.String())
	}
}

func TestGo_RecoversPanic(t *testing.T) {
	_, _ = captureCrash(t)
	done := make(chan int, 1)
	exit = func(c int) { done <- c }

	Go(func() { panic("worker") })

	if c := <-done; c != 1 {
		t.Errorf("expected exit code 1, got %d", c)
	}
}
