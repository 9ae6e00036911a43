package editor

import (
	"fmt"
	"path/filepath"

	"github.com/mattn/go-runewidth"
)

type statusKind uint8

const (
	statusInfo statusKind = iota
	statusError
	statusPrompt
)

type status struct {
	text string
	kind statusKind
}

func (e *Editor) setInfo(msg string) {
	e.status = status{text: msg, kind: statusInfo}
}

func (e *Editor) setError(msg string) {
	e.status = status{text: msg, kind: statusError}
}

// header is the fixed left part of the status line: file, dirty mark, progress
func (e *Editor) header() string {
	name := "[no file]"
	if e.file != "" {
		name = filepath.Base(e.file)
	}
	if e.dirty {
		name += " +"
	}
	done, total := e.root.Progress()
	return fmt.Sprintf("%s %d/%d", name, done, total)
}

// statusLine renders the header and message fitted to the terminal width
func (e *Editor) statusLine() string {
	width := e.width()
	if width <= 0 {
		width = 80
	}

	head := e.header()
	if runewidth.StringWidth(head) >= width {
		return e.profile.String(runewidth.Truncate(head, width, "…")).Bold().String()
	}
	line := e.profile.String(head).Bold().String()

	if e.status.text == "" {
		return line
	}
	room := width - runewidth.StringWidth(head) - 1
	msg := e.profile.String(runewidth.Truncate(e.status.text, room, "…"))
	switch e.status.kind {
	case statusError:
		msg = msg.Reverse()
	case statusInfo:
		msg = msg.Faint()
	}
	return line + " " + msg.String()
}
