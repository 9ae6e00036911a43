package editor

import (
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	keyEscape    = 0x1b
	keyBackspace = 0x7f
	keyCtrlH     = 0x08
)

// prompt edits a line of text on the status line, starting from initial.
// ok is false when cancelled with Escape. End of input is returned as an
// error wrapping io.EOF. The accepted text is NFC-normalized.
func (e *Editor) prompt(label, initial string) (text string, ok bool, err error) {
	buf := []rune(initial)
	for {
		e.status = status{text: label + ": " + string(buf), kind: statusPrompt}
		if err := e.draw(); err != nil {
			return "", false, fmt.Errorf("draw: %w", err)
		}

		r, got, err := e.console.ReadKey()
		if err != nil {
			e.status = status{}
			return "", false, fmt.Errorf("read: %w", err)
		}
		if !got {
			continue
		}

		switch r {
		case '\r', '\n':
			e.status = status{}
			return norm.NFC.String(string(buf)), true, nil
		case keyEscape:
			e.setInfo("cancelled")
			return "", false, nil
		case keyBackspace, keyCtrlH:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		default:
			if unicode.IsPrint(r) {
				buf = append(buf, r)
			}
		}
	}
}
