package todo

import (
	"io"
	"strings"

	"github.com/lixenwraith/vi-todo/terminal"
)

const (
	markDone    = "[#] "
	markPending = "[ ] "
)

// Lines renders the subtree depth-first, one line per node, indented by one
// tab per level starting at depth. The node sel addresses is wrapped in
// reverse video; a nil sel highlights nothing.
func (it *Item) Lines(depth int, sel *Selection) []string {
	var lines []string
	var path Selection
	if sel != nil {
		path = *sel
	}
	it.lines(&lines, depth, path, sel != nil)
	return lines
}

func (it *Item) lines(out *[]string, depth int, path Selection, active bool) {
	selected := active && len(path) == 0

	var b strings.Builder
	b.Grow(depth + len(markDone) + len(it.Label) + len(terminal.SeqReverse) + len(terminal.SeqReset))
	if selected {
		b.WriteString(terminal.SeqReverse)
	}
	for range depth {
		b.WriteByte('\t')
	}
	if it.Completed() {
		b.WriteString(markDone)
	} else {
		b.WriteString(markPending)
	}
	b.WriteString(it.Label)
	if selected {
		b.WriteString(terminal.SeqReset)
	}
	*out = append(*out, b.String())

	if it.Kind != KindGroup {
		return
	}
	for i, c := range it.Children {
		// Only the child on the path inherits the remaining suffix
		if active && !selected && int(path[0]) == i {
			c.lines(out, depth+1, path[1:], true)
		} else {
			c.lines(out, depth+1, nil, false)
		}
	}
}

// Render writes Lines to w, each terminated with CRLF so output stays aligned
// when the terminal's output post-processing is off
func (it *Item) Render(w io.Writer, depth int, sel *Selection) error {
	for _, line := range it.Lines(depth, sel) {
		if _, err := io.WriteString(w, line+"\r\n"); err != nil {
			return err
		}
	}
	return nil
}
