// Package editor runs the interactive checklist loop: draw the tree and a
// status line, read one codepoint, dispatch the bound action, repeat.
package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/vi-todo/input"
	"github.com/lixenwraith/vi-todo/store"
	"github.com/lixenwraith/vi-todo/terminal"
	"github.com/lixenwraith/vi-todo/todo"
)

// Console is the terminal surface the editor draws on and reads keys from.
// *terminal.Session satisfies it.
type Console interface {
	io.Writer
	ReadKey() (rune, bool, error)
}

// Option configures an Editor
type Option func(*Editor)

// WithLogger sets the logger, zerolog.Nop() by default
func WithLogger(log zerolog.Logger) Option {
	return func(e *Editor) { e.log = log }
}

// WithKeyTable sets the key bindings, input.DefaultKeyTable() by default
func WithKeyTable(kt *input.KeyTable) Option {
	return func(e *Editor) { e.keys = kt }
}

// WithStore sets the persistence layer used by save/load
func WithStore(s *store.Store) Option {
	return func(e *Editor) { e.store = s }
}

// WithFile sets the current file offered by save/load prompts and saved on quit
func WithFile(path string) Option {
	return func(e *Editor) { e.file = path }
}

// WithDepth sets the indentation depth of the root line
func WithDepth(depth int) Option {
	return func(e *Editor) { e.depth = depth }
}

// WithSaveOnQuit saves to the current file on quit when there are unsaved changes
func WithSaveOnQuit(v bool) Option {
	return func(e *Editor) { e.saveOnQuit = v }
}

// WithWidth sets the provider for the status line width in cells
func WithWidth(fn func() int) Option {
	return func(e *Editor) { e.width = fn }
}

// WithProfile sets the color profile used for status line styling
func WithProfile(p termenv.Profile) Option {
	return func(e *Editor) { e.profile = p }
}

// Editor owns the tree and selection for one interactive session
type Editor struct {
	console Console
	root    *todo.Item
	sel     todo.Selection

	keys       *input.KeyTable
	store      *store.Store
	log        zerolog.Logger
	file       string
	depth      int
	saveOnQuit bool
	width      func() int
	profile    termenv.Profile

	status    status
	dirty     bool
	quitArmed bool // a save on quit failed, next quit skips it
}

// New creates an editor over root with the root selected
func New(console Console, root *todo.Item, opts ...Option) *Editor {
	e := &Editor{
		console: console,
		root:    root,
		keys:    input.DefaultKeyTable(),
		log:     zerolog.Nop(),
		width:   func() int { return 80 },
		profile: termenv.ANSI,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.store == nil {
		e.store = store.New(e.log)
	}
	return e
}

// Root returns the tree being edited
func (e *Editor) Root() *todo.Item { return e.root }

// Selection returns a copy of the current selection
func (e *Editor) Selection() todo.Selection { return e.sel.Clone() }

// File returns the current file path, empty when none
func (e *Editor) File() string { return e.file }

// Dirty reports unsaved changes
func (e *Editor) Dirty() bool { return e.dirty }

// Status returns the current status message
func (e *Editor) Status() string { return e.status.text }

// Run draws and dispatches until quit or end of input.
// A returned error is fatal: malformed input, a corrupt file, or a failed write.
func (e *Editor) Run() error {
	e.log.Info().Str("file", e.file).Msg("editor started")
	for {
		if err := e.draw(); err != nil {
			return fmt.Errorf("draw: %w", err)
		}

		r, ok, err := e.console.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return e.endOfInput()
			}
			if errors.Is(err, terminal.ErrMalformedUTF8) {
				e.log.Error().Err(err).Msg("malformed input")
			}
			return fmt.Errorf("read: %w", err)
		}
		if !ok {
			// stray continuation or invalid lead byte
			continue
		}

		done, err := e.dispatch(r)
		if errors.Is(err, io.EOF) {
			return e.endOfInput()
		}
		if err != nil {
			return err
		}
		if done {
			e.log.Info().Str("file", e.file).Msg("editor stopped")
			return nil
		}
	}
}

func (e *Editor) endOfInput() error {
	e.log.Info().Msg("end of input")
	return e.finish()
}

// draw clears the screen and paints the tree followed by the status line
func (e *Editor) draw() error {
	if _, err := io.WriteString(e.console, terminal.SeqClear); err != nil {
		return err
	}
	if err := e.root.Render(e.console, e.depth, &e.sel); err != nil {
		return err
	}
	_, err := io.WriteString(e.console, e.statusLine())
	return err
}

func (e *Editor) bell() {
	io.WriteString(e.console, terminal.SeqBell)
}
