package editor

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/vi-todo/codec"
	"github.com/lixenwraith/vi-todo/input"
	"github.com/lixenwraith/vi-todo/store"
	"github.com/lixenwraith/vi-todo/todo"
)

// dispatch runs the action bound to r. done ends the loop; an error is fatal.
func (e *Editor) dispatch(r rune) (done bool, err error) {
	a := e.keys.Lookup(r)
	e.log.Debug().
		Str("key", input.KeyName(r)).
		Stringer("action", a).
		Stringer("sel", e.sel).
		Msg("key")

	e.status = status{}
	if a != input.ActionQuit {
		e.quitArmed = false
	}

	switch a {
	case input.ActionNone:
	case input.ActionQuit:
		return e.quit(), nil
	case input.ActionToggle:
		e.toggle()
	case input.ActionOut:
		e.move(todo.MoveOut)
	case input.ActionIn:
		e.move(todo.MoveIn)
	case input.ActionDown:
		e.move(todo.MoveDown)
	case input.ActionUp:
		e.move(todo.MoveUp)
	case input.ActionNext:
		e.step(e.root.NextVisible)
	case input.ActionPrev:
		e.step(e.root.PrevVisible)
	case input.ActionInsert:
		return false, e.insert(false)
	case input.ActionInsertGroup:
		return false, e.insert(true)
	case input.ActionRename:
		return false, e.rename()
	case input.ActionDelete:
		e.delete()
	case input.ActionSave:
		return false, e.save()
	case input.ActionLoad:
		return false, e.load()
	case input.ActionRoot:
		e.sel = e.sel[:0]
	case input.ActionHelp:
		e.help()
	}
	return false, nil
}

// pendingSave reports whether quitting should write the current file first
func (e *Editor) pendingSave() bool {
	return e.saveOnQuit && e.dirty && e.file != ""
}

// finish runs the save on quit for end of input, where no retry is possible
func (e *Editor) finish() error {
	if !e.pendingSave() {
		return nil
	}
	if err := e.store.Save(e.file, e.root); err != nil {
		e.log.Error().Err(err).Str("path", e.file).Msg("save on exit failed")
		return err
	}
	return nil
}

func (e *Editor) quit() bool {
	if !e.pendingSave() || e.quitArmed {
		return true
	}
	if err := e.store.Save(e.file, e.root); err != nil {
		e.log.Error().Err(err).Str("path", e.file).Msg("save on quit failed")
		e.quitArmed = true
		e.setError(err.Error() + "; quit again to discard")
		return false
	}
	e.dirty = false
	return true
}

// selected returns the addressed node, clamping a stale selection first
func (e *Editor) selected() *todo.Item {
	node, ok := e.root.Get(e.sel)
	if !ok {
		e.sel.Clamp(e.root)
		node, _ = e.root.Get(e.sel)
	}
	return node
}

func (e *Editor) toggle() {
	e.selected().Toggle()
	e.dirty = true
}

func (e *Editor) move(m todo.Move) {
	if !e.root.CheckMove(e.sel, m) {
		e.bell()
		return
	}
	e.sel.Do(m)
}

func (e *Editor) step(fn func(todo.Selection) (todo.Selection, bool)) {
	next, ok := fn(e.sel)
	if !ok {
		e.bell()
		return
	}
	e.sel = next
}

func (e *Editor) insert(group bool) error {
	what := "task"
	if group {
		what = "group"
	}
	label, ok, err := e.prompt("new "+what, "")
	if err != nil || !ok {
		return err
	}

	child := todo.NewTask(false, label)
	if group {
		child = todo.NewGroup(label)
	}
	if err := e.selected().Insert(child); err != nil {
		e.setError(err.Error())
		return nil
	}
	e.dirty = true
	e.setInfo(fmt.Sprintf("added %s %q", what, label))
	return nil
}

func (e *Editor) rename() error {
	node := e.selected()
	label, ok, err := e.prompt("rename", node.Label)
	if err != nil || !ok {
		return err
	}
	node.Label = label
	e.dirty = true
	return nil
}

func (e *Editor) delete() {
	if len(e.sel) == 0 {
		e.setError("cannot delete the root")
		return
	}
	label := e.selected().Label
	if !e.root.Delete(e.sel) {
		e.bell()
		return
	}
	e.sel.Clamp(e.root)
	e.dirty = true
	e.setInfo(fmt.Sprintf("deleted %q", label))
}

func (e *Editor) save() error {
	path, ok, err := e.prompt("save to", e.file)
	if err != nil || !ok || path == "" {
		return err
	}

	if err := e.store.Save(path, e.root); err != nil {
		e.log.Warn().Err(err).Str("path", path).Msg("save failed")
		e.setError(err.Error())
		return nil
	}
	e.file = path
	e.dirty = false
	done, total := e.root.Progress()
	e.setInfo(fmt.Sprintf("saved %s (%d/%d)", path, done, total))
	return nil
}

// load replaces the tree with a file's contents. A corrupt file is fatal;
// a missing file or bad label text keeps the current tree.
func (e *Editor) load() error {
	path, ok, err := e.prompt("load from", e.file)
	if err != nil || !ok || path == "" {
		return err
	}

	root, err := e.store.Load(path)
	switch {
	case err == nil:
	case codec.IsFatal(err):
		return err
	case store.IsNotExist(err):
		e.setError("no such file: " + path)
		return nil
	default:
		e.setError(err.Error())
		return nil
	}

	e.root = root
	e.sel = nil
	e.file = path
	e.dirty = false
	done, total := root.Progress()
	e.setInfo(fmt.Sprintf("loaded %s (%d/%d)", path, done, total))
	return nil
}

func (e *Editor) help() {
	bindings := e.keys.Bindings()
	parts := make([]string, 0, len(bindings))
	for _, bd := range bindings {
		if bd.Action == input.ActionNone {
			continue
		}
		parts = append(parts, input.KeyName(bd.Key)+" "+bd.Action.String())
	}
	e.setInfo(strings.Join(parts, "  "))
}
