package input

import (
	"slices"
)

// Action is an editor command bound to a key
type Action uint8

const (
	ActionNone Action = iota
	ActionQuit
	ActionToggle
	ActionOut
	ActionIn
	ActionDown
	ActionUp
	ActionNext
	ActionPrev
	ActionInsert
	ActionInsertGroup
	ActionRename
	ActionDelete
	ActionSave
	ActionLoad
	ActionRoot
	ActionHelp
)

// KeyTable maps single codepoints to actions
type KeyTable struct {
	Runes map[rune]Action
}

// Binding is one key/action pair, used for help output
type Binding struct {
	Key    rune
	Action Action
}

// DefaultKeyTable returns the built-in bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Runes: map[rune]Action{
			'q': ActionQuit,
			' ': ActionToggle,

			// Plain moves
			'h': ActionOut,
			'l': ActionIn,
			'j': ActionDown,
			'k': ActionUp,

			// Compound moves over visible rows
			'J': ActionNext,
			'K': ActionPrev,

			// Edits
			'i': ActionInsert,
			'I': ActionInsertGroup,
			'r': ActionRename,
			'd': ActionDelete,

			// Files
			'w': ActionSave,
			'W': ActionLoad,

			'g': ActionRoot,
			'?': ActionHelp,
		},
	}
}

// Lookup returns the action bound to r, ActionNone if unbound
func (kt *KeyTable) Lookup(r rune) Action {
	if kt == nil {
		return ActionNone
	}
	return kt.Runes[r]
}

// Bindings returns all bindings ordered by action then key
func (kt *KeyTable) Bindings() []Binding {
	out := make([]Binding, 0, len(kt.Runes))
	for k, a := range kt.Runes {
		out = append(out, Binding{Key: k, Action: a})
	}
	slices.SortFunc(out, func(a, b Binding) int {
		if a.Action != b.Action {
			return int(a.Action) - int(b.Action)
		}
		return int(a.Key) - int(b.Key)
	})
	return out
}

// Clone returns a deep copy of the KeyTable with an independent map
func (kt *KeyTable) Clone() *KeyTable {
	c := make(map[rune]Action, len(kt.Runes))
	for k, v := range kt.Runes {
		c[k] = v
	}
	return &KeyTable{Runes: c}
}
