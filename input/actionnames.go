package input

// actionRegistry maps canonical action names to actions
// Used by the keymap loader to resolve config action strings
var actionRegistry = map[string]Action{
	// Unbind sentinel
	"none": ActionNone,

	"quit":   ActionQuit,
	"toggle": ActionToggle,

	"out":  ActionOut,
	"in":   ActionIn,
	"down": ActionDown,
	"up":   ActionUp,
	"next": ActionNext,
	"prev": ActionPrev,

	"insert":       ActionInsert,
	"insert_group": ActionInsertGroup,
	"rename":       ActionRename,
	"delete":       ActionDelete,

	"save": ActionSave,
	"load": ActionLoad,
	"root": ActionRoot,
	"help": ActionHelp,
}

var actionNames = func() map[Action]string {
	m := make(map[Action]string, len(actionRegistry))
	for name, a := range actionRegistry {
		m[a] = name
	}
	return m
}()

// ActionByName returns the action for a canonical name
func ActionByName(name string) (Action, bool) {
	a, ok := actionRegistry[name]
	return a, ok
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}
