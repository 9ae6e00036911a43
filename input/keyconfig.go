package input

import (
	"fmt"
	"strings"
)

// Rune aliases for keys that can't be bare single-char TOML keys
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
	"tab":       '\t',
}

// LoadKeyConfig turns a [keys] config table into a sparse override KeyTable
// Returns error on unknown action names or invalid key names
func LoadKeyConfig(section map[string]string) (*KeyTable, error) {
	kt := &KeyTable{Runes: make(map[rune]Action, len(section))}

	for keyStr, actionName := range section {
		r, err := resolveRune(keyStr)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}

		a, err := resolveAction(actionName)
		if err != nil {
			return nil, fmt.Errorf("[keys] key %q: %w", keyStr, err)
		}

		kt.Runes[r] = a
	}

	return kt, nil
}

// resolveRune converts a TOML key string to a rune
// Accepts single characters and named aliases
func resolveRune(s string) (rune, error) {
	// Named alias
	if r, ok := runeAliases[strings.ToLower(s)]; ok {
		return r, nil
	}

	// Single character
	runes := []rune(s)
	if len(runes) == 1 {
		return runes[0], nil
	}

	return 0, fmt.Errorf("invalid rune key: %q (expected single character or alias)", s)
}

func resolveAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	a, ok := ActionByName(name)
	if !ok {
		return ActionNone, fmt.Errorf("unknown action: %q", name)
	}
	return a, nil
}

// MergeKeyTable returns a new KeyTable with base values overridden by override
// Override entries bound to ActionNone ("none") delete the key from the result
func MergeKeyTable(base, override *KeyTable) *KeyTable {
	result := base.Clone()
	if override == nil {
		return result
	}
	for k, v := range override.Runes {
		if v == ActionNone {
			delete(result.Runes, k)
		} else {
			result.Runes[k] = v
		}
	}
	return result
}

// KeyName renders a bound rune for help output, reversing the aliases
func KeyName(r rune) string {
	for name, ar := range runeAliases {
		if ar == r {
			return name
		}
	}
	return string(r)
}
