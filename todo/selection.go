package todo

import (
	"fmt"
	"slices"
)

// Selection is the path of child indices from the root; empty addresses the root.
// A Selection is not tied to a tree and may go stale after a mutation.
type Selection []uint8

// Move is a single cursor transition
type Move uint8

const (
	MoveIn   Move = iota // first child
	MoveOut              // parent
	MoveDown             // next sibling
	MoveUp               // previous sibling
)

func (m Move) String() string {
	switch m {
	case MoveIn:
		return "in"
	case MoveOut:
		return "out"
	case MoveDown:
		return "down"
	case MoveUp:
		return "up"
	default:
		return fmt.Sprintf("move(%d)", uint8(m))
	}
}

// Do applies m without any bounds checking.
// Callers must have CheckMove(sel, m) == true against the current tree.
func (s *Selection) Do(m Move) {
	n := len(*s)
	switch m {
	case MoveIn:
		*s = append(*s, 0)
	case MoveOut:
		*s = (*s)[:n-1]
	case MoveDown:
		(*s)[n-1]++
	case MoveUp:
		(*s)[n-1]--
	}
}

// Clamp pops trailing indices until the selection addresses a node of root
func (s *Selection) Clamp(root *Item) {
	for !root.Bound(*s) {
		*s = (*s)[:len(*s)-1]
	}
}

// Clone returns an independent copy
func (s Selection) Clone() Selection {
	return append(Selection{}, s...)
}

// Equal compares paths
func (s Selection) Equal(o Selection) bool {
	return slices.Equal(s, o)
}

func (s Selection) String() string {
	return fmt.Sprint([]uint8(s))
}
