package todo

import (
	"errors"
	"slices"
)

// Kind discriminates the two node variants
type Kind uint8

const (
	KindTask Kind = iota
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindTask:
		return "task"
	case KindGroup:
		return "group"
	default:
		return "unknown"
	}
}

// MaxChildren bounds a group's size so every index fits a Selection element
// and every group fits the one-byte count of the persistence format
const MaxChildren = 255

var ErrGroupFull = errors.New("group is full")

// Item is a checklist node.
// A task carries Done and never has children. A group has no flag of its own;
// its completion is derived from its descendants on every call.
type Item struct {
	Kind     Kind
	Done     bool // tasks only
	Label    string
	Children []*Item // groups only
}

// NewTask creates a leaf
func NewTask(done bool, label string) *Item {
	return &Item{Kind: KindTask, Done: done, Label: label}
}

// NewGroup creates a group owning children in order
func NewGroup(label string, children ...*Item) *Item {
	return &Item{Kind: KindGroup, Label: label, Children: children}
}

// IsGroup reports whether the node can hold children
func (it *Item) IsGroup() bool {
	return it.Kind == KindGroup
}

// Completed is the task flag, or for a group the AND over its children
// (true for an empty group). Recomputed on demand, never cached.
func (it *Item) Completed() bool {
	if it.Kind == KindTask {
		return it.Done
	}
	for _, c := range it.Children {
		if !c.Completed() {
			return false
		}
	}
	return true
}

// Complete sets a task's flag, or every descendant task's flag for a group
func (it *Item) Complete(v bool) {
	if it.Kind == KindTask {
		it.Done = v
		return
	}
	for _, c := range it.Children {
		c.Complete(v)
	}
}

// Toggle flips completion based on the current derived state
func (it *Item) Toggle() {
	it.Complete(!it.Completed())
}

// Insert appends child as the last child.
// Inserting under a task promotes it in place to a group that keeps the
// task's label; the task's completion flag is discarded.
func (it *Item) Insert(child *Item) error {
	if it.Kind == KindTask {
		it.Kind = KindGroup
		it.Done = false
		it.Children = []*Item{child}
		return nil
	}
	if len(it.Children) >= MaxChildren {
		return ErrGroupFull
	}
	it.Children = append(it.Children, child)
	return nil
}

// Get resolves sel from this node. The empty selection is the node itself.
// Not found when the path runs through a task or an index is out of range.
func (it *Item) Get(sel Selection) (*Item, bool) {
	return it.walk(sel)
}

// GetPrior resolves the parent of the node sel addresses.
// The empty selection has no parent.
func (it *Item) GetPrior(sel Selection) (*Item, bool) {
	if len(sel) == 0 {
		return nil, false
	}
	return it.walk(sel[:len(sel)-1])
}

func (it *Item) walk(path Selection) (*Item, bool) {
	cur := it
	for _, i := range path {
		if cur.Kind == KindTask || int(i) >= len(cur.Children) {
			return nil, false
		}
		cur = cur.Children[i]
	}
	return cur, true
}

// Bound reports whether sel addresses a node in this tree
func (it *Item) Bound(sel Selection) bool {
	_, ok := it.Get(sel)
	return ok
}

// Delete removes the node sel addresses from its parent.
// Later siblings shift down by one; callers re-validate held selections.
func (it *Item) Delete(sel Selection) bool {
	parent, ok := it.GetPrior(sel)
	if !ok || parent.Kind != KindGroup {
		return false
	}
	idx := int(sel[len(sel)-1])
	if idx >= len(parent.Children) {
		return false
	}
	parent.Children = slices.Delete(parent.Children, idx, idx+1)
	return true
}

// Progress counts completed and total tasks under this node
func (it *Item) Progress() (done, total int) {
	if it.Kind == KindTask {
		if it.Done {
			return 1, 1
		}
		return 0, 1
	}
	for _, c := range it.Children {
		d, t := c.Progress()
		done += d
		total += t
	}
	return done, total
}

// Clone deep-copies the subtree
func (it *Item) Clone() *Item {
	c := &Item{Kind: it.Kind, Done: it.Done, Label: it.Label}
	if it.Children != nil {
		c.Children = make([]*Item, len(it.Children))
		for i, ch := range it.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

// Equal compares structure and values; a nil and an empty child list are equal
func (it *Item) Equal(o *Item) bool {
	if it == nil || o == nil {
		return it == o
	}
	if it.Kind != o.Kind || it.Label != o.Label || len(it.Children) != len(o.Children) {
		return false
	}
	if it.Kind == KindTask && it.Done != o.Done {
		return false
	}
	for i := range it.Children {
		if !it.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}
