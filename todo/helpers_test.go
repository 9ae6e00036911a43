package todo

import (
	"fmt"
	"math/rand"
)

// exampleTree is Group("root", [Group("a", [Task(false, "a1")]), Task(false, "b")])
func exampleTree() *Item {
	return NewGroup("root",
		NewGroup("a", NewTask(false, "a1")),
		NewTask(false, "b"),
	)
}

// randomTree builds a tree of bounded depth and fan-out, including empty groups
func randomTree(rng *rand.Rand, depth int) *Item {
	if depth == 0 || rng.Intn(3) == 0 {
		return NewTask(rng.Intn(2) == 0, fmt.Sprintf("t%d", rng.Intn(1000)))
	}
	g := NewGroup(fmt.Sprintf("g%d", rng.Intn(1000)))
	for range rng.Intn(4) {
		g.Children = append(g.Children, randomTree(rng, depth-1))
	}
	return g
}

// randomSelection may or may not be in bounds
func randomSelection(rng *rand.Rand) Selection {
	sel := make(Selection, rng.Intn(4))
	for i := range sel {
		sel[i] = uint8(rng.Intn(4))
	}
	return sel
}

// allSelections lists every in-bounds path in pre-order
func allSelections(root *Item) []Selection {
	var out []Selection
	var visit func(it *Item, path Selection)
	visit = func(it *Item, path Selection) {
		out = append(out, path.Clone())
		for i, c := range it.Children {
			visit(c, append(path.Clone(), uint8(i)))
		}
	}
	visit(root, Selection{})
	return out
}
