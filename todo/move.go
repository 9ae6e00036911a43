package todo

// CheckMove reports whether m is feasible from sel in this tree
func (it *Item) CheckMove(sel Selection, m Move) bool {
	switch m {
	case MoveIn:
		node, ok := it.Get(sel)
		return ok && node.IsGroup()
	case MoveOut:
		_, ok := it.GetPrior(sel)
		return ok
	case MoveDown:
		parent, ok := it.GetPrior(sel)
		if !ok || !parent.IsGroup() {
			return false
		}
		return int(sel[len(sel)-1])+1 < len(parent.Children)
	case MoveUp:
		if _, ok := it.GetPrior(sel); !ok {
			return false
		}
		return sel[len(sel)-1] > 0
	}
	return false
}

// canDescend is MoveIn restricted to groups with a visible first child
func (it *Item) canDescend(sel Selection) bool {
	node, ok := it.Get(sel)
	return ok && node.IsGroup() && len(node.Children) > 0
}

// NextVisible returns the node rendered after sel in pre-order: the first
// child, else the next sibling, else the next sibling of the nearest ancestor
// that has one. ok is false when sel is already the last rendered node.
func (it *Item) NextVisible(sel Selection) (Selection, bool) {
	next := sel.Clone()
	if it.canDescend(next) {
		next.Do(MoveIn)
		return next, true
	}
	for {
		if it.CheckMove(next, MoveDown) {
			next.Do(MoveDown)
			return next, true
		}
		if !it.CheckMove(next, MoveOut) {
			return sel, false
		}
		next.Do(MoveOut)
	}
}

// PrevVisible returns the node rendered before sel in pre-order: the deepest
// last descendant of the previous sibling, else the parent.
func (it *Item) PrevVisible(sel Selection) (Selection, bool) {
	prev := sel.Clone()
	if it.CheckMove(prev, MoveUp) {
		prev.Do(MoveUp)
		for it.canDescend(prev) {
			prev.Do(MoveIn)
			for it.CheckMove(prev, MoveDown) {
				prev.Do(MoveDown)
			}
		}
		return prev, true
	}
	if it.CheckMove(prev, MoveOut) {
		prev.Do(MoveOut)
		return prev, true
	}
	return sel, false
}
