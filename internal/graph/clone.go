package graph

// CloneInto copies the subgraph of src reachable from root into dst and
// returns the id of the copied root.
//
// When renumber is true, every binder id whose Binder node occurs inside the
// copied subgraph is remapped to a fresh id of dst, consistently across all
// Binder and Slot nodes of the copy. Slots bound outside the subgraph keep
// their ids, so positions waiting on an enclosing binder stay claimable.
// When renumber is false the copy preserves ids verbatim; definition loading
// relies on this to alias a spliced graph's binders with the host's.
func CloneInto(dst *Graph, src *Graph, root NodeID, renumber bool) NodeID {
	var remap map[int]int
	if renumber {
		remap = make(map[int]int)
		collectBinderIDs(src, root, dst, remap)
	}
	return copyTree(dst, src, root, remap)
}

func collectBinderIDs(src *Graph, id NodeID, dst *Graph, remap map[int]int) {
	n := src.Nodes[id]
	switch n.Kind {
	case BINDER_NODE:
		if _, seen := remap[n.Binder]; !seen {
			remap[n.Binder] = dst.FreshBinderID()
		}
	case PAIR_NODE:
		collectBinderIDs(src, n.Left, dst, remap)
		collectBinderIDs(src, n.Right, dst, remap)
	}
}

// copyTree reads nodes by value: dst and src may be the same arena, and an
// append can reallocate the backing slice mid-copy.
func copyTree(dst *Graph, src *Graph, id NodeID, remap map[int]int) NodeID {
	n := src.Nodes[id]
	switch n.Kind {
	case EMPTY_NODE:
		return dst.AddEmpty(n.Path)
	case SYMBOL_NODE:
		return dst.AddSymbol(n.Name, n.Path)
	case PAIR_NODE:
		left := copyTree(dst, src, n.Left, remap)
		right := copyTree(dst, src, n.Right, remap)
		return dst.AddPair(left, right, n.Path)
	case BINDER_NODE:
		b := n.Binder
		if mapped, ok := remap[b]; ok {
			b = mapped
		}
		return dst.AddBinder(b, n.Path)
	case SLOT_NODE:
		b := n.Binder
		if mapped, ok := remap[b]; ok {
			b = mapped
		}
		return dst.AddSlot(b, n.Path)
	}
	panic("graph: unknown node kind " + string(n.Kind))
}
