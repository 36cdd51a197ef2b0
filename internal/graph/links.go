package graph

// LinkKind distinguishes the two derived edge families.
type LinkKind string

const (
	BINDING_LINK LinkKind = "BINDING" // slot -> the binder it waits on
	BODY_LINK    LinkKind = "BODY"    // binder -> the body of its binding pair
)

// Link is a derived edge between two live nodes. Links are recomputed on
// demand and never stored on the graph itself.
type Link struct {
	Kind   LinkKind
	Source NodeID
	Target NodeID
}

// Reachable returns the ids of all nodes reachable from root, in arena order.
func (g *Graph) Reachable(root NodeID) []NodeID {
	seen := make(map[NodeID]bool)
	g.walk(root, seen)
	ids := make([]NodeID, 0, len(seen))
	for id := range g.Nodes {
		if seen[NodeID(id)] {
			ids = append(ids, NodeID(id))
		}
	}
	return ids
}

func (g *Graph) walk(id NodeID, seen map[NodeID]bool) {
	if seen[id] {
		return
	}
	seen[id] = true
	n := g.Node(id)
	if n.Kind == PAIR_NODE {
		g.walk(n.Left, seen)
		g.walk(n.Right, seen)
	}
}

// Links derives the edge view of the subgraph under root: one BINDING link
// per slot that can still name a live binder, and one BODY link per binding
// pair. Aliased binders (several Binder nodes carrying one id) each attract
// the slot's link; the visualizer uses that to show shared positions.
func (g *Graph) Links(root NodeID) []Link {
	ids := g.Reachable(root)

	binders := make(map[int][]NodeID)
	for _, id := range ids {
		if n := g.Node(id); n.Kind == BINDER_NODE {
			binders[n.Binder] = append(binders[n.Binder], id)
		}
	}

	var links []Link
	for _, id := range ids {
		n := g.Node(id)
		switch n.Kind {
		case SLOT_NODE:
			for _, target := range binders[n.Binder] {
				links = append(links, Link{Kind: BINDING_LINK, Source: id, Target: target})
			}
		case PAIR_NODE:
			if g.Node(n.Left).Kind == BINDER_NODE {
				links = append(links, Link{Kind: BODY_LINK, Source: n.Left, Target: n.Right})
			}
		}
	}
	return links
}
