package graph

// NodeID is an index into a Graph's node arena.
type NodeID int

const NilID NodeID = -1

// Unbound marks a slot built outside any open binder scope. Such slots are
// never substituted; reduction carries them through untouched.
const Unbound = -1

type NodeKind string

const (
	EMPTY_NODE  NodeKind = "EMPTY"
	SYMBOL_NODE NodeKind = "SYMBOL"
	PAIR_NODE   NodeKind = "PAIR"
	BINDER_NODE NodeKind = "BINDER"
	SLOT_NODE   NodeKind = "SLOT"
)

// Node is a closed tagged variant. Pair owns exactly two children; the other
// four kinds are leaves. Binder and Slot reference binder ids, never arena
// indices, so cloning a subgraph is a plain arena copy plus an id remap.
type Node struct {
	Kind   NodeKind
	Name   string // SYMBOL only
	Left   NodeID // PAIR only
	Right  NodeID // PAIR only
	Binder int    // BINDER: own id; SLOT: id of the referenced binder
	Path   string // source position label, diagnostics only
}

// Graph is an ordered node arena (creation order) plus a root id. Nodes are
// only ever appended; superseded nodes become unreachable when the root is
// repointed after a reduction step.
type Graph struct {
	Nodes []Node
	Root  NodeID

	nextBinder int
}

func New() *Graph {
	return &Graph{Root: NilID}
}

func (g *Graph) Node(id NodeID) *Node {
	return &g.Nodes[id]
}

func (g *Graph) add(n Node) NodeID {
	g.Nodes = append(g.Nodes, n)
	return NodeID(len(g.Nodes) - 1)
}

func (g *Graph) AddEmpty(path string) NodeID {
	return g.add(Node{Kind: EMPTY_NODE, Left: NilID, Right: NilID, Path: path})
}

func (g *Graph) AddSymbol(name, path string) NodeID {
	return g.add(Node{Kind: SYMBOL_NODE, Name: name, Left: NilID, Right: NilID, Path: path})
}

func (g *Graph) AddPair(left, right NodeID, path string) NodeID {
	return g.add(Node{Kind: PAIR_NODE, Left: left, Right: right, Path: path})
}

func (g *Graph) AddBinder(id int, path string) NodeID {
	if id >= g.nextBinder {
		g.nextBinder = id + 1
	}
	return g.add(Node{Kind: BINDER_NODE, Left: NilID, Right: NilID, Binder: id, Path: path})
}

func (g *Graph) AddSlot(binderID int, path string) NodeID {
	return g.add(Node{Kind: SLOT_NODE, Left: NilID, Right: NilID, Binder: binderID, Path: path})
}

// FreshBinderID hands out a binder id no node of this graph uses yet.
func (g *Graph) FreshBinderID() int {
	id := g.nextBinder
	g.nextBinder++
	return id
}
