package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/skeinlang/skein/internal/graph"
	"github.com/skeinlang/skein/internal/reducer"
)

// NodeJSON mirrors one arena node for the visualizer. Child and binder
// fields use -1 for "none".
type NodeJSON struct {
	ID     int    `json:"id"`
	Kind   string `json:"kind"`
	Name   string `json:"name,omitempty"`
	Left   int    `json:"left"`
	Right  int    `json:"right"`
	Binder int    `json:"binder"`
	Path   string `json:"path,omitempty"`
}

type LinkJSON struct {
	Kind   string `json:"kind"`
	Source int    `json:"source"`
	Target int    `json:"target"`
}

// Snapshot is an immutable record of the graph after one apply+collapse
// cycle. AnchorKey and AliasKey are hints for the visualizer: the consumed
// binder id, and the arena positions that shared it.
type Snapshot struct {
	Nodes     []NodeJSON `json:"nodes"`
	Links     []LinkJSON `json:"links"`
	Root      int        `json:"root"`
	AnchorKey string     `json:"anchorKey,omitempty"`
	AliasKey  string     `json:"aliasKey,omitempty"`
}

// Recorder accumulates an append-only, replayable snapshot sequence for one
// expression. It implements reducer.Tracer.
type Recorder struct {
	RunID     string
	Snapshots []Snapshot
}

func NewRecorder() *Recorder {
	return &Recorder{RunID: uuid.NewString()}
}

func (r *Recorder) Snapshot(g *graph.Graph, focus graph.NodeID, step reducer.Step) {
	snap := Snapshot{
		Nodes: make([]NodeJSON, len(g.Nodes)),
		Links: []LinkJSON{},
		Root:  int(focus),
	}
	for i, n := range g.Nodes {
		snap.Nodes[i] = NodeJSON{
			ID:     i,
			Kind:   string(n.Kind),
			Name:   n.Name,
			Left:   int(n.Left),
			Right:  int(n.Right),
			Binder: n.Binder,
			Path:   n.Path,
		}
		if n.Kind != graph.BINDER_NODE && n.Kind != graph.SLOT_NODE {
			snap.Nodes[i].Binder = graph.Unbound
		}
	}
	for _, link := range g.Links(focus) {
		snap.Links = append(snap.Links, LinkJSON{
			Kind:   string(link.Kind),
			Source: int(link.Source),
			Target: int(link.Target),
		})
	}
	if step.Binder != graph.Unbound {
		snap.AnchorKey = fmt.Sprintf("b%d", step.Binder)
		ids := make([]string, len(step.Anchors))
		for i, id := range step.Anchors {
			ids[i] = fmt.Sprintf("%d", int(id))
		}
		snap.AliasKey = strings.Join(ids, ",")
	}
	r.Snapshots = append(r.Snapshots, snap)
}

// Entry pairs one source expression with its recorded snapshot sequence.
type Entry struct {
	Expression string     `json:"expression"`
	RunID      string     `json:"runId"`
	Snapshots  []Snapshot `json:"snapshots"`
}

// Write exports entries as a JSON array.
func Write(w io.Writer, entries []Entry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(entries)
}

// WriteFile exports entries to path.
func WriteFile(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
