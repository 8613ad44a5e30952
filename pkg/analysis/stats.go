// Package analysis computes layout-tree statistics and graph-backed
// topology verification. It treats the tree as a directed graph from each
// split to its children, which lets the consistency checks lean on gonum
// instead of ad-hoc traversal bookkeeping.
package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/panedock/pkg/model"
)

// Stats summarizes the shape of a layout tree.
type Stats struct {
	NodeCount  int
	PanelCount int
	SplitCount int
	Depth      int

	// Leaf depth distribution; a high stddev means a lopsided layout.
	MeanPanelDepth   float64
	PanelDepthStdDev float64
}

// TreeStats walks the tree and computes shape statistics. An empty tree
// yields the zero Stats.
func TreeStats(root model.Node) Stats {
	var stats Stats
	var depths []float64

	var walk func(node model.Node, depth int)
	walk = func(node model.Node, depth int) {
		if node == nil {
			return
		}
		stats.NodeCount++
		if depth > stats.Depth {
			stats.Depth = depth
		}
		switch n := node.(type) {
		case *model.Panel:
			stats.PanelCount++
			depths = append(depths, float64(depth))
		case *model.Split:
			stats.SplitCount++
			walk(n.First(), depth+1)
			walk(n.Second(), depth+1)
		}
	}
	walk(root, 1)

	if len(depths) > 0 {
		stats.MeanPanelDepth = stat.Mean(depths, nil)
		if len(depths) > 1 {
			stats.PanelDepthStdDev = stat.StdDev(depths, nil)
		}
	}
	return stats
}

// VerifyTopology rebuilds the tree as a gonum directed graph and checks
// that it really is a binary tree: every split has exactly two children,
// every node is reached through exactly one parent edge, the structure is
// acyclic, and each child's parent back-reference matches the split it
// hangs under. A nil root is trivially consistent.
func VerifyTopology(root model.Node) error {
	if root == nil {
		return nil
	}

	g := simple.NewDirectedGraph()
	ids := make(map[model.Node]int64)
	next := int64(0)

	nodeID := func(n model.Node) (int64, bool) {
		if id, ok := ids[n]; ok {
			return id, false
		}
		ids[n] = next
		g.AddNode(simple.Node(next))
		next++
		return ids[n], true
	}

	var errs []error
	var build func(node model.Node)
	build = func(node model.Node) {
		from, _ := nodeID(node)
		split, ok := node.(*model.Split)
		if !ok {
			return
		}
		children := 0
		for _, child := range []model.Node{split.First(), split.Second()} {
			if child == nil {
				continue
			}
			children++
			if child.Parent() != split {
				errs = append(errs, fmt.Errorf("node %q parent reference does not point at %q", child.NodeID(), split.NodeID()))
			}
			to, fresh := nodeID(child)
			if from != to {
				g.SetEdge(g.NewEdge(simple.Node(from), simple.Node(to)))
			}
			// Revisited node: the edge makes the anomaly visible to the
			// in-degree check below, but recursing would never terminate.
			if fresh {
				build(child)
			}
		}
		if children != 2 {
			errs = append(errs, fmt.Errorf("split %q has %d children, want 2", split.NodeID(), children))
		}
	}
	build(root)

	if _, err := topo.Sort(g); err != nil {
		errs = append(errs, fmt.Errorf("layout graph is cyclic: %v", err))
	}

	roots := 0
	for node, id := range ids {
		indegree := g.To(id).Len()
		if indegree == 0 {
			roots++
		} else if indegree > 1 {
			errs = append(errs, fmt.Errorf("node %q is attached %d times", node.NodeID(), indegree))
		}
	}
	if roots != 1 {
		errs = append(errs, fmt.Errorf("layout graph has %d roots, want 1", roots))
	}

	if len(errs) > 0 {
		return fmt.Errorf("topology verification failed: %w", errors.Join(errs...))
	}
	return nil
}
