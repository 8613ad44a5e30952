// Package dock implements the split-tree mutation engine: a Manager that
// exclusively owns the layout tree, a panel registry for O(1) lookup, the
// insert and remove-with-promotion algorithms, and the versioned layout
// codec. All operations are synchronous and single-mutator; the only
// concurrency hazard handled here is reentrant removal of the same panel
// from nested event delivery.
package dock

import (
	"fmt"
	"strings"

	"github.com/vanderheijden86/panedock/pkg/model"
)

// Manager owns the layout tree root and the panel registry. The zero value
// is not usable; construct with NewManager.
type Manager struct {
	root   model.Node
	panels map[string]*model.Panel

	// removing guards each panel id against overlapping removal triggered
	// by nested event delivery.
	removing map[string]struct{}

	minPanelSize float64
	nodeSeq      int
}

// NewManager returns an empty manager with the default minimum panel size.
func NewManager() *Manager {
	return &Manager{
		panels:       make(map[string]*model.Panel),
		removing:     make(map[string]struct{}),
		minPanelSize: model.DefaultMinSize,
	}
}

// Root returns the tree root, or nil for an empty layout. The manager
// retains ownership; callers must not restructure the tree directly.
func (m *Manager) Root() model.Node { return m.root }

// PanelCount returns the number of registered panels.
func (m *Manager) PanelCount() int { return len(m.panels) }

// MinPanelSize returns the default minimum size applied to new nodes.
func (m *Manager) MinPanelSize() float64 { return m.minPanelSize }

// SetMinPanelSize clamps and stores the default minimum size for new nodes.
func (m *Manager) SetMinPanelSize(size float64) {
	m.minPanelSize = model.ClampMinSize(size)
}

// FindPanel resolves a panel id through the registry in O(1).
func (m *Manager) FindPanel(id string) *model.Panel { return m.panels[id] }

// FindNode locates any node (panel or split) by id with a depth-first walk.
func (m *Manager) FindNode(id string) model.Node {
	if id == "" {
		return nil
	}
	return findNode(m.root, id)
}

func findNode(node model.Node, id string) model.Node {
	if node == nil {
		return nil
	}
	if node.NodeID() == id {
		return node
	}
	if split, ok := node.(*model.Split); ok {
		if found := findNode(split.First(), id); found != nil {
			return found
		}
		return findNode(split.Second(), id)
	}
	return nil
}

// rightmostPanel descends preferring second children to find the default
// insert target. This is a heuristic: after tree rotations the result is not
// guaranteed to be the visually rightmost panel.
func rightmostPanel(node model.Node) model.Node {
	for {
		split, ok := node.(*model.Split)
		if !ok {
			return node
		}
		switch {
		case split.Second() != nil:
			node = split.Second()
		case split.First() != nil:
			node = split.First()
		default:
			return nil
		}
	}
}

// Panels returns all registered panels in document (depth-first) order.
func (m *Manager) Panels() []*model.Panel {
	var panels []*model.Panel
	collectPanels(m.root, &panels)
	return panels
}

func collectPanels(node model.Node, out *[]*model.Panel) {
	switch n := node.(type) {
	case *model.Panel:
		*out = append(*out, n)
	case *model.Split:
		collectPanels(n.First(), out)
		collectPanels(n.Second(), out)
	}
}

// Clear discards the whole tree and registry.
func (m *Manager) Clear() []Event {
	m.root = nil
	m.panels = make(map[string]*model.Panel)
	return treeReplacedEvents()
}

// nextNodeID generates an identifier for an engine-created split node.
func (m *Manager) nextNodeID() string {
	m.nodeSeq++
	return fmt.Sprintf("node_%d", m.nodeSeq)
}

// DumpTree renders the tree as an indented text sketch for debugging.
func (m *Manager) DumpTree() string {
	if m.root == nil {
		return "Empty tree"
	}
	var sb strings.Builder
	dumpNode(&sb, m.root, 0)
	return sb.String()
}

func dumpNode(sb *strings.Builder, node model.Node, indent int) {
	if node == nil {
		return
	}
	prefix := strings.Repeat("  ", indent)
	switch n := node.(type) {
	case *model.Panel:
		fmt.Fprintf(sb, "%sPanel[%s]: %s\n", prefix, n.NodeID(), n.Title())
	case *model.Split:
		axis := "V"
		if n.Orientation() == model.Horizontal {
			axis = "H"
		}
		fmt.Fprintf(sb, "%sSplit[%s] %s (%.2f)\n", prefix, n.NodeID(), axis, n.Ratio())
		dumpNode(sb, n.First(), indent+1)
		dumpNode(sb, n.Second(), indent+1)
	}
}
