package dock

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/vanderheijden86/panedock/pkg/model"
)

// SaveLayout snapshots the tree as a versioned document.
func (m *Manager) SaveLayout() *model.Layout {
	layout := &model.Layout{
		Version:      model.LayoutVersion,
		MinPanelSize: m.minPanelSize,
	}
	if m.root != nil {
		layout.Root = m.root.Document()
	}
	return layout
}

// LoadLayout replaces the tree with the one described by the document. The
// new tree and registry are staged aside and swapped in only once the whole
// document has reconstructed cleanly, so any failure leaves the current
// tree untouched.
func (m *Manager) LoadLayout(layout *model.Layout) ([]Event, error) {
	if layout == nil {
		return nil, fmt.Errorf("%w: empty layout document", ErrInvalidArgument)
	}
	if layout.Version != model.LayoutVersion {
		return nil, fmt.Errorf("%w: got %q, want %q", ErrVersionMismatch, layout.Version, model.LayoutVersion)
	}

	minSize := m.minPanelSize
	if layout.MinPanelSize != 0 {
		minSize = model.ClampMinSize(layout.MinPanelSize)
	}

	root, err := model.NodeFromDocument(layout.Root, minSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	panels := make(map[string]*model.Panel)
	seq := 0
	if err := indexNodes(root, panels, &seq); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	m.root = root
	m.panels = panels
	m.minPanelSize = minSize
	if seq > m.nodeSeq {
		m.nodeSeq = seq
	}
	return treeReplacedEvents(), nil
}

var generatedNodeID = regexp.MustCompile(`^node_(\d+)$`)

// indexNodes registers every panel of a freshly loaded tree, rejects
// duplicate identifiers, and tracks the highest generated split id so later
// inserts cannot collide with loaded ones.
func indexNodes(node model.Node, panels map[string]*model.Panel, seq *int) error {
	if node == nil {
		return nil
	}
	if match := generatedNodeID.FindStringSubmatch(node.NodeID()); match != nil {
		if n, err := strconv.Atoi(match[1]); err == nil && n > *seq {
			*seq = n
		}
	}
	switch n := node.(type) {
	case *model.Panel:
		if _, exists := panels[n.NodeID()]; exists {
			return fmt.Errorf("duplicate panel id %q", n.NodeID())
		}
		panels[n.NodeID()] = n
	case *model.Split:
		if err := indexNodes(n.First(), panels, seq); err != nil {
			return err
		}
		return indexNodes(n.Second(), panels, seq)
	}
	return nil
}

// SaveFile writes the layout as pretty-printed JSON. The write fails if the
// file cannot be created or the encoded document is empty.
func (m *Manager) SaveFile(path string) error {
	data, err := json.MarshalIndent(m.SaveLayout(), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode layout: %v", ErrIO, err)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: encoded layout is empty", ErrIO)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	return nil
}

// LoadFile reads a layout file and loads it. Missing, unreadable, malformed
// or version-mismatched files fail without touching the current tree.
func (m *Manager) LoadFile(path string) ([]Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	var layout model.Layout
	if err := json.Unmarshal(data, &layout); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrInvalidArgument, path, err)
	}
	return m.LoadLayout(&layout)
}
