package dock

import (
	"fmt"
	"log"

	"github.com/vanderheijden86/panedock/pkg/model"
)

// AddPanel inserts a new panel with no explicit target: the panel becomes
// the root of an empty tree, otherwise it is attached as the right-hand
// sibling of the current rightmost panel.
func (m *Manager) AddPanel(id, title, contentRef string) ([]Event, error) {
	if err := m.checkNewPanelID(id); err != nil {
		return nil, err
	}

	panel := m.newPanel(id, title, contentRef)
	if m.root == nil {
		m.root = panel
		m.panels[id] = panel
		return panelAddedEvents(id, true), nil
	}

	target := rightmostPanel(m.root)
	if target == nil {
		return nil, fmt.Errorf("%w: tree has no panels to attach to", ErrInvalidArgument)
	}
	return m.insertAt(panel, target, model.Right)
}

// AddPanelAt inserts a new panel beside the node identified by targetID, in
// the given direction. On an empty tree the panel becomes the root and the
// target is ignored. The operation fails without mutating the tree if the
// direction is malformed, the new id collides, or the target is missing.
func (m *Manager) AddPanelAt(id, title, contentRef, targetID string, dir model.Direction) ([]Event, error) {
	if !dir.IsValid() {
		return nil, fmt.Errorf("%w: direction %q", ErrInvalidArgument, dir)
	}
	if err := m.checkNewPanelID(id); err != nil {
		return nil, err
	}

	panel := m.newPanel(id, title, contentRef)
	if m.root == nil {
		m.root = panel
		m.panels[id] = panel
		return panelAddedEvents(id, true), nil
	}

	target := m.FindNode(targetID)
	if target == nil {
		return nil, fmt.Errorf("%w: target %q", ErrNotFound, targetID)
	}
	return m.insertAt(panel, target, dir)
}

// RemovePanel removes the panel identified by id and promotes its sibling
// subtree into the position of the discarded parent split. A nested removal
// of the same id while one is in flight is rejected as a no-op, guarding
// against a single user action arriving through multiple signal paths.
func (m *Manager) RemovePanel(id string) ([]Event, error) {
	if _, inFlight := m.removing[id]; inFlight {
		log.Printf("panedock: removal of %q already in progress, ignoring", id)
		return nil, nil
	}
	m.removing[id] = struct{}{}
	defer delete(m.removing, id)

	panel, ok := m.panels[id]
	if !ok {
		return nil, fmt.Errorf("%w: panel %q", ErrNotFound, id)
	}

	// Sole panel: the tree becomes empty.
	if model.Node(panel) == m.root {
		m.root = nil
		delete(m.panels, id)
		return panelRemovedEvents(id), nil
	}

	parent := panel.Parent()
	if parent == nil {
		return nil, fmt.Errorf("%w: panel %q is detached from the tree", ErrInvalidArgument, id)
	}
	grandparent := parent.Parent()
	if model.Node(parent) != m.root && grandparent == nil {
		return nil, fmt.Errorf("%w: split %q has no parent", ErrInvalidArgument, parent.NodeID())
	}

	// Detach the sibling subtree, then the panel itself; the parent split is
	// discarded with both slots empty so nothing dangles from it.
	var sibling model.Node
	if parent.First() == model.Node(panel) {
		sibling = parent.TakeSecond()
		parent.TakeFirst()
	} else {
		sibling = parent.TakeFirst()
		parent.TakeSecond()
	}

	// Promotion: the sibling occupies the position the parent held.
	if model.Node(parent) == m.root {
		m.root = sibling
	} else {
		if grandparent.First() == model.Node(parent) {
			grandparent.SetFirst(sibling)
		} else {
			grandparent.SetSecond(sibling)
		}
	}

	delete(m.panels, id)
	return panelRemovedEvents(id), nil
}

// UpdateSplitRatio sets the ratio of the split identified by containerID.
// The value is clamped, never rejected.
func (m *Manager) UpdateSplitRatio(containerID string, ratio float64) ([]Event, error) {
	node := m.FindNode(containerID)
	split, ok := node.(*model.Split)
	if !ok {
		return nil, fmt.Errorf("%w: split %q", ErrNotFound, containerID)
	}
	split.SetRatio(ratio)
	return []Event{{Kind: EventLayoutChanged}}, nil
}

// insertAt splices panel next to target: a new split takes target's place
// and holds target and panel in the order the direction dictates.
func (m *Manager) insertAt(panel *model.Panel, target model.Node, dir model.Direction) ([]Event, error) {
	split := model.NewSplit(m.nextNodeID(), dir.Orientation())
	split.SetMinSize(m.minPanelSize)

	if target == m.root {
		old := m.root
		if dir.PanelFirst() {
			split.SetFirst(panel)
			split.SetSecond(old)
		} else {
			split.SetFirst(old)
			split.SetSecond(panel)
		}
		m.root = split
		m.panels[panel.NodeID()] = panel
		return panelAddedEvents(panel.NodeID(), true), nil
	}

	parent := target.Parent()
	if parent == nil {
		return nil, fmt.Errorf("%w: target %q has no parent", ErrInvalidArgument, target.NodeID())
	}

	targetWasFirst := parent.First() == target
	var detached model.Node
	if targetWasFirst {
		detached = parent.TakeFirst()
	} else {
		detached = parent.TakeSecond()
	}

	if dir.PanelFirst() {
		split.SetFirst(panel)
		split.SetSecond(detached)
	} else {
		split.SetFirst(detached)
		split.SetSecond(panel)
	}

	if targetWasFirst {
		parent.SetFirst(split)
	} else {
		parent.SetSecond(split)
	}

	m.panels[panel.NodeID()] = panel
	return panelAddedEvents(panel.NodeID(), false), nil
}

// checkNewPanelID validates an insert identifier before any mutation:
// non-empty, absent from the registry, and not colliding with a split id.
func (m *Manager) checkNewPanelID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty panel id", ErrInvalidArgument)
	}
	if _, exists := m.panels[id]; exists {
		return fmt.Errorf("%w: panel %q", ErrDuplicate, id)
	}
	if m.FindNode(id) != nil {
		return fmt.Errorf("%w: node %q", ErrDuplicate, id)
	}
	return nil
}

func (m *Manager) newPanel(id, title, contentRef string) *model.Panel {
	panel := model.NewPanel(id, title, contentRef)
	panel.SetMinSize(m.minPanelSize)
	return panel
}
