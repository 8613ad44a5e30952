// Package model defines the binary split-tree node types used by the
// docking layout engine: Panel leaves and Split containers, plus the
// direction/orientation vocabulary and the clamped value ranges every
// setter enforces.
package model

// Orientation describes how a Split divides its space between children.
type Orientation string

const (
	// Horizontal stacks the two children vertically (first on top).
	Horizontal Orientation = "horizontal"
	// Vertical places the two children side by side (first on the left).
	Vertical Orientation = "vertical"
)

// IsValid returns true if the orientation is a recognized value.
func (o Orientation) IsValid() bool {
	return o == Horizontal || o == Vertical
}

// Direction is the requested placement of a new panel relative to a target
// node. It determines both the orientation of the Split created by an insert
// and which child slot the new panel occupies.
type Direction string

const (
	Left   Direction = "left"
	Right  Direction = "right"
	Top    Direction = "top"
	Bottom Direction = "bottom"
)

// IsValid returns true if the direction is a recognized value.
func (d Direction) IsValid() bool {
	switch d {
	case Left, Right, Top, Bottom:
		return true
	}
	return false
}

// Orientation maps a drop direction to the orientation of the Split an
// insert creates: left/right splits side by side, top/bottom stacks.
func (d Direction) Orientation() Orientation {
	if d == Top || d == Bottom {
		return Horizontal
	}
	return Vertical
}

// PanelFirst reports whether the inserted panel takes the first child slot
// (left and top placements) or the second (right and bottom).
func (d Direction) PanelFirst() bool {
	return d == Left || d == Top
}

// Clamped value ranges. Setters silently clamp instead of rejecting, so an
// out-of-range value can never be stored on a node.
const (
	MinSplitRatio = 0.1
	MaxSplitRatio = 0.9

	MinPanelSize = 50.0
	MaxPanelSize = 1000.0

	DefaultSplitRatio = 0.5
	DefaultMinSize    = 150.0
)

// ClampRatio bounds a split ratio to [MinSplitRatio, MaxSplitRatio].
func ClampRatio(ratio float64) float64 {
	if ratio < MinSplitRatio {
		return MinSplitRatio
	}
	if ratio > MaxSplitRatio {
		return MaxSplitRatio
	}
	return ratio
}

// ClampMinSize bounds a minimum size to [MinPanelSize, MaxPanelSize].
func ClampMinSize(size float64) float64 {
	if size < MinPanelSize {
		return MinPanelSize
	}
	if size > MaxPanelSize {
		return MaxPanelSize
	}
	return size
}

// Node is a tree node: either a *Panel leaf or a *Split container.
// The interface is sealed (setParent is unexported) so the engine can type
// switch over exactly these two variants.
type Node interface {
	// NodeID returns the node's identifier, unique within a tree and
	// immutable after creation.
	NodeID() string
	// MinSize returns the minimum size hint for this subtree.
	MinSize() float64
	// SetMinSize clamps size to [MinPanelSize, MaxPanelSize] and stores it.
	SetMinSize(size float64)
	// Parent returns the Split this node is attached to, or nil at the root
	// (and while detached mid-mutation). The back-reference is non-owning.
	Parent() *Split
	// Document converts the subtree to its serializable representation.
	Document() *Document

	setParent(p *Split)
}

// Panel is a leaf node representing one user-visible panel.
type Panel struct {
	id         string
	title      string
	contentRef string
	closable   bool
	minSize    float64
	parent     *Split
}

// NewPanel creates a closable panel leaf with the default minimum size.
func NewPanel(id, title, contentRef string) *Panel {
	return &Panel{
		id:         id,
		title:      title,
		contentRef: contentRef,
		closable:   true,
		minSize:    DefaultMinSize,
	}
}

// NodeID returns the panel identifier.
func (p *Panel) NodeID() string { return p.id }

// Title returns the display title.
func (p *Panel) Title() string { return p.title }

// SetTitle updates the display title.
func (p *Panel) SetTitle(title string) { p.title = title }

// ContentRef returns the opaque content reference (URI or component name).
func (p *Panel) ContentRef() string { return p.contentRef }

// SetContentRef updates the content reference.
func (p *Panel) SetContentRef(ref string) { p.contentRef = ref }

// Closable reports whether the panel may be removed by the user.
func (p *Panel) Closable() bool { return p.closable }

// SetClosable updates the closable flag.
func (p *Panel) SetClosable(closable bool) { p.closable = closable }

// MinSize returns the minimum size hint.
func (p *Panel) MinSize() float64 { return p.minSize }

// SetMinSize clamps and stores the minimum size hint.
func (p *Panel) SetMinSize(size float64) { p.minSize = ClampMinSize(size) }

// Parent returns the owning Split, or nil for a root or detached panel.
func (p *Panel) Parent() *Split { return p.parent }

func (p *Panel) setParent(s *Split) { p.parent = s }

// Split is a binary container node holding exactly two children once a
// mutation completes. A slot may be empty only transiently while the engine
// is rearranging the tree.
type Split struct {
	id          string
	orientation Orientation
	ratio       float64
	minSize     float64
	first       Node
	second      Node
	parent      *Split
}

// NewSplit creates an empty split container with an even ratio.
func NewSplit(id string, orientation Orientation) *Split {
	return &Split{
		id:          id,
		orientation: orientation,
		ratio:       DefaultSplitRatio,
		minSize:     DefaultMinSize,
	}
}

// NodeID returns the split identifier.
func (s *Split) NodeID() string { return s.id }

// Orientation returns the split axis.
func (s *Split) Orientation() Orientation { return s.orientation }

// SetOrientation updates the split axis.
func (s *Split) SetOrientation(o Orientation) { s.orientation = o }

// Ratio returns the fraction of space given to the first child.
func (s *Split) Ratio() float64 { return s.ratio }

// SetRatio clamps ratio to [MinSplitRatio, MaxSplitRatio] and stores it.
func (s *Split) SetRatio(ratio float64) { s.ratio = ClampRatio(ratio) }

// MinSize returns the minimum size hint.
func (s *Split) MinSize() float64 { return s.minSize }

// SetMinSize clamps and stores the minimum size hint.
func (s *Split) SetMinSize(size float64) { s.minSize = ClampMinSize(size) }

// Parent returns the owning Split, or nil for the root or a detached split.
func (s *Split) Parent() *Split { return s.parent }

func (s *Split) setParent(p *Split) { s.parent = p }

// First returns the first child, or nil if the slot is empty.
func (s *Split) First() Node { return s.first }

// Second returns the second child, or nil if the slot is empty.
func (s *Split) Second() Node { return s.second }

// SetFirst attaches child to the first slot, taking ownership. Any node
// already in the slot is detached (its parent link cleared) and returned to
// the garbage collector unless the caller kept a reference.
func (s *Split) SetFirst(child Node) {
	if s.first != nil {
		s.first.setParent(nil)
	}
	s.first = child
	if child != nil {
		child.setParent(s)
	}
}

// SetSecond attaches child to the second slot, replacing any previous
// occupant as SetFirst does.
func (s *Split) SetSecond(child Node) {
	if s.second != nil {
		s.second.setParent(nil)
	}
	s.second = child
	if child != nil {
		child.setParent(s)
	}
}

// TakeFirst severs the first child's parent link and transfers ownership of
// the subtree to the caller. Returns nil if the slot is empty.
func (s *Split) TakeFirst() Node {
	child := s.first
	s.first = nil
	if child != nil {
		child.setParent(nil)
	}
	return child
}

// TakeSecond severs and returns the second child as TakeFirst does.
func (s *Split) TakeSecond() Node {
	child := s.second
	s.second = nil
	if child != nil {
		child.setParent(nil)
	}
	return child
}
