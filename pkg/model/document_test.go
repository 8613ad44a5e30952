package model

import (
	"strings"
	"testing"
)

// buildTestTree returns Split(V, a, Split(H, b, c)) with non-default
// attributes so round-trip comparisons are meaningful.
func buildTestTree() *Split {
	a := NewPanel("a", "Alpha", "alpha.qml")
	a.SetMinSize(80)
	b := NewPanel("b", "Beta", "beta.qml")
	b.SetClosable(false)
	c := NewPanel("c", "Gamma", "gamma.qml")

	inner := NewSplit("node_2", Horizontal)
	inner.SetRatio(0.3)
	inner.SetFirst(b)
	inner.SetSecond(c)

	root := NewSplit("node_1", Vertical)
	root.SetRatio(0.7)
	root.SetFirst(a)
	root.SetSecond(inner)
	return root
}

func TestDocumentRoundTrip(t *testing.T) {
	root := buildTestTree()

	node, err := NodeFromDocument(root.Document(), DefaultMinSize)
	if err != nil {
		t.Fatalf("NodeFromDocument() error = %v", err)
	}

	got, ok := node.(*Split)
	if !ok {
		t.Fatalf("reloaded root is %T, want *Split", node)
	}
	if got.NodeID() != "node_1" || got.Orientation() != Vertical || got.Ratio() != 0.7 {
		t.Errorf("root = %s/%s/%v, want node_1/vertical/0.7", got.NodeID(), got.Orientation(), got.Ratio())
	}

	a, ok := got.First().(*Panel)
	if !ok {
		t.Fatalf("first child is %T, want *Panel", got.First())
	}
	if a.Title() != "Alpha" || a.ContentRef() != "alpha.qml" || a.MinSize() != 80 {
		t.Errorf("panel a = %q/%q/%v", a.Title(), a.ContentRef(), a.MinSize())
	}
	if !a.Closable() {
		t.Error("panel a should stay closable")
	}
	if a.Parent() != got {
		t.Error("reloaded child must be parented to its split")
	}

	inner, ok := got.Second().(*Split)
	if !ok {
		t.Fatalf("second child is %T, want *Split", got.Second())
	}
	if inner.Orientation() != Horizontal || inner.Ratio() != 0.3 {
		t.Errorf("inner split = %s/%v, want horizontal/0.3", inner.Orientation(), inner.Ratio())
	}
	b := inner.First().(*Panel)
	if b.Closable() {
		t.Error("panel b should stay non-closable")
	}
}

func TestNodeFromDocument_Nil(t *testing.T) {
	node, err := NodeFromDocument(nil, DefaultMinSize)
	if err != nil {
		t.Fatalf("NodeFromDocument(nil) error = %v", err)
	}
	if node != nil {
		t.Errorf("NodeFromDocument(nil) = %v, want nil", node)
	}
}

func TestNodeFromDocument_Defaults(t *testing.T) {
	doc := &Document{Type: TypePanel, ID: "p"}
	node, err := NodeFromDocument(doc, 220)
	if err != nil {
		t.Fatalf("NodeFromDocument() error = %v", err)
	}
	panel := node.(*Panel)
	if panel.MinSize() != 220 {
		t.Errorf("MinSize() = %v, want fallback 220", panel.MinSize())
	}
	if !panel.Closable() {
		t.Error("omitted closable flag must default to true")
	}
}

func TestNodeFromDocument_UnknownType(t *testing.T) {
	doc := &Document{
		Type:        TypeSplit,
		ID:          "s",
		Orientation: Vertical,
		First:       &Document{Type: "tab-group", ID: "t"},
		Second:      &Document{Type: TypePanel, ID: "p"},
	}
	if _, err := NodeFromDocument(doc, DefaultMinSize); err == nil {
		t.Fatal("unknown node type must fail the whole load")
	} else if !strings.Contains(err.Error(), "tab-group") {
		t.Errorf("error %q should name the unknown type", err)
	}
}

func TestNodeFromDocument_BadOrientation(t *testing.T) {
	doc := &Document{Type: TypeSplit, ID: "s", Orientation: "radial"}
	if _, err := NodeFromDocument(doc, DefaultMinSize); err == nil {
		t.Fatal("unknown orientation must fail the load")
	}
}

func TestNodeFromDocument_ClampsStoredValues(t *testing.T) {
	doc := &Document{
		Type:        TypeSplit,
		ID:          "s",
		Orientation: Horizontal,
		SplitRatio:  0.95,
		MinSize:     7,
		First:       &Document{Type: TypePanel, ID: "p1", MinSize: 4000},
		Second:      &Document{Type: TypePanel, ID: "p2"},
	}
	node, err := NodeFromDocument(doc, DefaultMinSize)
	if err != nil {
		t.Fatalf("NodeFromDocument() error = %v", err)
	}
	split := node.(*Split)
	if split.Ratio() != MaxSplitRatio {
		t.Errorf("Ratio() = %v, want clamped %v", split.Ratio(), MaxSplitRatio)
	}
	if split.MinSize() != MinPanelSize {
		t.Errorf("MinSize() = %v, want clamped %v", split.MinSize(), MinPanelSize)
	}
	if p := split.First().(*Panel); p.MinSize() != MaxPanelSize {
		t.Errorf("panel MinSize() = %v, want clamped %v", p.MinSize(), MaxPanelSize)
	}
}

func TestDocument_OmitsEmptySlots(t *testing.T) {
	s := NewSplit("s", Vertical)
	s.SetFirst(NewPanel("p", "P", "p.qml"))
	doc := s.Document()
	if doc.First == nil {
		t.Error("occupied slot must serialize")
	}
	if doc.Second != nil {
		t.Error("empty slot must be omitted")
	}
}
