package model

import "fmt"

// LayoutVersion is the persisted document version this engine reads and
// writes. Load rejects any other value.
const LayoutVersion = "2.0"

// Node document type tags.
const (
	TypePanel = "panel"
	TypeSplit = "split"
)

// Document is the serializable form of one tree node. Panel and split nodes
// share the struct; the Type tag selects which fields are meaningful.
//
// File format (JSON):
//
//	{"type":"panel","id":"p1","title":"Files","contentRef":"files.qml","minSize":150}
//	{"type":"split","id":"node_1","orientation":"vertical","splitRatio":0.5,
//	 "minSize":150,"first":{...},"second":{...}}
type Document struct {
	Type string `json:"type"`
	ID   string `json:"id"`

	// Panel fields
	Title      string `json:"title,omitempty"`
	ContentRef string `json:"contentRef,omitempty"`
	Closable   *bool  `json:"closable,omitempty"`

	// Split fields
	Orientation Orientation `json:"orientation,omitempty"`
	SplitRatio  float64     `json:"splitRatio,omitempty"`
	First       *Document   `json:"first,omitempty"`
	Second      *Document   `json:"second,omitempty"`

	MinSize float64 `json:"minSize,omitempty"`
}

// Layout is the top-level persisted document.
type Layout struct {
	Version      string    `json:"version"`
	MinPanelSize float64   `json:"minPanelSize"`
	Root         *Document `json:"root,omitempty"`
}

// Document converts the panel to its serializable form.
func (p *Panel) Document() *Document {
	closable := p.closable
	return &Document{
		Type:       TypePanel,
		ID:         p.id,
		Title:      p.title,
		ContentRef: p.contentRef,
		Closable:   &closable,
		MinSize:    p.minSize,
	}
}

// Document converts the split subtree to its serializable form. Empty child
// slots are omitted; the validator reports them, load does not reject them.
func (s *Split) Document() *Document {
	doc := &Document{
		Type:        TypeSplit,
		ID:          s.id,
		Orientation: s.orientation,
		SplitRatio:  s.ratio,
		MinSize:     s.minSize,
	}
	if s.first != nil {
		doc.First = s.first.Document()
	}
	if s.second != nil {
		doc.Second = s.second.Document()
	}
	return doc
}

// NodeFromDocument reconstructs a subtree top-down from its document form.
// defaultMinSize fills in nodes whose document omits a minimum size.
//
// Reconstruction is strict: an unrecognized type tag or orientation fails
// the whole subtree instead of silently dropping it, so a corrupt document
// can never materialize a Split missing a child.
func NodeFromDocument(doc *Document, defaultMinSize float64) (Node, error) {
	if doc == nil {
		return nil, nil
	}

	switch doc.Type {
	case TypePanel:
		panel := NewPanel(doc.ID, doc.Title, doc.ContentRef)
		if doc.Closable != nil {
			panel.SetClosable(*doc.Closable)
		}
		panel.SetMinSize(pickMinSize(doc.MinSize, defaultMinSize))
		return panel, nil

	case TypeSplit:
		if !doc.Orientation.IsValid() {
			return nil, fmt.Errorf("split %q: unknown orientation %q", doc.ID, doc.Orientation)
		}
		split := NewSplit(doc.ID, doc.Orientation)
		if doc.SplitRatio != 0 {
			split.SetRatio(doc.SplitRatio)
		}
		split.SetMinSize(pickMinSize(doc.MinSize, defaultMinSize))

		first, err := NodeFromDocument(doc.First, defaultMinSize)
		if err != nil {
			return nil, err
		}
		second, err := NodeFromDocument(doc.Second, defaultMinSize)
		if err != nil {
			return nil, err
		}
		if first != nil {
			split.SetFirst(first)
		}
		if second != nil {
			split.SetSecond(second)
		}
		return split, nil

	default:
		return nil, fmt.Errorf("node %q: unknown node type %q", doc.ID, doc.Type)
	}
}

func pickMinSize(docSize, fallback float64) float64 {
	if docSize != 0 {
		return docSize
	}
	return fallback
}
