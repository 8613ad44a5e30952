package ui

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/panedock/pkg/dock"
	"github.com/vanderheijden86/panedock/pkg/model"
)

func press(m Model, r rune) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	return next.(Model)
}

func newTestModel(t *testing.T) (Model, *dock.Manager) {
	t.Helper()
	mgr := dock.NewManager()
	if _, err := mgr.AddPanel("a", "Alpha", "alpha.qml"); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.AddPanelAt("b", "Beta", "beta.qml", "a", model.Right); err != nil {
		t.Fatal(err)
	}
	return NewModel(mgr, ""), mgr
}

func TestModel_InitialSelection(t *testing.T) {
	m, _ := newTestModel(t)
	panel := m.selectedPanel()
	if panel == nil {
		t.Fatal("a panel row should be selected initially")
	}
	if panel.NodeID() != "a" {
		t.Errorf("selected = %q, want first panel a", panel.NodeID())
	}
}

func TestModel_MoveSelection(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(m, 'j')
	if got := m.selectedPanel().NodeID(); got != "b" {
		t.Errorf("after j: selected = %q, want b", got)
	}

	// Wraps past the last panel.
	m = press(m, 'j')
	if got := m.selectedPanel().NodeID(); got != "a" {
		t.Errorf("after wrap: selected = %q, want a", got)
	}

	m = press(m, 'k')
	if got := m.selectedPanel().NodeID(); got != "b" {
		t.Errorf("after k: selected = %q, want b", got)
	}
}

func TestModel_AddBesideSelection(t *testing.T) {
	m, mgr := newTestModel(t)

	m = press(m, 'J')
	if mgr.PanelCount() != 3 {
		t.Fatalf("PanelCount() = %d, want 3", mgr.PanelCount())
	}

	// The new panel sits below the previously selected one and is now
	// selected itself.
	added := m.selectedPanel()
	if added == nil || added.NodeID() == "a" || added.NodeID() == "b" {
		t.Fatalf("selection should follow the added panel, got %v", added)
	}
	parent := added.Parent()
	if parent.Orientation() != model.Horizontal {
		t.Errorf("add-below orientation = %v, want horizontal", parent.Orientation())
	}
	if parent.Second() != model.Node(added) {
		t.Error("added panel should occupy the second slot")
	}
}

func TestModel_AddToEmptyTree(t *testing.T) {
	m := NewModel(dock.NewManager(), "")
	m = press(m, 'a')
	if m.manager.PanelCount() != 1 {
		t.Fatalf("PanelCount() = %d, want 1", m.manager.PanelCount())
	}
	if m.selectedPanel() == nil {
		t.Error("the new panel should be selected")
	}
}

func TestModel_RemoveSelected(t *testing.T) {
	m, mgr := newTestModel(t)

	m = press(m, 'x')
	if mgr.PanelCount() != 1 {
		t.Fatalf("PanelCount() = %d, want 1", mgr.PanelCount())
	}
	if got := m.selectedPanel().NodeID(); got != "b" {
		t.Errorf("selection after removal = %q, want b", got)
	}
}

func TestModel_RemoveRespectsClosable(t *testing.T) {
	m, mgr := newTestModel(t)
	mgr.FindPanel("a").SetClosable(false)

	m = press(m, 'x')
	if mgr.PanelCount() != 2 {
		t.Errorf("non-closable panel was removed")
	}
	if !strings.Contains(m.status, "not closable") {
		t.Errorf("status = %q, want not-closable notice", m.status)
	}
}

func TestModel_AdjustRatio(t *testing.T) {
	m, mgr := newTestModel(t)
	root := mgr.Root().(*model.Split)

	m = press(m, '+')
	if math.Abs(root.Ratio()-0.55) > 1e-9 {
		t.Errorf("ratio after grow = %v, want 0.55", root.Ratio())
	}
	m = press(m, '-')
	if math.Abs(root.Ratio()-0.5) > 1e-9 {
		t.Errorf("ratio after shrink = %v, want 0.5", root.Ratio())
	}
}

// Resizing acts on the selected panel's immediate parent split, not the root.
func TestModel_AdjustRatioNestedSplit(t *testing.T) {
	m, mgr := newTestModel(t)
	if _, err := mgr.AddPanelAt("c", "Gamma", "gamma.qml", "b", model.Bottom); err != nil {
		t.Fatal(err)
	}
	m.refreshRows()
	m.selectPanelByID("c")

	inner := mgr.FindPanel("c").Parent()
	if inner == nil || inner == mgr.Root() {
		t.Fatal("c should hang under a nested split")
	}
	if got := m.parentSplit(); got != inner {
		t.Fatalf("parentSplit() = %v, want the nested split %q", got, inner.NodeID())
	}

	root := mgr.Root().(*model.Split)
	m = press(m, '+')
	if math.Abs(inner.Ratio()-0.55) > 1e-9 {
		t.Errorf("nested ratio = %v, want 0.55", inner.Ratio())
	}
	if root.Ratio() != 0.5 {
		t.Errorf("root ratio = %v, want untouched 0.5", root.Ratio())
	}
}

func TestModel_Save(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	mgr := dock.NewManager()
	if _, err := mgr.AddPanel("a", "Alpha", "alpha.qml"); err != nil {
		t.Fatal(err)
	}
	m := NewModel(mgr, path)

	m = press(m, 's')
	if m.isError {
		t.Fatalf("save failed: %s", m.status)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("layout file not written: %v", err)
	}
}

func TestModel_SaveWithoutPath(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, 's')
	if m.isError {
		t.Errorf("pathless save should be a notice, not an error: %s", m.status)
	}
	if !strings.Contains(m.status, "no layout path") {
		t.Errorf("status = %q", m.status)
	}
}

func TestModel_Validate(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, 'v')
	if m.isError {
		t.Errorf("valid tree reported as error: %s", m.status)
	}
	if !strings.Contains(m.status, "valid") {
		t.Errorf("status = %q, want validity notice", m.status)
	}
}

func TestModel_ExternalReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	src := dock.NewManager()
	if _, err := src.AddPanel("fromdisk", "From Disk", "d.qml"); err != nil {
		t.Fatal(err)
	}
	if err := src.SaveFile(path); err != nil {
		t.Fatal(err)
	}

	mgr := dock.NewManager()
	m := NewModel(mgr, path)
	next, _ := m.Update(ExternalChangeMsg{})
	m = next.(Model)

	if mgr.FindPanel("fromdisk") == nil {
		t.Error("external change should reload the layout file")
	}
	if m.selectedPanel() == nil {
		t.Error("selection should land on a loaded panel")
	}
}

func TestModel_ViewContainsTree(t *testing.T) {
	m, _ := newTestModel(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"Alpha", "Beta", "vertical", "2 panel(s)"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}

func TestModel_QuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("cmd() = %v, want tea.Quit", msg)
	}
}
