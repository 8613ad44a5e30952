// Package ui is the interactive layout inspector: a terminal tree view of
// the split tree with keys to add, remove and persist panels. It drives the
// dock.Manager; it does not compute pixel geometry.
package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/panedock/pkg/dock"
	"github.com/vanderheijden86/panedock/pkg/model"
	"github.com/vanderheijden86/panedock/pkg/validate"
)

// ExternalChangeMsg tells the inspector the layout file changed on disk.
type ExternalChangeMsg struct{}

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	AddLeft   key.Binding
	AddRight  key.Binding
	AddTop    key.Binding
	AddBottom key.Binding
	Add       key.Binding
	Remove    key.Binding
	Grow      key.Binding
	Shrink    key.Binding
	Save      key.Binding
	Yank      key.Binding
	Validate  key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
		AddLeft:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "add left")),
		AddRight:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "add right")),
		AddTop:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "add above")),
		AddBottom: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "add below")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Remove:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Grow:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "grow")),
		Shrink:    key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "shrink")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Yank:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank json")),
		Validate:  key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "validate")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	splitStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	panelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// row is one rendered line of the tree.
type row struct {
	node  model.Node
	depth int
}

// Model is the inspector's bubbletea model.
type Model struct {
	manager    *dock.Manager
	layoutPath string

	keys keyMap
	rows []row

	// selected indexes rows; only panel rows are selectable.
	selected int
	panelSeq int

	width  int
	height int

	status  string
	isError bool
}

// NewModel builds an inspector over manager. layoutPath is where the save
// key writes; empty disables saving.
func NewModel(manager *dock.Manager, layoutPath string) Model {
	m := Model{
		manager:    manager,
		layoutPath: layoutPath,
		keys:       defaultKeyMap(),
		status:     "ready",
	}
	m.refreshRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// refreshRows rebuilds the flattened tree and keeps the selection on a
// panel row.
func (m *Model) refreshRows() {
	m.rows = m.rows[:0]
	var walk func(node model.Node, depth int)
	walk = func(node model.Node, depth int) {
		if node == nil {
			return
		}
		m.rows = append(m.rows, row{node: node, depth: depth})
		if split, ok := node.(*model.Split); ok {
			walk(split.First(), depth+1)
			walk(split.Second(), depth+1)
		}
	}
	walk(m.manager.Root(), 0)

	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	if len(m.rows) > 0 {
		if _, ok := m.rows[m.selected].node.(*model.Panel); !ok {
			m.moveSelection(1)
		}
	}
}

// moveSelection steps to the next panel row in the given direction.
func (m *Model) moveSelection(delta int) {
	if len(m.rows) == 0 {
		return
	}
	i := m.selected
	for range m.rows {
		i += delta
		if i < 0 {
			i = len(m.rows) - 1
		}
		if i >= len(m.rows) {
			i = 0
		}
		if _, ok := m.rows[i].node.(*model.Panel); ok {
			m.selected = i
			return
		}
	}
}

func (m *Model) selectedPanel() *model.Panel {
	if m.selected < 0 || m.selected >= len(m.rows) {
		return nil
	}
	panel, _ := m.rows[m.selected].node.(*model.Panel)
	return panel
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.isError = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.isError = true
}

func (m *Model) nextPanelID() string {
	for {
		m.panelSeq++
		id := fmt.Sprintf("panel_%d", m.panelSeq)
		if m.manager.FindNode(id) == nil {
			return id
		}
	}
}

func (m *Model) addPanel(dir model.Direction) {
	id := m.nextPanelID()
	title := fmt.Sprintf("Panel %d", m.panelSeq)
	content := id + ".qml"

	var err error
	target := m.selectedPanel()
	if target == nil {
		_, err = m.manager.AddPanel(id, title, content)
	} else {
		_, err = m.manager.AddPanelAt(id, title, content, target.NodeID(), dir)
	}
	if err != nil {
		m.setError(err)
		return
	}
	m.refreshRows()
	m.selectPanelByID(id)
	m.setStatus("added %s", id)
}

func (m *Model) selectPanelByID(id string) {
	for i, r := range m.rows {
		if r.node.NodeID() == id {
			m.selected = i
			return
		}
	}
}

func (m *Model) removeSelected() {
	panel := m.selectedPanel()
	if panel == nil {
		m.setStatus("nothing selected")
		return
	}
	if !panel.Closable() {
		m.setStatus("%s is not closable", panel.NodeID())
		return
	}
	if _, err := m.manager.RemovePanel(panel.NodeID()); err != nil {
		m.setError(err)
		return
	}
	m.refreshRows()
	m.setStatus("removed %s", panel.NodeID())
}

// parentSplit returns the split whose ratio the grow/shrink keys adjust:
// the selected panel's parent.
func (m *Model) parentSplit() *model.Split {
	panel := m.selectedPanel()
	if panel == nil {
		return nil
	}
	return panel.Parent()
}

func (m *Model) adjustRatio(delta float64) {
	split := m.parentSplit()
	if split == nil {
		m.setStatus("no split to resize")
		return
	}
	if _, err := m.manager.UpdateSplitRatio(split.NodeID(), split.Ratio()+delta); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("ratio %.2f", split.Ratio())
}

func (m *Model) save() {
	if m.layoutPath == "" {
		m.setStatus("no layout path configured")
		return
	}
	if err := m.manager.SaveFile(m.layoutPath); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("saved %s", m.layoutPath)
}

func (m *Model) yank() {
	data, err := json.MarshalIndent(m.manager.SaveLayout(), "", "  ")
	if err != nil {
		m.setError(err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.setError(err)
		return
	}
	m.setStatus("layout json copied to clipboard")
}

func (m *Model) runValidation() {
	if m.manager.Root() == nil {
		m.setStatus("empty tree")
		return
	}
	result := validate.Tree(m.manager.Root())
	switch {
	case !result.IsValid:
		m.status = fmt.Sprintf("invalid: %s", result.Errors[0])
		m.isError = true
	case len(result.Warnings) > 0:
		m.setStatus("valid, %d warning(s): %s", len(result.Warnings), result.Warnings[0])
	default:
		m.setStatus("layout valid")
	}
}

func (m *Model) reload() {
	if m.layoutPath == "" {
		return
	}
	if _, err := m.manager.LoadFile(m.layoutPath); err != nil {
		m.setError(err)
		return
	}
	m.refreshRows()
	m.setStatus("reloaded %s", m.layoutPath)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ExternalChangeMsg:
		m.reload()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Down):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.AddLeft):
			m.addPanel(model.Left)
		case key.Matches(msg, m.keys.AddRight):
			m.addPanel(model.Right)
		case key.Matches(msg, m.keys.AddTop):
			m.addPanel(model.Top)
		case key.Matches(msg, m.keys.AddBottom):
			m.addPanel(model.Bottom)
		case key.Matches(msg, m.keys.Add):
			m.addPanel(model.Right)
		case key.Matches(msg, m.keys.Remove):
			m.removeSelected()
		case key.Matches(msg, m.keys.Grow):
			m.adjustRatio(0.05)
		case key.Matches(msg, m.keys.Shrink):
			m.adjustRatio(-0.05)
		case key.Matches(msg, m.keys.Save):
			m.save()
		case key.Matches(msg, m.keys.Yank):
			m.yank()
		case key.Matches(msg, m.keys.Validate):
			m.runValidation()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b []byte
	b = append(b, titleStyle.Render("panedock")...)
	b = append(b, fmt.Sprintf("  %d panel(s)\n\n", m.manager.PanelCount())...)

	if len(m.rows) == 0 {
		b = append(b, panelStyle.Render("  (empty layout, press a to add a panel)")...)
		b = append(b, '\n')
	}
	for i, r := range m.rows {
		b = append(b, m.renderRow(i, r)...)
		b = append(b, '\n')
	}

	b = append(b, '\n')
	style := statusStyle
	if m.isError {
		style = errorStyle
	}
	b = append(b, style.Render(m.status)...)
	b = append(b, '\n')
	b = append(b, statusStyle.Render("j/k move · a/H/J/K/L add · x remove · +/- ratio · s save · y yank · v validate · q quit")...)
	return string(b)
}

func (m Model) renderRow(i int, r row) string {
	indent := ""
	for d := 0; d < r.depth; d++ {
		indent += "  "
	}

	switch n := r.node.(type) {
	case *model.Split:
		axis := "│ vertical"
		if n.Orientation() == model.Horizontal {
			axis = "─ horizontal"
		}
		return splitStyle.Render(fmt.Sprintf("%s%s %.2f", indent, axis, n.Ratio()))

	case *model.Panel:
		title := n.Title()
		if maxw := m.width - len(indent) - 16; m.width > 0 && maxw > 4 {
			title = runewidth.Truncate(title, maxw, "…")
		}
		line := fmt.Sprintf("%s%s [%s]", indent, title, n.NodeID())
		if !n.Closable() {
			line += " ∗"
		}
		if i == m.selected {
			return selectedStyle.Render("▸ " + line)
		}
		return panelStyle.Render("  " + line)
	}
	return ""
}
