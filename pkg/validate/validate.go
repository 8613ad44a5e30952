// Package validate performs on-demand structural sanity checks over a
// layout tree. It runs independently of the mutation engine, so it can be
// pointed at a freshly loaded or long-lived tree alike. Findings are split
// into hard errors (the tree is unusable) and advisory warnings.
package validate

import (
	"fmt"

	"github.com/vanderheijden86/panedock/pkg/model"
)

// Limits are the advisory thresholds for tree size warnings.
type Limits struct {
	MaxDepth int
	MaxNodes int
}

// DefaultLimits returns the recommended thresholds.
func DefaultLimits() Limits {
	return Limits{MaxDepth: 10, MaxNodes: 50}
}

// Result is a validation report. Warnings never affect IsValid.
type Result struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

func (r *Result) addError(format string, args ...any) {
	r.IsValid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Tree validates root with the default limits.
func Tree(root model.Node) Result {
	return TreeWithLimits(root, DefaultLimits())
}

// TreeWithLimits walks the tree depth-first and reports structural problems.
// Hard errors: nil root, a split missing a child, an empty or duplicate
// identifier, a child whose parent back-reference disagrees with its actual
// attachment, or an unknown node implementation. Warnings: excessive depth
// or node count, out-of-range ratios (unreachable through the clamping
// setters, so a finding indicates a bypass), panels with empty display
// metadata, and undersized minimum sizes.
func TreeWithLimits(root model.Node, limits Limits) Result {
	result := Result{IsValid: true}

	if root == nil {
		result.addError("root node is nil")
		return result
	}
	if root.Parent() != nil {
		result.addError("root node %q has a parent reference", root.NodeID())
	}

	seen := make(map[string]bool)
	validateNode(root, seen, &result)

	if depth := treeDepth(root); depth > limits.MaxDepth {
		result.addWarning("layout depth %d exceeds recommended %d", depth, limits.MaxDepth)
	}
	if count := countNodes(root); count > limits.MaxNodes {
		result.addWarning("node count %d exceeds recommended %d", count, limits.MaxNodes)
	}

	return result
}

func validateNode(node model.Node, seen map[string]bool, result *Result) {
	id := node.NodeID()
	if id == "" {
		result.addError("node has empty id")
	} else if seen[id] {
		result.addError("duplicate node id %q", id)
	} else {
		seen[id] = true
	}

	if node.MinSize() < model.MinPanelSize {
		result.addWarning("node %q has minSize %.1f below %.0f", id, node.MinSize(), model.MinPanelSize)
	}

	switch n := node.(type) {
	case *model.Panel:
		if n.Title() == "" {
			result.addWarning("panel %q has empty title", id)
		}
		if n.ContentRef() == "" {
			result.addWarning("panel %q has empty content reference", id)
		}

	case *model.Split:
		if n.Ratio() < model.MinSplitRatio || n.Ratio() > model.MaxSplitRatio {
			result.addWarning("split %q ratio %.2f outside [%.1f, %.1f]", id, n.Ratio(), model.MinSplitRatio, model.MaxSplitRatio)
		}
		if n.First() == nil || n.Second() == nil {
			result.addError("split %q missing child nodes", id)
			return
		}
		for _, child := range []model.Node{n.First(), n.Second()} {
			if child.Parent() != n {
				result.addError("node %q parent reference does not match its attachment under %q", child.NodeID(), id)
			}
			validateNode(child, seen, result)
		}

	default:
		result.addError("node %q has unknown node type %T", id, node)
	}
}

func treeDepth(node model.Node) int {
	split, ok := node.(*model.Split)
	if !ok {
		return 1
	}
	depth := 0
	if split.First() != nil {
		depth = treeDepth(split.First())
	}
	if split.Second() != nil {
		if d := treeDepth(split.Second()); d > depth {
			depth = d
		}
	}
	return 1 + depth
}

func countNodes(node model.Node) int {
	if node == nil {
		return 0
	}
	split, ok := node.(*model.Split)
	if !ok {
		return 1
	}
	return 1 + countNodes(split.First()) + countNodes(split.Second())
}
