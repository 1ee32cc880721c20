package catalog

import (
	"errors"
	"fmt"

	"github.com/nashvel/convenience-store-sub000/internal/models"
)

// ErrCategoryCycle reports a parent/child loop in the category data.
var ErrCategoryCycle = errors.New("category tree contains a cycle")

// CategoryNode is one node of the assembled category tree.
type CategoryNode struct {
	Category models.Category
	Children []*CategoryNode
}

// BuildCategoryTree assembles the flat category list into a forest.
// A category whose parent id points at nothing is treated as a root.
// Nodes trapped in a parent/child loop are unreachable from any root;
// that is reported as ErrCategoryCycle rather than looped over.
func BuildCategoryTree(categories []models.Category) ([]*CategoryNode, error) {
	nodes := make(map[string]*CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{Category: c}
	}

	var roots []*CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*c.ParentID]
		if !ok || *c.ParentID == c.ID {
			// Dangling parent: render as a root.
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	reachable := 0
	visited := make(map[string]bool, len(nodes))
	var walk func(n *CategoryNode) error
	walk = func(n *CategoryNode) error {
		if visited[n.Category.ID] {
			return fmt.Errorf("%w: category %s revisited", ErrCategoryCycle, n.Category.ID)
		}
		visited[n.Category.ID] = true
		reachable++
		for _, child := range n.Children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, root := range roots {
		if err := walk(root); err != nil {
			return nil, err
		}
	}
	if reachable != len(nodes) {
		return nil, fmt.Errorf("%w: %d categories unreachable from any root", ErrCategoryCycle, len(nodes)-reachable)
	}

	return roots, nil
}

// FlattenTree collects category ids in pre-order, parents before
// children. The visited guard keeps a malformed tree from recursing
// forever.
func FlattenTree(roots []*CategoryNode) []string {
	visited := make(map[string]bool)
	var out []string
	var walk func(n *CategoryNode)
	walk = func(n *CategoryNode) {
		if visited[n.Category.ID] {
			return
		}
		visited[n.Category.ID] = true
		out = append(out, n.Category.ID)
		for _, child := range n.Children {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return out
}
