package menus

import (
	"errors"
	"fmt"
)

var (
	ErrCyclicItems   = errors.New("menus: menu items form a cycle")
	ErrUnknownParent = errors.New("menus: parent id not present in menu")
)

// Node is a menu item with its resolved children.
type Node struct {
	*MenuItem
	Children []*Node `json:"children"`
}

// BuildTree turns a flat, display-ordered item list into a forest. Every
// parent id must name an item in the same list, and parent chains must be
// acyclic; corrupted data is reported instead of recursed into.
func BuildTree(items []*MenuItem) ([]*Node, error) {
	nodes := make(map[int64]*Node, len(items))
	for _, item := range items {
		nodes[item.ID] = &Node{MenuItem: item, Children: []*Node{}}
	}

	roots := make([]*Node, 0, len(items))
	for _, item := range items {
		node := nodes[item.ID]
		if item.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*item.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: item %d references %d", ErrUnknownParent, item.ID, *item.ParentID)
		}
		parent.Children = append(parent.Children, node)
	}

	// Walk from the roots; anything the walk cannot reach sits on a
	// parent cycle.
	reached := make(map[int64]struct{}, len(items))
	stack := make([]*Node, len(roots))
	copy(stack, roots)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, seen := reached[node.ID]; seen {
			return nil, fmt.Errorf("%w: item %d reached twice", ErrCyclicItems, node.ID)
		}
		reached[node.ID] = struct{}{}
		stack = append(stack, node.Children...)
	}
	if len(reached) != len(items) {
		return nil, ErrCyclicItems
	}
	return roots, nil
}
