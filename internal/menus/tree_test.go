package menus_test

import (
	"errors"
	"testing"

	"github.com/fullsco/fullsco/internal/menus"
)

func item(id int64, parent *int64, order int) *menus.MenuItem {
	return &menus.MenuItem{
		ID:           id,
		MenuID:       1,
		ParentID:     parent,
		Title:        "item",
		DisplayOrder: order,
		Type:         menus.ItemTypeURL,
	}
}

func ptr(v int64) *int64 { return &v }

func countNodes(nodes []*menus.Node, seen map[int64]int) {
	for _, n := range nodes {
		seen[n.ID]++
		countNodes(n.Children, seen)
	}
}

func TestBuildTreeContainsEveryItemOnce(t *testing.T) {
	items := []*menus.MenuItem{
		item(1, nil, 1),
		item(2, ptr(1), 1),
		item(3, ptr(1), 2),
		item(4, ptr(3), 1),
		item(5, nil, 2),
	}

	tree, err := menus.BuildTree(items)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("roots = %d, want 2", len(tree))
	}

	seen := map[int64]int{}
	countNodes(tree, seen)
	if len(seen) != len(items) {
		t.Fatalf("tree covers %d items, want %d", len(seen), len(items))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("item %d appears %d times", id, n)
		}
	}

	// child ordering follows the input's display order
	root := tree[0]
	if root.ID != 1 || len(root.Children) != 2 || root.Children[0].ID != 2 {
		t.Fatalf("unexpected shape under root %d", root.ID)
	}
}

func TestBuildTreeRejectsCycle(t *testing.T) {
	items := []*menus.MenuItem{
		item(1, ptr(2), 1),
		item(2, ptr(1), 2),
		item(3, nil, 3),
	}
	if _, err := menus.BuildTree(items); !errors.Is(err, menus.ErrCyclicItems) {
		t.Fatalf("err = %v, want cycle error", err)
	}
}

func TestBuildTreeRejectsSelfParent(t *testing.T) {
	items := []*menus.MenuItem{item(1, ptr(1), 1)}
	if _, err := menus.BuildTree(items); !errors.Is(err, menus.ErrCyclicItems) {
		t.Fatalf("err = %v, want cycle error", err)
	}
}

func TestBuildTreeRejectsUnknownParent(t *testing.T) {
	items := []*menus.MenuItem{item(1, ptr(99), 1)}
	if _, err := menus.BuildTree(items); !errors.Is(err, menus.ErrUnknownParent) {
		t.Fatalf("err = %v, want unknown parent error", err)
	}
}

func TestBuildTreeEmptyInput(t *testing.T) {
	tree, err := menus.BuildTree(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(tree) != 0 {
		t.Fatalf("tree = %v, want empty", tree)
	}
}
