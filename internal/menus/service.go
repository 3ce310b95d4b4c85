package menus

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

var ErrParentOutsideMenu = errors.New("menus: parent item belongs to another menu")

// Structure is the UI-ready shape of one menu: the menu row plus its
// resolved item forest.
type Structure struct {
	Menu  *Menu   `json:"menu"`
	Items []*Node `json:"items"`
}

// Service manages menus and items and resolves location structures.
type Service struct {
	Menus *crud.Service[*Menu]
	Items *crud.Service[*MenuItem]
	log   logging.Logger
}

func NewService(menuRepo crud.Repository[*Menu], itemRepo crud.Repository[*MenuItem], log logging.Logger) *Service {
	return &Service{
		Menus: crud.NewService(menuRepo, "menu", MenuHandlers(),
			crud.WithLogger[*Menu](log),
			crud.WithValidator(validateMenu),
		),
		Items: crud.NewService(itemRepo, "menu item", ItemHandlers(),
			crud.WithLogger[*MenuItem](log),
			crud.WithValidator(validateItem),
		),
		log: log,
	}
}

func NewBunService(db *bun.DB, log logging.Logger) *Service {
	return NewService(
		crud.NewBunRepository(db, "menu", MenuHandlers()),
		crud.NewBunRepository(db, "menu item", ItemHandlers()),
		log,
	)
}

// CreateItem creates an item after checking that the parent, when set,
// lives in the same menu.
func (s *Service) CreateItem(ctx context.Context, item *MenuItem) (*MenuItem, error) {
	if _, err := s.Menus.Get(ctx, item.MenuID); err != nil {
		return nil, err
	}
	if err := s.checkParent(ctx, item); err != nil {
		return nil, err
	}
	return s.Items.Create(ctx, item)
}

// UpdateItem applies a patch and re-checks the parent invariant on the
// patched record.
func (s *Service) UpdateItem(ctx context.Context, id int64, apply func(*MenuItem) error) (*MenuItem, error) {
	return s.Items.Update(ctx, id, func(item *MenuItem) error {
		if apply != nil {
			if err := apply(item); err != nil {
				return err
			}
		}
		return s.checkParent(ctx, item)
	})
}

// Structure finds the menu at location, loads its items ordered by display
// position, and builds the nested tree.
func (s *Service) Structure(ctx context.Context, location string) (*Structure, error) {
	menu, err := s.Menus.GetByIdentifier(ctx, location)
	if err != nil {
		return nil, err
	}

	items, err := s.Items.List(ctx, crud.ListQuery{
		Filters: map[string]any{"menu_id": menu.ID},
		Order:   crud.Order{Column: "display_order"},
	})
	if err != nil {
		return nil, err
	}

	tree, err := BuildTree(items)
	if err != nil {
		s.log.Error("menu structure corrupted", "location", location, "error", err)
		return nil, err
	}
	return &Structure{Menu: menu, Items: tree}, nil
}

func (s *Service) checkParent(ctx context.Context, item *MenuItem) error {
	if item.ParentID == nil {
		return nil
	}
	parent, err := s.Items.Get(ctx, *item.ParentID)
	if err != nil {
		if crud.IsNotFound(err) {
			return crud.WrapValidationError(ErrUnknownParent)
		}
		return err
	}
	if parent.MenuID != item.MenuID {
		return crud.WrapValidationError(ErrParentOutsideMenu)
	}

	// Walk up from the proposed parent. Finding the item itself means the
	// new parent is one of its own descendants.
	seen := map[int64]struct{}{}
	for cur := parent; ; {
		if item.ID != 0 && cur.ID == item.ID {
			return crud.WrapValidationError(ErrCyclicItems)
		}
		if cur.ParentID == nil {
			return nil
		}
		if _, ok := seen[cur.ID]; ok {
			return crud.WrapValidationError(ErrCyclicItems)
		}
		seen[cur.ID] = struct{}{}
		next, err := s.Items.Get(ctx, *cur.ParentID)
		if err != nil {
			if crud.IsNotFound(err) {
				return crud.WrapValidationError(ErrUnknownParent)
			}
			return err
		}
		cur = next
	}
}
