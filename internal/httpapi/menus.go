package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/menus"
)

type menuPayload struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
}

func (p menuPayload) apply(m *menus.Menu) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Location != nil {
		m.Location = *p.Location
	}
}

type menuItemPayload struct {
	MenuID        *int64  `json:"menuId"`
	ParentID      *int64  `json:"parentId"`
	Title         *string `json:"title"`
	Order         *int    `json:"order"`
	Type          *string `json:"type"`
	PageID        *int64  `json:"pageId"`
	CategoryID    *int64  `json:"categoryId"`
	LevelID       *int64  `json:"levelId"`
	CountryID     *int64  `json:"countryId"`
	ScholarshipID *int64  `json:"scholarshipId"`
	PostID        *int64  `json:"postId"`
	URL           *string `json:"url"`
}

func (p menuItemPayload) apply(item *menus.MenuItem) {
	if p.MenuID != nil {
		item.MenuID = *p.MenuID
	}
	if p.ParentID != nil {
		item.ParentID = p.ParentID
	}
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Order != nil {
		item.DisplayOrder = *p.Order
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.PageID != nil {
		item.PageID = p.PageID
	}
	if p.CategoryID != nil {
		item.CategoryID = p.CategoryID
	}
	if p.LevelID != nil {
		item.LevelID = p.LevelID
	}
	if p.CountryID != nil {
		item.CountryID = p.CountryID
	}
	if p.ScholarshipID != nil {
		item.ScholarshipID = p.ScholarshipID
	}
	if p.PostID != nil {
		item.PostID = p.PostID
	}
	if p.URL != nil {
		item.URL = p.URL
	}
}

func (api *API) registerMenuRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/menu-structure/{location}", api.handleMenuStructure)

	mux.HandleFunc("GET /api/menus", handleList(api.menus.Menus, nil))
	mux.HandleFunc("GET /api/menus/{id}", handleGet(api.menus.Menus))
	mux.HandleFunc("GET /api/menus/{id}/items", api.handleMenuItems)
	mux.HandleFunc("POST /api/menus", api.requireAdmin(handleCreate(api.menus.Menus, decodeMenu)))
	mux.HandleFunc("PUT /api/menus/{id}", api.requireAdmin(handleUpdate(api.menus.Menus, patchMenu)))
	mux.HandleFunc("DELETE /api/menus/{id}", api.requireAdmin(handleDelete(api.menus.Menus)))

	mux.HandleFunc("POST /api/menu-items", api.requireAdmin(api.handleMenuItemCreate))
	mux.HandleFunc("PUT /api/menu-items/{id}", api.requireAdmin(api.handleMenuItemUpdate))
	mux.HandleFunc("DELETE /api/menu-items/{id}", api.requireAdmin(handleDelete(api.menus.Items)))
}

func (api *API) handleMenuStructure(w http.ResponseWriter, r *http.Request) {
	structure, err := api.menus.Structure(r.Context(), r.PathValue("location"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, structure)
}

// handleMenuItems returns the flat, display-ordered item list of one menu.
func (api *API) handleMenuItems(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if _, err := api.menus.Menus.Get(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	items, err := api.menus.Items.List(r.Context(), crud.ListQuery{
		Filters: map[string]any{"menu_id": id},
		Order:   crud.Order{Column: "display_order"},
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (api *API) handleMenuItemCreate(w http.ResponseWriter, r *http.Request) {
	var payload menuItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, crud.WrapValidationError(err))
		return
	}
	item := &menus.MenuItem{}
	payload.apply(item)
	created, err := api.menus.CreateItem(r.Context(), item)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) handleMenuItemUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload menuItemPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, crud.WrapValidationError(err))
		return
	}
	updated, err := api.menus.UpdateItem(r.Context(), id, func(item *menus.MenuItem) error {
		payload.apply(item)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func decodeMenu(r *http.Request) (*menus.Menu, error) {
	var payload menuPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	menu := &menus.Menu{}
	payload.apply(menu)
	return menu, nil
}

func patchMenu(r *http.Request) (func(*menus.Menu) error, error) {
	var payload menuPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(m *menus.Menu) error {
		payload.apply(m)
		return nil
	}, nil
}
