package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/catalog"
	"github.com/fullsco/fullsco/internal/crud"
)

type categoryPayload struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (p categoryPayload) apply(c *catalog.Category) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

type levelPayload struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sortOrder"`
	IsActive    *bool   `json:"isActive"`
}

func (p levelPayload) apply(l *catalog.Level) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Slug != nil {
		l.Slug = *p.Slug
	}
	if p.Description != nil {
		l.Description = p.Description
	}
	if p.SortOrder != nil {
		l.SortOrder = *p.SortOrder
	}
	if p.IsActive != nil {
		l.IsActive = *p.IsActive
	}
}

type countryPayload struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	FlagURL  *string `json:"flagUrl"`
	IsActive *bool   `json:"isActive"`
}

func (p countryPayload) apply(c *catalog.Country) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Slug != nil {
		c.Slug = *p.Slug
	}
	if p.FlagURL != nil {
		c.FlagURL = p.FlagURL
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

func (api *API) registerCatalogRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/categories", handleList(api.catalog.Categories, activeListQuery))
	mux.HandleFunc("GET /api/categories/{id}", handleGet(api.catalog.Categories))
	mux.HandleFunc("GET /api/categories/slug/{slug}", handleByIdentifier(api.catalog.Categories, "slug"))
	mux.HandleFunc("POST /api/categories", api.requireAdmin(handleCreate(api.catalog.Categories, decodeCategory)))
	mux.HandleFunc("PUT /api/categories/{id}", api.requireAdmin(handleUpdate(api.catalog.Categories, patchCategory)))
	mux.HandleFunc("DELETE /api/categories/{id}", api.requireAdmin(handleDelete(api.catalog.Categories)))

	mux.HandleFunc("GET /api/levels", handleList(api.catalog.Levels, levelListQuery))
	mux.HandleFunc("GET /api/levels/{id}", handleGet(api.catalog.Levels))
	mux.HandleFunc("GET /api/levels/slug/{slug}", handleByIdentifier(api.catalog.Levels, "slug"))
	mux.HandleFunc("POST /api/levels", api.requireAdmin(handleCreate(api.catalog.Levels, decodeLevel)))
	mux.HandleFunc("PUT /api/levels/{id}", api.requireAdmin(handleUpdate(api.catalog.Levels, patchLevel)))
	mux.HandleFunc("DELETE /api/levels/{id}", api.requireAdmin(handleDelete(api.catalog.Levels)))

	mux.HandleFunc("GET /api/countries", handleList(api.catalog.Countries, activeListQuery))
	mux.HandleFunc("GET /api/countries/{id}", handleGet(api.catalog.Countries))
	mux.HandleFunc("GET /api/countries/slug/{slug}", handleByIdentifier(api.catalog.Countries, "slug"))
	mux.HandleFunc("POST /api/countries", api.requireAdmin(handleCreate(api.catalog.Countries, decodeCountry)))
	mux.HandleFunc("PUT /api/countries/{id}", api.requireAdmin(handleUpdate(api.catalog.Countries, patchCountry)))
	mux.HandleFunc("DELETE /api/countries/{id}", api.requireAdmin(handleDelete(api.catalog.Countries)))
}

// activeListQuery supports ?active= filtering plus limit/offset.
func activeListQuery(r *http.Request) crud.ListQuery {
	q := crud.ListQuery{
		Limit:  parseIntQuery(r, "limit"),
		Offset: parseIntQuery(r, "offset"),
	}
	if active, ok := parseBoolQuery(r, "active"); ok {
		q.Filters = map[string]any{"is_active": active}
	}
	return q
}

func levelListQuery(r *http.Request) crud.ListQuery {
	q := activeListQuery(r)
	q.Order = crud.Order{Column: "sort_order"}
	return q
}

func decodeCategory(r *http.Request) (*catalog.Category, error) {
	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	category := &catalog.Category{IsActive: true}
	payload.apply(category)
	return category, nil
}

func patchCategory(r *http.Request) (func(*catalog.Category) error, error) {
	var payload categoryPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(c *catalog.Category) error {
		payload.apply(c)
		return nil
	}, nil
}

func decodeLevel(r *http.Request) (*catalog.Level, error) {
	var payload levelPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	level := &catalog.Level{IsActive: true}
	payload.apply(level)
	return level, nil
}

func patchLevel(r *http.Request) (func(*catalog.Level) error, error) {
	var payload levelPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(l *catalog.Level) error {
		payload.apply(l)
		return nil
	}, nil
}

func decodeCountry(r *http.Request) (*catalog.Country, error) {
	var payload countryPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	country := &catalog.Country{IsActive: true}
	payload.apply(country)
	return country, nil
}

func patchCountry(r *http.Request) (func(*catalog.Country) error, error) {
	var payload countryPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(c *catalog.Country) error {
		payload.apply(c)
		return nil
	}, nil
}
