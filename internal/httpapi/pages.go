package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/pages"
)

type pagePayload struct {
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Content         *string `json:"content"`
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	IsPublished     *bool   `json:"isPublished"`
}

func (p pagePayload) apply(page *pages.Page) {
	if p.Title != nil {
		page.Title = *p.Title
	}
	if p.Slug != nil {
		page.Slug = *p.Slug
	}
	if p.Content != nil {
		page.Content = *p.Content
	}
	if p.MetaTitle != nil {
		page.MetaTitle = p.MetaTitle
	}
	if p.MetaDescription != nil {
		page.MetaDescription = p.MetaDescription
	}
	if p.IsPublished != nil {
		page.IsPublished = *p.IsPublished
	}
}

type pageView struct {
	*pages.Page
	RenderedHTML string `json:"renderedHtml"`
}

func (api *API) registerPageRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/pages", handleList(api.pages, pageListQuery))
	mux.HandleFunc("GET /api/pages/{id}", handleGet(api.pages))
	mux.HandleFunc("GET /api/pages/slug/{slug}", api.handlePageBySlug)
	mux.HandleFunc("POST /api/pages", api.requireEditor(handleCreate(api.pages, decodePage)))
	mux.HandleFunc("PUT /api/pages/{id}", api.requireEditor(handleUpdate(api.pages, patchPage)))
	mux.HandleFunc("DELETE /api/pages/{id}", api.requireEditor(handleDelete(api.pages)))
}

func pageListQuery(r *http.Request) crud.ListQuery {
	q := crud.ListQuery{
		Limit:  parseIntQuery(r, "limit"),
		Offset: parseIntQuery(r, "offset"),
	}
	if published, ok := parseBoolQuery(r, "published"); ok {
		q.Filters = map[string]any{"is_published": published}
	}
	return q
}

func (api *API) handlePageBySlug(w http.ResponseWriter, r *http.Request) {
	page, err := api.pages.GetByIdentifier(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	rendered, err := api.render.Render(page.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageView{Page: page, RenderedHTML: rendered})
}

func decodePage(r *http.Request) (*pages.Page, error) {
	var payload pagePayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	page := &pages.Page{}
	payload.apply(page)
	return page, nil
}

func patchPage(r *http.Request) (func(*pages.Page) error, error) {
	var payload pagePayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(p *pages.Page) error {
		payload.apply(p)
		return nil
	}, nil
}
