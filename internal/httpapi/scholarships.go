package httpapi

import (
	"net/http"
	"time"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/scholarships"
)

type scholarshipPayload struct {
	Title       *string    `json:"title"`
	Slug        *string    `json:"slug"`
	Description *string    `json:"description"`
	Content     *string    `json:"content"`
	CategoryID  *int64     `json:"categoryId"`
	LevelID     *int64     `json:"levelId"`
	CountryID   *int64     `json:"countryId"`
	Amount      *string    `json:"amount"`
	Deadline    *time.Time `json:"deadline"`
	Link        *string    `json:"link"`
	IsFeatured  *bool      `json:"isFeatured"`
	IsPublished *bool      `json:"isPublished"`
}

func (p scholarshipPayload) apply(s *scholarships.Scholarship) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Slug != nil {
		s.Slug = *p.Slug
	}
	if p.Description != nil {
		s.Description = p.Description
	}
	if p.Content != nil {
		s.Content = p.Content
	}
	if p.CategoryID != nil {
		s.CategoryID = p.CategoryID
	}
	if p.LevelID != nil {
		s.LevelID = p.LevelID
	}
	if p.CountryID != nil {
		s.CountryID = p.CountryID
	}
	if p.Amount != nil {
		s.Amount = p.Amount
	}
	if p.Deadline != nil {
		s.Deadline = p.Deadline
	}
	if p.Link != nil {
		s.Link = p.Link
	}
	if p.IsFeatured != nil {
		s.IsFeatured = *p.IsFeatured
	}
	if p.IsPublished != nil {
		s.IsPublished = *p.IsPublished
	}
}

func (api *API) registerScholarshipRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/scholarships", handleList(api.scholarships, scholarshipListQuery))
	mux.HandleFunc("GET /api/scholarships/{id}", handleGet(api.scholarships))
	mux.HandleFunc("GET /api/scholarships/slug/{slug}", handleByIdentifier(api.scholarships, "slug"))
	mux.HandleFunc("POST /api/scholarships", api.requireAdmin(handleCreate(api.scholarships, decodeScholarship)))
	mux.HandleFunc("PUT /api/scholarships/{id}", api.requireAdmin(handleUpdate(api.scholarships, patchScholarship)))
	mux.HandleFunc("DELETE /api/scholarships/{id}", api.requireAdmin(handleDelete(api.scholarships)))
}

// scholarshipListQuery reads ?featured=, ?published=, ?categoryId=,
// ?levelId=, ?countryId=, limit, and offset. Results come back newest
// first.
func scholarshipListQuery(r *http.Request) crud.ListQuery {
	filters := map[string]any{}
	if featured, ok := parseBoolQuery(r, "featured"); ok {
		filters["is_featured"] = featured
	}
	if published, ok := parseBoolQuery(r, "published"); ok {
		filters["is_published"] = published
	}
	if categoryID := parseIntQuery(r, "categoryId"); categoryID > 0 {
		filters["category_id"] = int64(categoryID)
	}
	if levelID := parseIntQuery(r, "levelId"); levelID > 0 {
		filters["level_id"] = int64(levelID)
	}
	if countryID := parseIntQuery(r, "countryId"); countryID > 0 {
		filters["country_id"] = int64(countryID)
	}
	q := crud.ListQuery{
		Order:  crud.Order{Column: "created_at", Desc: true},
		Limit:  parseIntQuery(r, "limit"),
		Offset: parseIntQuery(r, "offset"),
	}
	if len(filters) > 0 {
		q.Filters = filters
	}
	return q
}

func decodeScholarship(r *http.Request) (*scholarships.Scholarship, error) {
	var payload scholarshipPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	s := &scholarships.Scholarship{}
	payload.apply(s)
	return s, nil
}

func patchScholarship(r *http.Request) (func(*scholarships.Scholarship) error, error) {
	var payload scholarshipPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(s *scholarships.Scholarship) error {
		payload.apply(s)
		return nil
	}, nil
}
