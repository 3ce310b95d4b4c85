package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/stories"
)

type storyPayload struct {
	Name            *string `json:"name"`
	Title           *string `json:"title"`
	Slug            *string `json:"slug"`
	Content         *string `json:"content"`
	ImageURL        *string `json:"imageUrl"`
	ScholarshipName *string `json:"scholarshipName"`
	IsPublished     *bool   `json:"isPublished"`
}

func (p storyPayload) apply(s *stories.SuccessStory) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Slug != nil {
		s.Slug = *p.Slug
	}
	if p.Content != nil {
		s.Content = *p.Content
	}
	if p.ImageURL != nil {
		s.ImageURL = p.ImageURL
	}
	if p.ScholarshipName != nil {
		s.ScholarshipName = p.ScholarshipName
	}
	if p.IsPublished != nil {
		s.IsPublished = *p.IsPublished
	}
}

func (api *API) registerStoryRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/success-stories", handleList(api.stories, storyListQuery))
	mux.HandleFunc("GET /api/success-stories/{id}", handleGet(api.stories))
	mux.HandleFunc("GET /api/success-stories/slug/{slug}", handleByIdentifier(api.stories, "slug"))
	mux.HandleFunc("POST /api/success-stories", api.requireEditor(handleCreate(api.stories, decodeStory)))
	mux.HandleFunc("PUT /api/success-stories/{id}", api.requireEditor(handleUpdate(api.stories, patchStory)))
	mux.HandleFunc("DELETE /api/success-stories/{id}", api.requireEditor(handleDelete(api.stories)))
}

func storyListQuery(r *http.Request) crud.ListQuery {
	q := crud.ListQuery{
		Order:  crud.Order{Column: "created_at", Desc: true},
		Limit:  parseIntQuery(r, "limit"),
		Offset: parseIntQuery(r, "offset"),
	}
	if published, ok := parseBoolQuery(r, "published"); ok {
		q.Filters = map[string]any{"is_published": published}
	}
	return q
}

func decodeStory(r *http.Request) (*stories.SuccessStory, error) {
	var payload storyPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	story := &stories.SuccessStory{}
	payload.apply(story)
	return story, nil
}

func patchStory(r *http.Request) (func(*stories.SuccessStory) error, error) {
	var payload storyPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(s *stories.SuccessStory) error {
		payload.apply(s)
		return nil
	}, nil
}
