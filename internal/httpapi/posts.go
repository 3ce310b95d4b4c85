package httpapi

import (
	"net/http"
	"strings"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/posts"
)

type postPayload struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Content    *string `json:"content"`
	Excerpt    *string `json:"excerpt"`
	AuthorID   *int64  `json:"authorId"`
	Status     *string `json:"status"`
	IsFeatured *bool   `json:"isFeatured"`
}

func (p postPayload) apply(post *posts.Post) {
	if p.Title != nil {
		post.Title = *p.Title
	}
	if p.Slug != nil {
		post.Slug = *p.Slug
	}
	if p.Content != nil {
		post.Content = *p.Content
	}
	if p.Excerpt != nil {
		post.Excerpt = p.Excerpt
	}
	if p.AuthorID != nil {
		post.AuthorID = p.AuthorID
	}
	if p.Status != nil {
		post.Status = *p.Status
	}
	if p.IsFeatured != nil {
		post.IsFeatured = *p.IsFeatured
	}
}

type tagPayload struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type postTagsPayload struct {
	TagIDs []int64 `json:"tagIds"`
}

// postView is the public read shape: the record plus rendered HTML and
// resolved tags.
type postView struct {
	*posts.Post
	RenderedHTML string       `json:"renderedHtml"`
	Tags         []*posts.Tag `json:"tags"`
}

func (api *API) registerPostRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/posts", handleList(api.posts.Posts, postListQuery))
	mux.HandleFunc("GET /api/posts/{id}", handleGet(api.posts.Posts))
	mux.HandleFunc("GET /api/posts/slug/{slug}", api.handlePostBySlug)
	mux.HandleFunc("POST /api/posts", api.requireEditor(handleCreate(api.posts.Posts, decodePost)))
	mux.HandleFunc("PUT /api/posts/{id}", api.requireEditor(handleUpdate(api.posts.Posts, patchPost)))
	mux.HandleFunc("DELETE /api/posts/{id}", api.requireEditor(api.handlePostDelete))
	mux.HandleFunc("GET /api/posts/{id}/tags", api.handlePostTags)
	mux.HandleFunc("PUT /api/posts/{id}/tags", api.requireEditor(api.handlePostSetTags))

	mux.HandleFunc("GET /api/tags", handleList(api.posts.Tags, nil))
	mux.HandleFunc("GET /api/tags/{id}", handleGet(api.posts.Tags))
	mux.HandleFunc("POST /api/tags", api.requireEditor(handleCreate(api.posts.Tags, decodeTag)))
	mux.HandleFunc("DELETE /api/tags/{id}", api.requireEditor(handleDelete(api.posts.Tags)))
}

func postListQuery(r *http.Request) crud.ListQuery {
	filters := map[string]any{}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		filters["status"] = status
	}
	if featured, ok := parseBoolQuery(r, "featured"); ok {
		filters["is_featured"] = featured
	}
	if authorID := parseIntQuery(r, "authorId"); authorID > 0 {
		filters["author_id"] = int64(authorID)
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

// handlePostBySlug enriches the public read with rendered HTML and tags.
func (api *API) handlePostBySlug(w http.ResponseWriter, r *http.Request) {
	post, err := api.posts.Posts.GetByIdentifier(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	rendered, err := api.render.Render(post.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	tags, err := api.posts.TagsFor(r.Context(), post.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, postView{Post: post, RenderedHTML: rendered, Tags: tags})
}

func (api *API) handlePostDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := api.posts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *API) handlePostTags(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	tags, err := api.posts.TagsFor(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (api *API) handlePostSetTags(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload postTagsPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, crud.WrapValidationError(err))
		return
	}
	if err := api.posts.SetTags(r.Context(), id, payload.TagIDs); err != nil {
		writeError(w, err)
		return
	}
	tags, err := api.posts.TagsFor(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func decodePost(r *http.Request) (*posts.Post, error) {
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	post := &posts.Post{Status: posts.StatusDraft}
	payload.apply(post)
	return post, nil
}

func patchPost(r *http.Request) (func(*posts.Post) error, error) {
	var payload postPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(p *posts.Post) error {
		payload.apply(p)
		return nil
	}, nil
}

func decodeTag(r *http.Request) (*posts.Tag, error) {
	var payload tagPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	tag := &posts.Tag{}
	if payload.Name != nil {
		tag.Name = *payload.Name
	}
	if payload.Slug != nil {
		tag.Slug = *payload.Slug
	}
	return tag, nil
}
