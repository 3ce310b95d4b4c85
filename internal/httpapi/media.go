package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/media"
)

func (api *API) registerMediaRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/media", api.requireEditor(handleList(api.media.Files, mediaListQuery)))
	mux.HandleFunc("GET /api/media/{id}", api.requireEditor(handleGet(api.media.Files)))
	mux.HandleFunc("POST /api/media", api.requireEditor(api.handleMediaUpload))
	mux.HandleFunc("DELETE /api/media/{id}", api.requireEditor(api.handleMediaDelete))
}

func mediaListQuery(r *http.Request) crud.ListQuery {
	return crud.ListQuery{
		Order:  crud.Order{Column: "created_at", Desc: true},
		Limit:  parseIntQuery(r, "limit"),
		Offset: parseIntQuery(r, "offset"),
	}
}

// handleMediaUpload accepts one multipart file under the "file" field.
func (api *API) handleMediaUpload(w http.ResponseWriter, r *http.Request) {
	// cap the whole request a little above the file limit to leave room
	// for multipart framing
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, crud.WrapValidationError(err))
		return
	}
	defer file.Close()

	input := media.UploadInput{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Reader:       file,
	}
	if user := userFrom(r.Context()); user != nil {
		input.UploadedBy = &user.ID
	}

	created, err := api.media.Upload(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (api *API) handleMediaDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := api.media.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
