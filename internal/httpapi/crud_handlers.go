package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
)

// The handlers below are the one controller implementation shared by every
// entity; the per-entity files contribute payload decoding and routes.

func handleList[T any](svc *crud.Service[T], query func(*http.Request) crud.ListQuery) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := crud.ListQuery{}
		if query != nil {
			q = query(r)
		}
		records, err := svc.List(r.Context(), q)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func handleGet[T any](svc *crud.Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		record, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func handleByIdentifier[T any](svc *crud.Service[T], param string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := svc.GetByIdentifier(r.Context(), r.PathValue(param))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func handleCreate[T any](svc *crud.Service[T], decode func(*http.Request) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, err := decode(r)
		if err != nil {
			writeError(w, crud.WrapValidationError(err))
			return
		}
		created, err := svc.Create(r.Context(), record)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func handleUpdate[T any](svc *crud.Service[T], patch func(*http.Request) (func(T) error, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		apply, err := patch(r)
		if err != nil {
			writeError(w, crud.WrapValidationError(err))
			return
		}
		updated, err := svc.Update(r.Context(), id, apply)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleDelete[T any](svc *crud.Service[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusNoContent, nil)
	}
}
