package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/stats"
)

type statPayload struct {
	Title *string `json:"title"`
	Value *string `json:"value"`
	Icon  *string `json:"icon"`
	Order *int    `json:"order"`
}

func (p statPayload) apply(s *stats.Statistic) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Value != nil {
		s.Value = *p.Value
	}
	if p.Icon != nil {
		s.Icon = p.Icon
	}
	if p.Order != nil {
		s.DisplayOrder = *p.Order
	}
}

type reorderPayload struct {
	IDs []int64 `json:"ids"`
}

func (api *API) registerStatRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/statistics", handleList(api.stats.Service, statListQuery))
	mux.HandleFunc("GET /api/statistics/{id}", handleGet(api.stats.Service))
	mux.HandleFunc("POST /api/statistics", api.requireAdmin(handleCreate(api.stats.Service, decodeStat)))
	mux.HandleFunc("PUT /api/statistics/{id}", api.requireAdmin(handleUpdate(api.stats.Service, patchStat)))
	mux.HandleFunc("DELETE /api/statistics/{id}", api.requireAdmin(handleDelete(api.stats.Service)))
	mux.HandleFunc("POST /api/statistics/reorder", api.requireAdmin(api.handleStatReorder))
}

func statListQuery(*http.Request) crud.ListQuery {
	return crud.ListQuery{Order: crud.Order{Column: "display_order"}}
}

func (api *API) handleStatReorder(w http.ResponseWriter, r *http.Request) {
	var payload reorderPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, crud.WrapValidationError(err))
		return
	}
	if err := api.stats.Reorder(r.Context(), payload.IDs); err != nil {
		writeError(w, err)
		return
	}
	records, err := api.stats.List(r.Context(), statListQuery(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func decodeStat(r *http.Request) (*stats.Statistic, error) {
	var payload statPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	stat := &stats.Statistic{}
	payload.apply(stat)
	return stat, nil
}

func patchStat(r *http.Request) (func(*stats.Statistic) error, error) {
	var payload statPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(s *stats.Statistic) error {
		payload.apply(s)
		return nil
	}, nil
}
