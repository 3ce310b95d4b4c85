package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/subscribers"
)

type subscriberPayload struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

func (api *API) registerSubscriberRoutes(mux *http.ServeMux) {
	// subscribing is the one public write on the API
	mux.HandleFunc("POST /api/subscribers", handleCreate(api.subscribers, decodeSubscriber))
	mux.HandleFunc("GET /api/subscribers", api.requireAdmin(handleList(api.subscribers, subscriberListQuery)))
	mux.HandleFunc("GET /api/subscribers/{id}", api.requireAdmin(handleGet(api.subscribers)))
	mux.HandleFunc("DELETE /api/subscribers/{id}", api.requireAdmin(handleDelete(api.subscribers)))
}

func subscriberListQuery(r *http.Request) crud.ListQuery {
	return crud.ListQuery{
		Order:  crud.Order{Column: "created_at", Desc: true},
		Limit:  parseIntQuery(r, "limit"),
		Offset: parseIntQuery(r, "offset"),
	}
}

func decodeSubscriber(r *http.Request) (*subscribers.Subscriber, error) {
	var payload subscriberPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return &subscribers.Subscriber{
		Email: payload.Email,
		Name:  payload.Name,
	}, nil
}
