package httpapi

import (
	"errors"
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/users"
)

type userCreatePayload struct {
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	DisplayName *string `json:"displayName"`
	IsActive    *bool   `json:"isActive"`
}

type userUpdatePayload struct {
	Email       *string `json:"email"`
	Role        *string `json:"role"`
	DisplayName *string `json:"displayName"`
	IsActive    *bool   `json:"isActive"`
}

type passwordPayload struct {
	Password string `json:"password"`
}

func (api *API) registerUserRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/users", api.requireAdmin(handleList(api.users.Users, nil)))
	mux.HandleFunc("GET /api/users/{id}", api.requireAdmin(handleGet(api.users.Users)))
	mux.HandleFunc("POST /api/users", api.requireAdmin(api.handleUserCreate))
	mux.HandleFunc("PUT /api/users/{id}", api.requireAdmin(handleUpdate(api.users.Users, patchUser)))
	mux.HandleFunc("PUT /api/users/{id}/password", api.requireAdmin(api.handleUserPassword))
	mux.HandleFunc("DELETE /api/users/{id}", api.requireAdmin(api.handleUserDelete))
}

func (api *API) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	var payload userCreatePayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, crud.WrapValidationError(err))
		return
	}
	user := &users.User{
		Username:    payload.Username,
		Email:       payload.Email,
		Role:        payload.Role,
		DisplayName: payload.DisplayName,
		IsActive:    true,
	}
	if payload.IsActive != nil {
		user.IsActive = *payload.IsActive
	}
	created, err := api.users.Create(r.Context(), user, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func patchUser(r *http.Request) (func(*users.User) error, error) {
	var payload userUpdatePayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(u *users.User) error {
		if payload.Email != nil {
			u.Email = *payload.Email
		}
		if payload.Role != nil {
			u.Role = *payload.Role
		}
		if payload.DisplayName != nil {
			u.DisplayName = payload.DisplayName
		}
		if payload.IsActive != nil {
			u.IsActive = *payload.IsActive
		}
		return nil
	}, nil
}

func (api *API) handleUserPassword(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload passwordPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, crud.WrapValidationError(err))
		return
	}
	if err := api.users.SetPassword(r.Context(), id, payload.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// handleUserDelete refuses to let admins remove their own account.
func (api *API) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if current := userFrom(r.Context()); current != nil && current.ID == id {
		writeError(w, crud.WrapValidationError(errors.New("cannot delete the signed-in account")))
		return
	}
	if err := api.users.Users.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
