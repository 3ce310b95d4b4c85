package httpapi

import (
	"context"
	"net/http"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/users"
)

// SessionCookie carries the opaque session token.
const SessionCookie = "fullsco_session"

type contextKey struct{ name string }

var userContextKey = contextKey{"user"}

func userFrom(ctx context.Context) *users.User {
	user, _ := ctx.Value(userContextKey).(*users.User)
	return user
}

// requireUser resolves the session cookie to an active user before calling
// next. Missing, unknown, and expired sessions all answer 401.
func (api *API) requireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			writeError(w, users.ErrInvalidCredentials)
			return
		}
		user, err := api.users.Lookup(r.Context(), cookie.Value)
		if err != nil {
			if crud.IsNotFound(err) {
				err = users.ErrInvalidCredentials
			}
			writeError(w, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userContextKey, user)))
	}
}

// requireAdmin additionally gates on the admin role.
func (api *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return api.requireUser(func(w http.ResponseWriter, r *http.Request) {
		if user := userFrom(r.Context()); user == nil || user.Role != users.RoleAdmin {
			writeError(w, errForbidden)
			return
		}
		next(w, r)
	})
}

// requireEditor admits both roles; editors manage content but not accounts.
func (api *API) requireEditor(next http.HandlerFunc) http.HandlerFunc {
	return api.requireUser(next)
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (api *API) registerAuthRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/login", api.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", api.handleLogout)
	mux.HandleFunc("GET /api/auth/me", api.requireUser(api.handleMe))
}

func (api *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload loginPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, crud.WrapValidationError(err))
		return
	}
	user, session, err := api.users.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, user)
}

func (api *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := api.users.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, err)
			return
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusNoContent, nil)
}

func (api *API) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userFrom(r.Context()))
}
