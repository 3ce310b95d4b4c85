// Package httpapi exposes the JSON REST API under /api.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/users"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Issues  map[string]string `json:"issues,omitempty"`
}

var (
	errBadID     = errors.New("id must be a positive integer")
	errForbidden = errors.New("admin role required")
)

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

// mapError is the single translation point from service errors to HTTP
// statuses. Internal failures get a generic body; the detail is already
// logged at the service layer.
func mapError(err error) (int, errorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorResponse{Error: "internal_error"}
	case errors.Is(err, errBadID):
		return http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()}
	case errors.Is(err, users.ErrInvalidCredentials), errors.Is(err, users.ErrSessionExpired):
		return http.StatusUnauthorized, errorResponse{Error: "unauthorized", Message: "authentication required"}
	case errors.Is(err, errForbidden):
		return http.StatusForbidden, errorResponse{Error: "forbidden", Message: err.Error()}
	case crud.IsValidation(err):
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: err.Error(),
			Issues:  validationIssues(err),
		}
	case crud.IsNotFound(err):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: err.Error()}
	case crud.IsConflict(err):
		return http.StatusConflict, errorResponse{Error: "conflict", Message: err.Error()}
	default:
		return http.StatusInternalServerError, errorResponse{
			Error:   "internal_error",
			Message: "internal server error",
		}
	}
}

func validationIssues(err error) map[string]string {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}
	issues := make(map[string]string, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			issues[field] = ferr.Error()
		}
	}
	return issues
}

func parseID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.PathValue("id"))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return id, nil
}

func parseBoolQuery(r *http.Request, name string) (bool, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return parsed, true
}

func parseIntQuery(r *http.Request, name string) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
