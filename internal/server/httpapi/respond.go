package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/chati-cms/chati/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}

// detail strips the sentinel prefix from a wrapped error so the client sees
// only the human part; a bare sentinel falls back to a fixed message.
func detail(err, sentinel error, fallback string) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == "" || msg == sentinel.Error() {
		return fallback
	}
	return msg
}

// writeError maps service errors to stable HTTP responses. Anything not in
// the taxonomy is a 500 with a generic body; internals never leak.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody(detail(err, common.ErrValidation, "Invalid request")))
	case errors.Is(err, common.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("Not found"))
	case errors.Is(err, common.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("Already exists"))
	case errors.Is(err, common.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody("Invalid email or password"))
	case errors.Is(err, common.ErrAccountDisabled):
		writeJSON(w, http.StatusForbidden, errorBody("Account is disabled. Contact administrator."))
	case errors.Is(err, common.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorBody(detail(err, common.ErrForbidden, "Access denied")))
	default:
		writeJSON(w, http.StatusInternalServerError, errorBody("Internal server error"))
	}
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.ErrValidation
	}
	return nil
}

// pagination is the envelope attached to paginated listings.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func newPagination(page, limit, total int) pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// pageParams reads page/limit query parameters with the listing defaults.
func pageParams(r *http.Request) (page, limit int) {
	page, limit = 1, 10
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit
}
