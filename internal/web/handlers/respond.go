package handlers

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
)

type paginationMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
	// maxPage keeps (page-1)*limit within the int32 offset the stores take.
	maxPage = math.MaxInt32/maxPageLimit + 1
)

// pageParams reads page and limit query parameters. Out of range values fall
// back to page 1 and 25 items; pages past maxPage are clamped to it.
func pageParams(r *http.Request) (page, limit, offset int) {
	q := r.URL.Query()

	page, _ = strconv.Atoi(q.Get("page"))
	page = min(max(page, 1), maxPage)
	limit, _ = strconv.Atoi(q.Get("limit"))
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return page, limit, (page - 1) * limit
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
