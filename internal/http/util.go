package httpx

import (
	"net/http"
	"strconv"
	"strings"
)

// parseID converts a path or form value to a positive int64 ID.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// formString returns a trimmed form value.
func formString(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}

// formInt returns a form value parsed as int, or 0 when absent/invalid.
func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(formString(r, key))
	if err != nil {
		return 0
	}
	return n
}
