// Package pathutil provides helpers for working with URL paths: extracting
// resource IDs from route wildcards and normalizing paths for metric labels.
package pathutil

import (
	"errors"
	"net/http"
	"strconv"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ID extracts an integer ID from the named route wildcard.
// Returns ErrInvalidID if the segment is not a positive integer.
//
// Example:
//
//	mux.Handle("GET /articles/{id}", h)
//	id, err := pathutil.ID(r, "id")
func ID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
