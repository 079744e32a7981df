// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"
)

// Sentinel kinds for request handling errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// isNotFound allows the API to translate upstream unknown-entity errors
// to 404 without coupling to the service package's sentinels.
func isNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "unknown")
}

func translateError(w http.ResponseWriter, err error) {
	if isNotFound(err) {
		writeError(w, http.StatusNotFound, "not_found", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err)
}
