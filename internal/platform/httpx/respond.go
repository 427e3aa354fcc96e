// Package httpx provides HTTP response utilities for the JSON API.
package httpx

import (
	"encoding/json"
	"net/http"
)

// StatusMessage is the shared response envelope for status and error
// bodies. The embedded status always mirrors the HTTP status code of the
// response carrying it.
type StatusMessage struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Message sends a status-message envelope.
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, StatusMessage{Message: message, Status: status})
}

// DecodeJSON decodes a JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}
