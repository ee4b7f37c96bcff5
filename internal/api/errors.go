package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error is the single failure kind the client surfaces: an operation failed
// and Message is the string to show. Status is zero for transport failures.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// errorFromBody builds the display message for a non-2xx response,
// preferring a server-supplied message field over the generic status text.
func errorFromBody(method, path string, status int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)

	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = fmt.Sprintf("%s %s: %s", method, path, http.StatusText(status))
	}
	return &Error{Status: status, Message: msg}
}
