package response

import (
	"encoding/json"
	"net/http"

	"gitlab.com/codejudge.net/internal/static/errs"
)

// Envelope is the body of every API response.
type Envelope struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// WriteError maps err onto its status code. Server-side causes are not
// exposed.
func WriteError(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Message:    errs.Message(err),
		Success:    false,
	})
}

func WriteSuccess(w http.ResponseWriter, data interface{}, message string) {
	writeJSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

func writeJSON(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
