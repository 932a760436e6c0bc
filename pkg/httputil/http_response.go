package httputil

import (
	"net/http"

	"github.com/bytedance/sonic"
)

const (
	CodeOK    = 0
	CodeError = 1
)

type Envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// WriteErrorResponse writes {code:1, message} with the given HTTP status.
// details, when set, is appended to the message so the client sees the cause.
func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	if details != nil {
		message += ": " + details.Error()
	}
	writeEnvelope(w, statusCode, Envelope{
		Code:    CodeError,
		Message: message,
	})
}

// WriteJSONResponse writes {code:0, data}.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	writeEnvelope(w, statusCode, Envelope{
		Code: CodeOK,
		Data: body,
	})
}

func writeEnvelope(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	sonic.ConfigDefault.NewEncoder(w).Encode(env)
}
