// utils/respond.go
package utils

import (
	"encoding/json"
	"net/http"
)

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// RespondWithError writes the error envelope: a human-readable message and
// the underlying error string. err may be nil.
func RespondWithError(w http.ResponseWriter, code int, message string, err error) {
	detail := message
	if err != nil {
		detail = err.Error()
	}
	RespondWithJSON(w, code, map[string]string{
		"message": message,
		"error":   detail,
	})
}
