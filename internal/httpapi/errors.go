package httpapi

import (
	"encoding/json"
	"net/http"

	"khsumd/pkg/types"
)

// Bilingual user-facing messages. Validation errors carry both Khmer and
// English, matching what the UI shows.
const (
	msgNoText       = "គ្មានអត្ថបទ (No text provided)"
	msgTextTooShort = "អត្ថបទខ្លីពេក (Text too short)"
	msgInternal     = "កំហុសក្នុងប្រព័ន្ធ (Internal server error)"
)

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
