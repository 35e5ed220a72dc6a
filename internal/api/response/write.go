package response

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// JSONWithETag writes a JSON response tagged with a strong ETag
func JSONWithETag(w http.ResponseWriter, status int, etag string, data any) {
	w.Header().Set("ETag", fmt.Sprintf("%q", etag))
	JSON(w, status, data)
}

// NoContent writes a 204 No Content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Health is the body of the health check
type Health struct {
	Status string `json:"status"`
	Words  int    `json:"words"`
}
