package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/api-sage/cfc-rewards/src/internal/commons"
)

func writeError(w http.ResponseWriter, status int, message string, details ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(commons.ErrorResponse[struct{}](message, details...))
}
