package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"flightnet/store"
)

// appStore is the single shared dataset every handler reads and mutates.
// Injected once from main before the router starts serving.
var appStore *store.Store

func Init(s *store.Store) {
	appStore = s
}

func sendErrorResponse(w http.ResponseWriter, message string, code int) {
	log.Printf("Error: %s (Code: %d)", message, code)

	response := map[string]interface{}{
		"error":     message,
		"code":      code,
		"status":    http.StatusText(code),
		"timestamp": time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

func sendJSONResponse(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

// HealthCheck reports liveness plus the current dataset sizes.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	airlines, airports, routes := appStore.Counts()
	sendJSONResponse(w, map[string]interface{}{
		"status":   "ok",
		"airlines": airlines,
		"airports": airports,
		"routes":   routes,
	})
}
