package handlers

import "net/http"

// Health is a minimal liveness probe.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "foodbridge-match-service",
	})
}
