package handlers

import (
	"log"
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Product totals
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Stats
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	s, err := productService.Stats(r.Context())
	if err != nil {
		log.Printf("failed to fetch metrics: %v", err)
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}
	respond(w, http.StatusOK, s)
}
