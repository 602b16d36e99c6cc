package handlers

import (
	"net/http"
	"time"

	"ecom-product/utils"
)

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	utils.Send(w, http.StatusOK, map[string]interface{}{
		"environment": h.Env,
		"uptime":      time.Since(startTime).Seconds(),
	}, "Server is healthy")
}
