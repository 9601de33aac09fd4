package handler

import (
	"net/http"
	"time"

	"borewell-booking/internal/delivery/dto"
	"borewell-booking/pkg/response"
)

type HealthHandler struct {
	now func() time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// Check answers liveness checks. It does not touch the store.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, dto.HealthResponse{
		Status:    "OK",
		Message:   "BoreWell API is running",
		Timestamp: h.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}
