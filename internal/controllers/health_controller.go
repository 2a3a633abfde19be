package controllers

import (
	"net/http"

	"github.com/leasingsys/leasing-service/internal/dtos"
	"github.com/leasingsys/leasing-service/internal/services"
	"github.com/leasingsys/leasing-service/internal/utils"
)

type HealthController struct {
	svc *services.LeasingService
}

func NewHealthController(s *services.LeasingService) *HealthController {
	return &HealthController{svc: s}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	// Probe the only external dependency (the record store).
	if err := c.svc.Ping(r.Context()); err != nil {
		utils.Logger.WithError(err).Error("leasing-service unhealthy")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Service unhealthy",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
