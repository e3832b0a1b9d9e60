package handlers

import (
	"hospital-api/internal/services"
)

// Handler serves the hospital API routes.
type Handler struct {
	auth         *services.AuthService
	patients     *services.PatientRegistry
	reports      *services.ReportLedger
	exposeErrors bool
}

func NewHandler(auth *services.AuthService, patients *services.PatientRegistry, reports *services.ReportLedger, exposeErrors bool) *Handler {
	return &Handler{
		auth:         auth,
		patients:     patients,
		reports:      reports,
		exposeErrors: exposeErrors,
	}
}
