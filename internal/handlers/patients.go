package handlers

import (
	"net/http"

	"hospital-api/internal/middleware"
	"hospital-api/internal/services"

	"github.com/gin-gonic/gin"
)

// --- Structs for Request Binding ---

type RegisterPatientRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type CreateReportRequest struct {
	Status statusCode `json:"status"`
}

// --- Handler Functions ---

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "Failure", "message": "Invalid patient details", "err": bindingErrors(err)})
		return
	}

	view, outcome, err := h.patients.RegisterOrFetch(c.Request.Context(), req.Phone, req.Name, middleware.CurrentDoctor(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	status, message := http.StatusCreated, "Patient registered"
	if outcome == services.OutcomeExists {
		status, message = http.StatusOK, "Patient exists"
	}
	c.JSON(status, gin.H{"status": "Success", "message": message, "data": view})
}

// CreateReport files a report for the patient identified by the :phone path
// parameter. A body that does not parse leaves the status invalid, so the
// patient lookup still decides the error first.
func (h *Handler) CreateReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Status = statusCode{}
	}

	err := h.reports.CreateReport(c.Request.Context(), c.Param("phone"), req.Status.Code(), middleware.CurrentDoctor(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "Success", "message": "New report created"})
}

func (h *Handler) AllReports(c *gin.Context) {
	result, err := h.reports.ListForPatient(c.Request.Context(), c.Param("phone"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "Success", "message": "All Reports", "data": result})
}
