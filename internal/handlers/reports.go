package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ReportsByStatus lists reports across all patients for the :status code.
func (h *Handler) ReportsByStatus(c *gin.Context) {
	code, ok := parseStatusCode(c.Param("status"))
	if !ok {
		code = -1
	}

	result, err := h.reports.FilterByStatus(c.Request.Context(), code)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "Success",
		"report_status": result.ReportStatus,
		"data":          result.Reports,
	})
}
