package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fleet/internal/service"
)

// ReportHandler exposes the aggregate reports over HTTP.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// VehicleCosts handles GET /v1/reports/vehicle-costs
func (h *ReportHandler) VehicleCosts(c *gin.Context) {
	rows, err := h.reportService.VehicleCosts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// VehicleKilometers handles GET /v1/reports/vehicle-km
// Supports ?format=csv for a CSV download of the full report.
func (h *ReportHandler) VehicleKilometers(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}

	if c.Query("format") == "csv" {
		data, err := h.reportService.VehicleKilometersCSV(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="vehicle-km.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
		return
	}

	report, err := h.reportService.VehicleKilometers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// DriverFines handles GET /v1/reports/driver-fines
func (h *ReportHandler) DriverFines(c *gin.Context) {
	rows, err := h.reportService.DriverFines(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// DriverRentals handles GET /v1/reports/driver-rentals
func (h *ReportHandler) DriverRentals(c *gin.Context) {
	filter, ok := parseReportFilter(c)
	if !ok {
		return
	}

	report, err := h.reportService.DriverRentals(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Summary handles GET /v1/reports/summary
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportService.Summarize(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// parseReportFilter reads the shared report query parameters. On a bad
// parameter it writes the error response and returns ok=false.
func parseReportFilter(c *gin.Context) (service.ReportFilter, bool) {
	var filter service.ReportFilter

	if raw := c.Query("start_date"); raw != "" {
		date, err := time.Parse(dateFormat, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
			return filter, false
		}
		filter.StartDate = &date
	}
	if raw := c.Query("end_date"); raw != "" {
		date, err := time.Parse(dateFormat, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
			return filter, false
		}
		filter.EndDate = &date
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page must be a positive integer"})
			return filter, false
		}
		filter.Page = page
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
			return filter, false
		}
		filter.Limit = limit
	}

	filter.Sort = c.Query("sort")
	filter.Desc = c.Query("order") == "desc"

	return filter, true
}
