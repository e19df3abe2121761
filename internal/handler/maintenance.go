package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// MaintenanceHandler handles HTTP requests for maintenance records.
type MaintenanceHandler struct {
	maintenanceRepo repository.MaintenanceRepository
	vehicleRepo     repository.VehicleRepository
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(
	maintenanceRepo repository.MaintenanceRepository,
	vehicleRepo repository.VehicleRepository,
) *MaintenanceHandler {
	return &MaintenanceHandler{maintenanceRepo: maintenanceRepo, vehicleRepo: vehicleRepo}
}

// MaintenanceRequest is the HTTP request body for creating or updating a
// maintenance record.
type MaintenanceRequest struct {
	VehicleID   string  `json:"vehicle_id"`
	Date        string  `json:"date"`
	Kind        string  `json:"kind"`
	Description string  `json:"description,omitempty"`
	Cost        float64 `json:"cost"`
}

// MaintenanceResponse is the HTTP representation of a maintenance record.
type MaintenanceResponse struct {
	ID          string  `json:"id"`
	VehicleID   string  `json:"vehicle_id"`
	Date        string  `json:"date"`
	Kind        string  `json:"kind"`
	Description string  `json:"description,omitempty"`
	Cost        float64 `json:"cost"`
}

// Create handles POST /v1/maintenance
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.VehicleID == "" || req.Kind == "" || req.Date == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "vehicle_id, date and kind are required"})
		return
	}
	if req.Cost < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cost cannot be negative"})
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "vehicle not found"})
			return
		}
		respondError(c, err)
		return
	}

	record := &domain.Maintenance{
		ID:          uuid.New().String(),
		VehicleID:   req.VehicleID,
		Date:        date,
		Kind:        req.Kind,
		Description: req.Description,
		Cost:        req.Cost,
		CreatedAt:   time.Now(),
	}

	if err := h.maintenanceRepo.Create(ctx, record); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, maintenanceResponse(record))
}

// Get handles GET /v1/maintenance/:id
func (h *MaintenanceHandler) Get(c *gin.Context) {
	record, err := h.maintenanceRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, maintenanceResponse(record))
}

// GetAll handles GET /v1/maintenance
func (h *MaintenanceHandler) GetAll(c *gin.Context) {
	records, err := h.maintenanceRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]MaintenanceResponse, 0, len(records))
	for _, m := range records {
		response = append(response, maintenanceResponse(m))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /v1/maintenance/:id
func (h *MaintenanceHandler) Update(c *gin.Context) {
	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Cost < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cost cannot be negative"})
		return
	}

	ctx := c.Request.Context()
	record, err := h.maintenanceRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.VehicleID != "" && req.VehicleID != record.VehicleID {
		if _, err := h.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "vehicle not found"})
				return
			}
			respondError(c, err)
			return
		}
		record.VehicleID = req.VehicleID
	}
	if req.Date != "" {
		date, err := time.Parse(dateFormat, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		record.Date = date
	}
	if req.Kind != "" {
		record.Kind = req.Kind
	}
	if req.Description != "" {
		record.Description = req.Description
	}
	if req.Cost > 0 {
		record.Cost = req.Cost
	}

	if err := h.maintenanceRepo.Update(ctx, record); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, maintenanceResponse(record))
}

// Delete handles DELETE /v1/maintenance/:id
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	if err := h.maintenanceRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func maintenanceResponse(m *domain.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:          m.ID,
		VehicleID:   m.VehicleID,
		Date:        m.Date.Format(dateFormat),
		Kind:        m.Kind,
		Description: m.Description,
		Cost:        m.Cost,
	}
}
