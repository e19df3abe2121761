package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// FineHandler handles HTTP requests for traffic fines.
type FineHandler struct {
	fineRepo    repository.FineRepository
	vehicleRepo repository.VehicleRepository
	driverRepo  repository.DriverRepository
}

// NewFineHandler creates a new FineHandler.
func NewFineHandler(
	fineRepo repository.FineRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
) *FineHandler {
	return &FineHandler{fineRepo: fineRepo, vehicleRepo: vehicleRepo, driverRepo: driverRepo}
}

// FineRequest is the HTTP request body for creating or updating a fine.
// driver_id is optional: a fine may not be attributable to a driver.
type FineRequest struct {
	VehicleID   string  `json:"vehicle_id"`
	DriverID    string  `json:"driver_id,omitempty"`
	Date        string  `json:"date"`
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// FineResponse is the HTTP representation of a fine.
type FineResponse struct {
	ID          string  `json:"id"`
	VehicleID   string  `json:"vehicle_id"`
	DriverID    string  `json:"driver_id,omitempty"`
	Date        string  `json:"date"`
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// Create handles POST /v1/fines
func (h *FineHandler) Create(c *gin.Context) {
	var req FineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.VehicleID == "" || req.Kind == "" || req.Date == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "vehicle_id, date and kind are required"})
		return
	}
	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount cannot be negative"})
		return
	}

	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}

	ctx := c.Request.Context()
	if !h.referencesExist(c, ctx, req.VehicleID, req.DriverID) {
		return
	}

	fine := &domain.Fine{
		ID:          uuid.New().String(),
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		Date:        date,
		Kind:        req.Kind,
		Amount:      req.Amount,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := h.fineRepo.Create(ctx, fine); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, fineResponse(fine))
}

// Get handles GET /v1/fines/:id
func (h *FineHandler) Get(c *gin.Context) {
	fine, err := h.fineRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, fineResponse(fine))
}

// GetAll handles GET /v1/fines
func (h *FineHandler) GetAll(c *gin.Context) {
	fines, err := h.fineRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]FineResponse, 0, len(fines))
	for _, f := range fines {
		response = append(response, fineResponse(f))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /v1/fines/:id
func (h *FineHandler) Update(c *gin.Context) {
	var req FineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Amount < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "amount cannot be negative"})
		return
	}

	ctx := c.Request.Context()
	fine, err := h.fineRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.VehicleID != "" && req.VehicleID != fine.VehicleID {
		if !h.referencesExist(c, ctx, req.VehicleID, "") {
			return
		}
		fine.VehicleID = req.VehicleID
	}
	if req.DriverID != "" && req.DriverID != fine.DriverID {
		if !h.referencesExist(c, ctx, "", req.DriverID) {
			return
		}
		fine.DriverID = req.DriverID
	}
	if req.Date != "" {
		date, err := time.Parse(dateFormat, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "date must be YYYY-MM-DD"})
			return
		}
		fine.Date = date
	}
	if req.Kind != "" {
		fine.Kind = req.Kind
	}
	if req.Amount > 0 {
		fine.Amount = req.Amount
	}
	if req.Description != "" {
		fine.Description = req.Description
	}

	if err := h.fineRepo.Update(ctx, fine); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, fineResponse(fine))
}

// Delete handles DELETE /v1/fines/:id
func (h *FineHandler) Delete(c *gin.Context) {
	if err := h.fineRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// referencesExist verifies the vehicle and driver references, writing the
// response itself on failure. Empty ids are skipped.
func (h *FineHandler) referencesExist(c *gin.Context, ctx context.Context, vehicleID, driverID string) bool {
	if vehicleID != "" {
		if _, err := h.vehicleRepo.GetByID(ctx, vehicleID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "vehicle not found"})
				return false
			}
			respondError(c, err)
			return false
		}
	}
	if driverID != "" {
		if _, err := h.driverRepo.GetByID(ctx, driverID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "driver not found"})
				return false
			}
			respondError(c, err)
			return false
		}
	}
	return true
}

func fineResponse(f *domain.Fine) FineResponse {
	return FineResponse{
		ID:          f.ID,
		VehicleID:   f.VehicleID,
		DriverID:    f.DriverID,
		Date:        f.Date.Format(dateFormat),
		Kind:        f.Kind,
		Amount:      f.Amount,
		Description: f.Description,
	}
}
