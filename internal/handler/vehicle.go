package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet/internal/domain"
	internalRedis "fleet/internal/redis"
	"fleet/internal/repository"
)

// VehicleHandler handles HTTP requests for vehicles.
type VehicleHandler struct {
	vehicleRepo    repository.VehicleRepository
	departmentRepo repository.DepartmentRepository
	cache          *internalRedis.CacheStore
}

// NewVehicleHandler creates a new VehicleHandler. cache may be nil.
func NewVehicleHandler(
	vehicleRepo repository.VehicleRepository,
	departmentRepo repository.DepartmentRepository,
	cache *internalRedis.CacheStore,
) *VehicleHandler {
	return &VehicleHandler{
		vehicleRepo:    vehicleRepo,
		departmentRepo: departmentRepo,
		cache:          cache,
	}
}

// VehicleRequest is the HTTP request body for creating or updating a vehicle.
type VehicleRequest struct {
	Plate        string `json:"plate"`
	Type         string `json:"type"`
	DepartmentID string `json:"department_id"`
}

// VehicleResponse is the HTTP representation of a vehicle.
type VehicleResponse struct {
	ID           string `json:"id"`
	Plate        string `json:"plate"`
	Type         string `json:"type"`
	DepartmentID string `json:"department_id"`
}

// Create handles POST /v1/vehicles
func (h *VehicleHandler) Create(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Plate == "" || req.Type == "" || req.DepartmentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "plate, type and department_id are required"})
		return
	}

	if _, err := h.departmentRepo.GetByID(c.Request.Context(), req.DepartmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "department not found"})
			return
		}
		respondError(c, err)
		return
	}

	vehicle := &domain.Vehicle{
		ID:           uuid.New().String(),
		Plate:        req.Plate,
		Type:         req.Type,
		DepartmentID: req.DepartmentID,
		CreatedAt:    time.Now(),
	}

	if err := h.vehicleRepo.Create(c.Request.Context(), vehicle); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, vehicleResponse(vehicle))
}

// Get handles GET /v1/vehicles/:id
func (h *VehicleHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	if h.cache != nil {
		if cached, err := h.cache.GetVehicle(ctx, id); err == nil && cached != nil {
			respondJSON(c, http.StatusOK, VehicleResponse{
				ID:           cached.ID,
				Plate:        cached.Plate,
				Type:         cached.Type,
				DepartmentID: cached.DepartmentID,
			})
			return
		}
	}

	vehicle, err := h.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.SetVehicle(ctx, &internalRedis.CachedVehicle{
			ID:           vehicle.ID,
			Plate:        vehicle.Plate,
			Type:         vehicle.Type,
			DepartmentID: vehicle.DepartmentID,
		})
	}

	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}

// GetAll handles GET /v1/vehicles
func (h *VehicleHandler) GetAll(c *gin.Context) {
	vehicles, err := h.vehicleRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		response = append(response, vehicleResponse(v))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /v1/vehicles/:id
func (h *VehicleHandler) Update(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	vehicle, err := h.vehicleRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.Plate != "" {
		vehicle.Plate = req.Plate
	}
	if req.Type != "" {
		vehicle.Type = req.Type
	}
	if req.DepartmentID != "" && req.DepartmentID != vehicle.DepartmentID {
		if _, err := h.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "department not found"})
				return
			}
			respondError(c, err)
			return
		}
		vehicle.DepartmentID = req.DepartmentID
	}

	if err := h.vehicleRepo.Update(ctx, vehicle); err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateVehicle(ctx, vehicle.ID)
	}

	respondJSON(c, http.StatusOK, vehicleResponse(vehicle))
}

// Delete handles DELETE /v1/vehicles/:id
func (h *VehicleHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if err := h.vehicleRepo.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}

	if h.cache != nil {
		_ = h.cache.InvalidateVehicle(ctx, id)
	}

	c.Status(http.StatusNoContent)
}

func vehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID,
		Plate:        v.Plate,
		Type:         v.Type,
		DepartmentID: v.DepartmentID,
	}
}
