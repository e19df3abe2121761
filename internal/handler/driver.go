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

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverRepo     repository.DriverRepository
	departmentRepo repository.DepartmentRepository
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverRepo repository.DriverRepository, departmentRepo repository.DepartmentRepository) *DriverHandler {
	return &DriverHandler{driverRepo: driverRepo, departmentRepo: departmentRepo}
}

// DriverRequest is the HTTP request body for creating or updating a driver.
type DriverRequest struct {
	CPF           string `json:"cpf"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	DepartmentID  string `json:"department_id"`
}

// DriverResponse is the HTTP representation of a driver.
type DriverResponse struct {
	ID            string `json:"id"`
	CPF           string `json:"cpf"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	DepartmentID  string `json:"department_id"`
}

// Create handles POST /v1/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.CPF == "" || req.Name == "" || req.LicenseNumber == "" || req.DepartmentID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cpf, name, license_number and department_id are required"})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "department not found"})
			return
		}
		respondError(c, err)
		return
	}

	// Check if a driver with this CPF is already registered.
	existing, err := h.driverRepo.GetByCPF(ctx, req.CPF)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		respondError(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "driver with this cpf already exists"})
		return
	}

	driver := &domain.Driver{
		ID:            uuid.New().String(),
		CPF:           req.CPF,
		Name:          req.Name,
		LicenseNumber: req.LicenseNumber,
		DepartmentID:  req.DepartmentID,
		CreatedAt:     time.Now(),
	}

	if err := h.driverRepo.Create(ctx, driver); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, driverResponse(driver))
}

// Get handles GET /v1/drivers/:id
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.driverRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, driverResponse(driver))
}

// GetAll handles GET /v1/drivers
func (h *DriverHandler) GetAll(c *gin.Context) {
	drivers, err := h.driverRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		response = append(response, driverResponse(d))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /v1/drivers/:id
func (h *DriverHandler) Update(c *gin.Context) {
	var req DriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	driver, err := h.driverRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.CPF != "" {
		driver.CPF = req.CPF
	}
	if req.Name != "" {
		driver.Name = req.Name
	}
	if req.LicenseNumber != "" {
		driver.LicenseNumber = req.LicenseNumber
	}
	if req.DepartmentID != "" && req.DepartmentID != driver.DepartmentID {
		if _, err := h.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, ErrorResponse{Error: "department not found"})
				return
			}
			respondError(c, err)
			return
		}
		driver.DepartmentID = req.DepartmentID
	}

	if err := h.driverRepo.Update(ctx, driver); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, driverResponse(driver))
}

// Delete handles DELETE /v1/drivers/:id
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.driverRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func driverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:            d.ID,
		CPF:           d.CPF,
		Name:          d.Name,
		LicenseNumber: d.LicenseNumber,
		DepartmentID:  d.DepartmentID,
	}
}
