package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// DepartmentHandler handles HTTP requests for departments.
type DepartmentHandler struct {
	departmentRepo repository.DepartmentRepository
}

// NewDepartmentHandler creates a new DepartmentHandler.
func NewDepartmentHandler(departmentRepo repository.DepartmentRepository) *DepartmentHandler {
	return &DepartmentHandler{departmentRepo: departmentRepo}
}

// DepartmentRequest is the HTTP request body for creating or updating a
// department.
type DepartmentRequest struct {
	Name string `json:"name"`
}

// DepartmentResponse is the HTTP representation of a department.
type DepartmentResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Create handles POST /v1/departments
func (h *DepartmentHandler) Create(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	department := &domain.Department{
		ID:        uuid.New().String(),
		Name:      req.Name,
		CreatedAt: time.Now(),
	}

	if err := h.departmentRepo.Create(c.Request.Context(), department); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, DepartmentResponse{ID: department.ID, Name: department.Name})
}

// Get handles GET /v1/departments/:id
func (h *DepartmentHandler) Get(c *gin.Context) {
	department, err := h.departmentRepo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DepartmentResponse{ID: department.ID, Name: department.Name})
}

// GetAll handles GET /v1/departments
func (h *DepartmentHandler) GetAll(c *gin.Context) {
	departments, err := h.departmentRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		response = append(response, DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /v1/departments/:id
func (h *DepartmentHandler) Update(c *gin.Context) {
	var req DepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	ctx := c.Request.Context()
	department, err := h.departmentRepo.GetByID(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	department.Name = req.Name
	if err := h.departmentRepo.Update(ctx, department); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, DepartmentResponse{ID: department.ID, Name: department.Name})
}

// Delete handles DELETE /v1/departments/:id
func (h *DepartmentHandler) Delete(c *gin.Context) {
	if err := h.departmentRepo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
