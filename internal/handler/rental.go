package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// dateFormat is the wire format for rental dates. Rentals are tracked at
// day granularity.
const dateFormat = "2006-01-02"

// RentalHandler handles HTTP requests for rentals.
type RentalHandler struct {
	rentalService *service.RentalService
}

// NewRentalHandler creates a new RentalHandler.
func NewRentalHandler(rentalService *service.RentalService) *RentalHandler {
	return &RentalHandler{rentalService: rentalService}
}

// CreateRentalRequest is the HTTP request body for creating a rental.
type CreateRentalRequest struct {
	VehicleID   string   `json:"vehicle_id"`
	DriverID    string   `json:"driver_id"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date,omitempty"`
	Destination string   `json:"destination"`
	Kilometers  *float64 `json:"kilometers,omitempty"`
}

// UpdateRentalRequest is the HTTP request body for updating a rental.
// Absent fields are left unchanged; an explicit empty end_date reopens the
// rental.
type UpdateRentalRequest struct {
	VehicleID   *string  `json:"vehicle_id,omitempty"`
	DriverID    *string  `json:"driver_id,omitempty"`
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	Destination *string  `json:"destination,omitempty"`
	Kilometers  *float64 `json:"kilometers,omitempty"`
}

// RentalResponse is the HTTP representation of a rental.
type RentalResponse struct {
	ID          string   `json:"id"`
	VehicleID   string   `json:"vehicle_id"`
	DriverID    string   `json:"driver_id"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date,omitempty"`
	Destination string   `json:"destination"`
	Kilometers  *float64 `json:"kilometers,omitempty"`
}

func newRentalResponse(r *domain.Rental) RentalResponse {
	resp := RentalResponse{
		ID:          r.ID,
		VehicleID:   r.VehicleID,
		DriverID:    r.DriverID,
		StartDate:   r.Period.Start.Format(dateFormat),
		Destination: r.Destination,
		Kilometers:  r.Kilometers,
	}
	if !r.Period.Open {
		resp.EndDate = r.Period.End.Format(dateFormat)
	}
	return resp
}

// CreateRental handles POST /v1/rentals
func (h *RentalHandler) CreateRental(c *gin.Context) {
	var req CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	startDate, err := time.Parse(dateFormat, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
		return
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse(dateFormat, req.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
			return
		}
		endDate = &parsed
	}

	rental, err := h.rentalService.CreateRental(c.Request.Context(), service.CreateRentalRequest{
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		StartDate:   startDate,
		EndDate:     endDate,
		Destination: req.Destination,
		Kilometers:  req.Kilometers,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newRentalResponse(rental))
}

// GetRental handles GET /v1/rentals/:id
func (h *RentalHandler) GetRental(c *gin.Context) {
	rental, err := h.rentalService.GetRental(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRentalResponse(rental))
}

// GetAll handles GET /v1/rentals
func (h *RentalHandler) GetAll(c *gin.Context) {
	rentals, err := h.rentalService.ListRentals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RentalResponse, 0, len(rentals))
	for _, r := range rentals {
		response = append(response, newRentalResponse(r))
	}
	c.JSON(http.StatusOK, response)
}

// UpdateRental handles PUT /v1/rentals/:id
func (h *RentalHandler) UpdateRental(c *gin.Context) {
	var req UpdateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	update := service.UpdateRentalRequest{
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		Destination: req.Destination,
		Kilometers:  req.Kilometers,
	}

	if req.StartDate != nil {
		parsed, err := time.Parse(dateFormat, *req.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "start_date must be YYYY-MM-DD"})
			return
		}
		update.StartDate = &parsed
	}

	if req.EndDate != nil {
		if *req.EndDate == "" {
			update.ClearEndDate = true
		} else {
			parsed, err := time.Parse(dateFormat, *req.EndDate)
			if err != nil {
				c.JSON(http.StatusBadRequest, ErrorResponse{Error: "end_date must be YYYY-MM-DD"})
				return
			}
			update.EndDate = &parsed
		}
	}

	rental, err := h.rentalService.UpdateRental(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newRentalResponse(rental))
}

// DeleteRental handles DELETE /v1/rentals/:id
func (h *RentalHandler) DeleteRental(c *gin.Context) {
	if err := h.rentalService.DeleteRental(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
