package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/service"
)

// AuthHandler handles user registration and login.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest is the HTTP request body for registering a user.
type RegisterRequest struct {
	CPF      string `json:"cpf"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// LoginRequest is the HTTP request body for logging in.
type LoginRequest struct {
	CPF      string `json:"cpf"`
	Password string `json:"password"`
}

// AuthResponse carries the authenticated user and an access token.
type AuthResponse struct {
	UserID  string `json:"user_id"`
	CPF     string `json:"cpf"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

// Register handles POST /v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.CPF == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cpf and password are required"})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), service.RegisterRequest{
		CPF:      req.CPF,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, authResponse(result))
}

// Login handles POST /v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if req.CPF == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "cpf and password are required"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.CPF, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, authResponse(result))
}

func authResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		UserID:  result.User.ID,
		CPF:     result.User.CPF,
		IsAdmin: result.User.IsAdmin,
		Token:   result.Token,
	}
}
