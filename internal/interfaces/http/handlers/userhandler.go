package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/application/user/usecases"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	registerUC  usecases.RegisterUserExecutor
	listUsersUC usecases.ListUsersExecutor
	logger      logger.Interface
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	registerUC usecases.RegisterUserExecutor,
	listUsersUC usecases.ListUsersExecutor,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		registerUC:  registerUC,
		listUsersUC: listUsersUC,
		logger:      log,
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=usuario suporte"`
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create user", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterUserCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User created successfully")
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	result, err := h.listUsersUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ItemsSuccessResponse(c, result, len(result))
}

// HealthCheck handles GET /health
func (h *UserHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "helpdesk",
	})
}
