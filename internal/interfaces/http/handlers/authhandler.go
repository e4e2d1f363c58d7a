package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/application/user/usecases"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/config"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

// Login outcomes reported to the LoginRecorder.
const (
	LoginSucceeded = "success"
	LoginRejected  = "invalid_credentials"
	LoginFailed    = "error"
)

type AuthHandler struct {
	authenticateUC authenticateUseCase
	revoked        sessionRevoker
	metrics        LoginRecorder
	logger         logger.Interface
	cookieConfig   config.CookieConfig
}

func NewAuthHandler(
	authenticateUC authenticateUseCase,
	revoked sessionRevoker,
	metrics LoginRecorder,
	logger logger.Interface,
	cookieConfig config.CookieConfig,
) *AuthHandler {
	if metrics == nil {
		metrics = nopLoginRecorder{}
	}
	return &AuthHandler{
		authenticateUC: authenticateUC,
		revoked:        revoked,
		metrics:        metrics,
		logger:         logger,
		cookieConfig:   cookieConfig,
	}
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.authenticateUC.Execute(c.Request.Context(), usecases.AuthenticateCommand{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.recordFailure(err)
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.metrics.LoginAttempt(LoginSucceeded)

	utils.SetSessionCookie(c, h.cookieConfig, result.Token, int(result.ExpiresIn))
	utils.EnsureCSRFCookie(c, h.cookieConfig)

	utils.SuccessResponse(c, http.StatusOK, "login successful", result)
}

// Logout revokes the current session and clears its cookie. It succeeds
// even when the session was already gone.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.EndSession(c)
	utils.SuccessResponse(c, http.StatusOK, "logout successful", nil)
}

// EndSession revokes the session of c, if any, and clears the cookie.
func (h *AuthHandler) EndSession(c *gin.Context) {
	if session, ok := authorization.SessionFrom(c); ok && session.ID != "" && h.revoked != nil {
		if err := h.revoked.Revoke(c.Request.Context(), session.ID, session.ExpiresAt); err != nil {
			h.logger.Warnw("failed to revoke session", "error", err)
		}
	}
	utils.ClearSessionCookie(c, h.cookieConfig)
}

// Me returns the caller's identity as carried by the session.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := authorization.IdentityFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("login required"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"email": id.Email,
		"name":  id.Name,
		"role":  id.Role,
	})
}

// Authenticate runs a login for the HTML form and sets the session cookie.
func (h *AuthHandler) Authenticate(c *gin.Context, email, password string) error {
	result, err := h.authenticateUC.Execute(c.Request.Context(), usecases.AuthenticateCommand{
		Email:     email,
		Password:  password,
		IPAddress: c.ClientIP(),
	})
	if err != nil {
		h.recordFailure(err)
		return err
	}
	h.metrics.LoginAttempt(LoginSucceeded)
	utils.SetSessionCookie(c, h.cookieConfig, result.Token, int(result.ExpiresIn))
	return nil
}

func (h *AuthHandler) recordFailure(err error) {
	if errors.IsInvalidCredentialsError(err) {
		h.metrics.LoginAttempt(LoginRejected)
		return
	}
	h.metrics.LoginAttempt(LoginFailed)
}
