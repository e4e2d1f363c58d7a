package ticket

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	ticketdto "github.com/sismaterial/helpdesk/internal/application/ticket/dto"
	"github.com/sismaterial/helpdesk/internal/application/ticket/usecases"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

type TicketHandler struct {
	createTicketUC       usecases.CreateTicketExecutor
	listTicketsUC        usecases.ListTicketsExecutor
	getTicketUC          usecases.GetTicketExecutor
	changeStatusUC       usecases.ChangeStatusExecutor
	addMessageUC         usecases.AddMessageExecutor
	downloadAttachmentUC usecases.DownloadAttachmentExecutor
	logger               logger.Interface
}

func NewTicketHandler(
	createTicketUC usecases.CreateTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	addMessageUC usecases.AddMessageExecutor,
	downloadAttachmentUC usecases.DownloadAttachmentExecutor,
	logger logger.Interface,
) *TicketHandler {
	return &TicketHandler{
		createTicketUC:       createTicketUC,
		listTicketsUC:        listTicketsUC,
		getTicketUC:          getTicketUC,
		changeStatusUC:       changeStatusUC,
		addMessageUC:         addMessageUC,
		downloadAttachmentUC: downloadAttachmentUC,
		logger:               logger,
	}
}

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req CreateTicketRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Warnw("invalid request body for create ticket", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(id, UploadedFiles(c)))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	message := "Ticket created successfully"
	if len(result.FailedAttachments) > 0 {
		message = "Ticket created, but some attachments could not be stored"
	}
	utils.CreatedResponse(c, result, message)
}

// ListTickets handles GET /tickets?q=
func (h *TicketHandler) ListTickets(c *gin.Context) {
	result, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{
		Filter: c.Query("q"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ItemsSuccessResponse(c, result, len(result))
}

// GetTicket handles GET /tickets/:number
func (h *TicketHandler) GetTicket(c *gin.Context) {
	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{
		Number: c.Param("number"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ChangeStatus handles PATCH /tickets/:number/status
func (h *TicketHandler) ChangeStatus(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		Number: c.Param("number"),
		Status: req.Status,
		Caller: id,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Ticket status updated", result)
}

// AddMessage handles POST /tickets/:number/messages
func (h *TicketHandler) AddMessage(c *gin.Context) {
	id, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req AddMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.addMessageUC.Execute(c.Request.Context(), usecases.AddMessageCommand{
		Number: c.Param("number"),
		Text:   req.Text,
		Author: id,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Message added")
}

// DownloadAttachment handles GET /tickets/:number/attachments/:filename
func (h *TicketHandler) DownloadAttachment(c *gin.Context) {
	result, err := h.downloadAttachmentUC.Execute(c.Request.Context(), usecases.DownloadAttachmentQuery{
		Number:   c.Param("number"),
		Filename: c.Param("filename"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer result.Content.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename})
	c.DataFromReader(http.StatusOK, -1, result.ContentType, result.Content, map[string]string{
		"Content-Disposition": disposition,
	})
}

// Options handles GET /meta/options
func (h *TicketHandler) Options(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", ticketdto.Options())
}

func requireIdentity(c *gin.Context) (authorization.Identity, bool) {
	id, ok := authorization.IdentityFrom(c)
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("login required"))
		return authorization.Identity{}, false
	}
	return id, true
}
