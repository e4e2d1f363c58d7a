// Package web serves the server-rendered pages of the ticket portal.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	ticketdto "github.com/sismaterial/helpdesk/internal/application/ticket/dto"
	"github.com/sismaterial/helpdesk/internal/application/ticket/usecases"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/interfaces/http/handlers/ticket"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/config"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
	"github.com/sismaterial/helpdesk/internal/shared/services/markdown"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Sessions logs browsers in and out.
type Sessions interface {
	Authenticate(c *gin.Context, email, password string) error
	EndSession(c *gin.Context)
}

type WebHandler struct {
	sessions       Sessions
	createTicketUC usecases.CreateTicketExecutor
	listTicketsUC  usecases.ListTicketsExecutor
	getTicketUC    usecases.GetTicketExecutor
	changeStatusUC usecases.ChangeStatusExecutor
	addMessageUC   usecases.AddMessageExecutor
	templates      *template.Template
	cookieConfig   config.CookieConfig
	logger         logger.Interface
}

func NewWebHandler(
	sessions Sessions,
	createTicketUC usecases.CreateTicketExecutor,
	listTicketsUC usecases.ListTicketsExecutor,
	getTicketUC usecases.GetTicketExecutor,
	changeStatusUC usecases.ChangeStatusExecutor,
	addMessageUC usecases.AddMessageExecutor,
	renderer markdown.Renderer,
	cookieConfig config.CookieConfig,
	logger logger.Interface,
) *WebHandler {
	templates := template.Must(template.New("").Funcs(template.FuncMap{
		"markdown":   renderer.Render,
		"pathEscape": url.PathEscape,
	}).ParseFS(templatesFS, "templates/*.html"))

	return &WebHandler{
		sessions:       sessions,
		createTicketUC: createTicketUC,
		listTicketsUC:  listTicketsUC,
		getTicketUC:    getTicketUC,
		changeStatusUC: changeStatusUC,
		addMessageUC:   addMessageUC,
		templates:      templates,
		cookieConfig:   cookieConfig,
		logger:         logger,
	}
}

type page struct {
	Title     string
	User      *authorization.Identity
	CSRFToken string
	Error     string
	Notice    string
}

type ticketForm struct {
	Title       string
	Description string
	Category    string
	Priority    string
}

type loginPage struct {
	page
	Email string
	Next  string
}

type ticketsPage struct {
	page
	Query   string
	Tickets []ticketdto.TicketListItemDTO
	Options ticketdto.OptionsDTO
	Form    ticketForm
}

type ticketPage struct {
	page
	Ticket          *ticketdto.TicketDTO
	Options         ticketdto.OptionsDTO
	CanChangeStatus bool
}

func (h *WebHandler) newPage(c *gin.Context, title string) page {
	p := page{
		Title:     title,
		CSRFToken: utils.EnsureCSRFCookie(c, h.cookieConfig),
		Notice:    c.Query("notice"),
	}
	if id, ok := authorization.IdentityFrom(c); ok {
		p.User = &id
	}
	return p
}

func (h *WebHandler) render(c *gin.Context, status int, name string, data any) {
	c.Render(status, render.HTML{Template: h.templates, Name: name, Data: data})
}

// LoginPage handles GET /login
func (h *WebHandler) LoginPage(c *gin.Context) {
	if _, ok := authorization.IdentityFrom(c); ok {
		c.Redirect(http.StatusSeeOther, safeNext(c.Query("next")))
		return
	}
	h.render(c, http.StatusOK, "login.html", loginPage{
		page: h.newPage(c, "Entrar"),
		Next: c.Query("next"),
	})
}

// Login handles POST /login
func (h *WebHandler) Login(c *gin.Context) {
	email := c.PostForm("email")
	next := c.PostForm("next")

	if err := h.sessions.Authenticate(c, email, c.PostForm("password")); err != nil {
		status, info := utils.ErrorInfoFor(err)
		p := loginPage{page: h.newPage(c, "Entrar"), Email: email, Next: next}
		p.Error = info.Message
		h.render(c, status, "login.html", p)
		return
	}

	c.Redirect(http.StatusSeeOther, safeNext(next))
}

// Logout handles POST /logout
func (h *WebHandler) Logout(c *gin.Context) {
	h.sessions.EndSession(c)
	c.Redirect(http.StatusSeeOther, "/login")
}

// TicketsPage handles GET /tickets
func (h *WebHandler) TicketsPage(c *gin.Context) {
	h.renderTickets(c, http.StatusOK, ticketForm{Priority: vo.DefaultPriority.Code()}, "")
}

func (h *WebHandler) renderTickets(c *gin.Context, status int, form ticketForm, errMsg string) {
	query := c.Query("q")
	p := ticketsPage{
		page:    h.newPage(c, "Tickets"),
		Query:   query,
		Options: ticketdto.Options(),
		Form:    form,
	}
	p.Error = errMsg

	tickets, err := h.listTicketsUC.Execute(c.Request.Context(), usecases.ListTicketsQuery{Filter: query})
	if err != nil {
		_, info := utils.ErrorInfoFor(err)
		p.Error = info.Message
		status = http.StatusInternalServerError
	}
	p.Tickets = tickets

	h.render(c, status, "tickets.html", p)
}

// CreateTicket handles POST /tickets
func (h *WebHandler) CreateTicket(c *gin.Context) {
	id, ok := authorization.IdentityFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	var req ticket.CreateTicketRequest
	bindErr := c.ShouldBind(&req)
	form := ticketForm{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	}
	if bindErr != nil {
		h.logger.Warnw("invalid ticket form", "error", bindErr)
		h.renderTickets(c, http.StatusBadRequest, form, errorText(errors.NewValidationError("invalid request body", bindErr.Error())))
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.renderTickets(c, http.StatusBadRequest, form, errorText(err))
		return
	}

	result, err := h.createTicketUC.Execute(c.Request.Context(), req.ToCommand(id, ticket.UploadedFiles(c)))
	if err != nil {
		status, _ := utils.ErrorInfoFor(err)
		h.renderTickets(c, status, form, errorText(err))
		return
	}

	notice := "Ticket #" + result.Number + " criado."
	if len(result.FailedAttachments) > 0 {
		notice += " Falha ao salvar anexos: " + strings.Join(result.FailedAttachments, ", ")
	}
	c.Redirect(http.StatusSeeOther, "/tickets/"+result.Number+"?notice="+url.QueryEscape(notice))
}

// TicketPage handles GET /tickets/:number
func (h *WebHandler) TicketPage(c *gin.Context) {
	h.renderTicket(c, http.StatusOK, "")
}

func (h *WebHandler) renderTicket(c *gin.Context, status int, errMsg string) {
	result, err := h.getTicketUC.Execute(c.Request.Context(), usecases.GetTicketQuery{Number: c.Param("number")})
	if err != nil {
		code, info := utils.ErrorInfoFor(err)
		c.String(code, info.Message)
		return
	}

	p := ticketPage{
		page:    h.newPage(c, "Ticket #"+result.Number),
		Ticket:  result,
		Options: ticketdto.Options(),
	}
	p.Error = errMsg
	if p.User != nil {
		p.CanChangeStatus = p.User.IsSupport()
	}

	h.render(c, status, "ticket.html", p)
}

// ChangeStatus handles POST /tickets/:number/status
func (h *WebHandler) ChangeStatus(c *gin.Context) {
	id, ok := authorization.IdentityFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeStatusCommand{
		Number: c.Param("number"),
		Status: c.PostForm("status"),
		Caller: id,
	})
	if err != nil {
		status, _ := utils.ErrorInfoFor(err)
		h.renderTicket(c, status, errorText(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/tickets/"+result.Number+"?notice="+url.QueryEscape("Status atualizado para "+result.Status+"."))
}

// AddMessage handles POST /tickets/:number/messages
func (h *WebHandler) AddMessage(c *gin.Context) {
	id, ok := authorization.IdentityFrom(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	number := c.Param("number")
	if _, err := h.addMessageUC.Execute(c.Request.Context(), usecases.AddMessageCommand{
		Number: number,
		Text:   c.PostForm("text"),
		Author: id,
	}); err != nil {
		status, _ := utils.ErrorInfoFor(err)
		h.renderTicket(c, status, errorText(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/tickets/"+number)
}

// safeNext only follows local paths.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/tickets"
	}
	return next
}

// errorText joins an error's message and details for display.
func errorText(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		if appErr.Details != "" && appErr.Type != errors.ErrorTypeInternal {
			return appErr.Message + ": " + appErr.Details
		}
		return appErr.Message
	}
	_, info := utils.ErrorInfoFor(err)
	return info.Message
}
