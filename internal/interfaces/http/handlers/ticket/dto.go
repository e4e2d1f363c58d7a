package ticket

import (
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"github.com/sismaterial/helpdesk/internal/application/ticket/usecases"
	vo "github.com/sismaterial/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/sismaterial/helpdesk/internal/shared/authorization"
	"github.com/sismaterial/helpdesk/internal/shared/utils"
)

// FilesField is the multipart field carrying ticket attachments.
const FilesField = "files"

func init() {
	utils.RegisterEnum("ticket_category", func(s string) bool {
		_, err := vo.NewCategory(s)
		return err == nil
	})
	utils.RegisterEnum("ticket_priority", func(s string) bool {
		_, err := vo.NewPriority(s)
		return err == nil
	})
	utils.RegisterEnum("ticket_status", func(s string) bool {
		_, err := vo.NewTicketStatus(s)
		return err == nil
	})
}

// CreateTicketRequest binds from JSON or from a multipart form.
type CreateTicketRequest struct {
	Title       string `json:"title" form:"title" validate:"required,max=200"`
	Description string `json:"description" form:"description" validate:"required"`
	Category    string `json:"category" form:"category" validate:"required,ticket_category"`
	Priority    string `json:"priority" form:"priority" validate:"omitempty,ticket_priority"`
}

func (r *CreateTicketRequest) ToCommand(submitter authorization.Identity, files []*multipart.FileHeader) usecases.CreateTicketCommand {
	priority := r.Priority
	if priority == "" {
		priority = vo.DefaultPriority.String()
	}

	uploads := make([]usecases.AttachmentUpload, 0, len(files))
	for _, fh := range files {
		fh := fh
		uploads = append(uploads, usecases.AttachmentUpload{
			Filename: fh.Filename,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	return usecases.CreateTicketCommand{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Priority:    priority,
		Submitter:   submitter,
		Attachments: uploads,
	}
}

type ChangeStatusRequest struct {
	Status string `json:"status" form:"status" validate:"required,ticket_status"`
}

type AddMessageRequest struct {
	Text string `json:"text" form:"text" validate:"required"`
}

// UploadedFiles returns the attachments of a multipart request, if any.
func UploadedFiles(c *gin.Context) []*multipart.FileHeader {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil
	}
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[FilesField]
}
