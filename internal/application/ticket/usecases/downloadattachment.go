package usecases

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"mime"
	"path/filepath"

	"github.com/sismaterial/helpdesk/internal/domain/attachment"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type DownloadAttachmentQuery struct {
	Number   string
	Filename string
}

type DownloadAttachmentResult struct {
	Filename    string
	ContentType string
	Content     io.ReadCloser
}

type DownloadAttachmentUseCase struct {
	ticketRepo ticket.Repository
	files      attachment.Store
	logger     logger.Interface
}

func NewDownloadAttachmentUseCase(ticketRepo ticket.Repository, files attachment.Store, logger logger.Interface) *DownloadAttachmentUseCase {
	return &DownloadAttachmentUseCase{
		ticketRepo: ticketRepo,
		files:      files,
		logger:     logger,
	}
}

// Execute only serves files the ticket lists. The caller closes Content.
func (uc *DownloadAttachmentUseCase) Execute(ctx context.Context, query DownloadAttachmentQuery) (*DownloadAttachmentResult, error) {
	t, err := loadTicket(ctx, uc.ticketRepo, query.Number)
	if err != nil {
		return nil, err
	}

	name := attachment.SanitizeName(query.Filename)
	if name == "" || !t.HasAttachment(name) {
		return nil, errors.NewNotFoundError("attachment not found on ticket", query.Filename)
	}

	rc, err := uc.files.Open(ctx, name)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			uc.logger.Warnw("attachment missing from storage", "number", t.Number(), "filename", name)
			return nil, errors.NewNotFoundError("attachment file is missing", name)
		}
		uc.logger.Errorw("failed to open attachment", "number", t.Number(), "filename", name, "error", err)
		return nil, errors.NewInternalError("failed to open attachment")
	}

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &DownloadAttachmentResult{
		Filename:    name,
		ContentType: contentType,
		Content:     rc,
	}, nil
}
