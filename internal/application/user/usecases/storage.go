package usecases

import (
	stderrors "errors"

	"github.com/sismaterial/helpdesk/internal/domain/shared"
	"github.com/sismaterial/helpdesk/internal/shared/constants"
	"github.com/sismaterial/helpdesk/internal/shared/errors"
)

func storageError(err error, message string) error {
	if stderrors.Is(err, shared.ErrCorruptStore) {
		return errors.NewInternalError(constants.ErrMsgStoreUnreadable)
	}
	if appErr := errors.GetAppError(err); appErr != nil {
		return appErr
	}
	return errors.NewInternalError(message)
}
