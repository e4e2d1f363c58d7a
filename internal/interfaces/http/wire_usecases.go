package http

import (
	ticketUsecases "github.com/sismaterial/helpdesk/internal/application/ticket/usecases"
	userUsecases "github.com/sismaterial/helpdesk/internal/application/user/usecases"
)

// allUseCases holds the application use cases.
type allUseCases struct {
	// User
	registerUserUC *userUsecases.RegisterUserUseCase
	authenticateUC *userUsecases.AuthenticateUseCase
	listUsersUC    *userUsecases.ListUsersUseCase

	// Ticket
	createTicketUC       *ticketUsecases.CreateTicketUseCase
	listTicketsUC        *ticketUsecases.ListTicketsUseCase
	getTicketUC          *ticketUsecases.GetTicketUseCase
	changeStatusUC       *ticketUsecases.ChangeStatusUseCase
	addMessageUC         *ticketUsecases.AddMessageUseCase
	downloadAttachmentUC *ticketUsecases.DownloadAttachmentUseCase
}

func (c *Container) initUseCases() {
	log := c.log
	repos := c.repos

	c.ucs = &allUseCases{
		registerUserUC: userUsecases.NewRegisterUserUseCase(repos.userRepo, c.hasher, c.enforcer, log.Named("usecase.register_user")),
		authenticateUC: userUsecases.NewAuthenticateUseCase(repos.userRepo, c.hasher, c.jwtSvc, log.Named("usecase.authenticate")),
		listUsersUC:    userUsecases.NewListUsersUseCase(repos.userRepo, log.Named("usecase.list_users")),

		createTicketUC:       ticketUsecases.NewCreateTicketUseCase(repos.ticketRepo, repos.files, c.dispatcher, c.metrics, log.Named("usecase.create_ticket")),
		listTicketsUC:        ticketUsecases.NewListTicketsUseCase(repos.ticketRepo, log.Named("usecase.list_tickets")),
		getTicketUC:          ticketUsecases.NewGetTicketUseCase(repos.ticketRepo, repos.files, log.Named("usecase.get_ticket")),
		changeStatusUC:       ticketUsecases.NewChangeStatusUseCase(repos.ticketRepo, c.dispatcher, c.metrics, log.Named("usecase.change_status")),
		addMessageUC:         ticketUsecases.NewAddMessageUseCase(repos.ticketRepo, c.dispatcher, c.metrics, log.Named("usecase.add_message")),
		downloadAttachmentUC: ticketUsecases.NewDownloadAttachmentUseCase(repos.ticketRepo, repos.files, log.Named("usecase.download_attachment")),
	}
}
