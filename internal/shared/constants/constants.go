package constants

const (
	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderCSRFToken     = "X-CSRF-Token"

	APIVersionPrefix = "/api/v1"

	// Context keys
	ContextKeyRequestID = "request_id"
	ContextKeyIdentity  = "identity"
	ContextKeySession   = "session"

	// Database table names
	TableUsers          = "users"
	TableTickets        = "tickets"
	TableTicketMessages = "ticket_messages"

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgStoreUnreadable     = "Storage is unreadable"
)
