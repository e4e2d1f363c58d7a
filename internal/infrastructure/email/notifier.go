package email

import (
	"fmt"
	"html"
	"strings"

	"github.com/sismaterial/helpdesk/internal/domain/shared/events"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

// TicketNotifier turns ticket events into emails: new tickets go to the
// support inbox, status changes and replies go to the submitter.
type TicketNotifier struct {
	sender       Sender
	supportInbox []string
	baseURL      string
	logger       logger.Interface
}

func NewTicketNotifier(sender Sender, supportInbox []string, baseURL string, log logger.Interface) *TicketNotifier {
	return &TicketNotifier{
		sender:       sender,
		supportInbox: supportInbox,
		baseURL:      strings.TrimRight(baseURL, "/"),
		logger:       log,
	}
}

// Register subscribes the notifier to every ticket event it handles.
func (n *TicketNotifier) Register(dispatcher events.EventDispatcher) error {
	for _, eventType := range []string{
		ticket.EventTypeTicketCreated,
		ticket.EventTypeTicketStatusChanged,
		ticket.EventTypeTicketMessageAdded,
	} {
		if err := dispatcher.Subscribe(eventType, n); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}
	return nil
}

func (n *TicketNotifier) Handle(event events.DomainEvent) error {
	msg, ok := n.compose(event)
	if !ok {
		return nil
	}

	if err := n.sender.Send(msg); err != nil {
		n.logger.Errorw("failed to send ticket notification",
			"event", event.GetEventType(),
			"ticket", event.GetAggregateID(),
			"error", err)
		return err
	}

	n.logger.Infow("ticket notification sent",
		"event", event.GetEventType(),
		"ticket", event.GetAggregateID(),
		"recipients", len(msg.To))
	return nil
}

// compose reports false when the event needs no email.
func (n *TicketNotifier) compose(event events.DomainEvent) (Message, bool) {
	switch e := event.(type) {
	case *ticket.TicketCreatedEvent:
		if len(n.supportInbox) == 0 {
			return Message{}, false
		}
		return Message{
			To:      n.supportInbox,
			Subject: fmt.Sprintf("[Ticket %s] Novo ticket: %s", e.AggregateID, e.Title),
			PlainBody: fmt.Sprintf("%s <%s> abriu o ticket %s.\n\nTítulo: %s\nTipo: %s\nPrioridade: %s\n\n%s\n",
				e.SubmitterName, e.SubmitterEmail, e.AggregateID, e.Title, e.Category, e.Priority, n.link(e.AggregateID)),
			HTMLBody: n.htmlBody(
				fmt.Sprintf("%s abriu o ticket %s", e.SubmitterName, e.AggregateID),
				fmt.Sprintf("Título: %s<br>Tipo: %s<br>Prioridade: %s",
					html.EscapeString(e.Title), html.EscapeString(e.Category.String()), html.EscapeString(e.Priority.String())),
				e.AggregateID),
		}, true

	case *ticket.TicketStatusChangedEvent:
		if e.SubmitterEmail == "" {
			return Message{}, false
		}
		return Message{
			To:      []string{e.SubmitterEmail},
			Subject: fmt.Sprintf("[Ticket %s] Status alterado para %s", e.AggregateID, e.NewStatus),
			PlainBody: fmt.Sprintf("O status do ticket %s (%s) mudou de %s para %s.\n\n%s\n",
				e.AggregateID, e.Title, e.OldStatus, e.NewStatus, n.link(e.AggregateID)),
			HTMLBody: n.htmlBody(
				fmt.Sprintf("Ticket %s: %s", e.AggregateID, e.Title),
				fmt.Sprintf("Status alterado de <b>%s</b> para <b>%s</b>.",
					html.EscapeString(e.OldStatus.String()), html.EscapeString(e.NewStatus.String())),
				e.AggregateID),
		}, true

	case *ticket.TicketMessageAddedEvent:
		// nobody needs an email about their own message
		if e.SubmitterEmail == "" || strings.EqualFold(e.SubmitterEmail, e.AuthorEmail) {
			return Message{}, false
		}
		return Message{
			To:      []string{e.SubmitterEmail},
			Subject: fmt.Sprintf("[Ticket %s] Nova mensagem de %s", e.AggregateID, e.Author),
			PlainBody: fmt.Sprintf("%s escreveu no ticket %s (%s):\n\n%s\n\n%s\n",
				e.Author, e.AggregateID, e.Title, e.Text, n.link(e.AggregateID)),
			HTMLBody: n.htmlBody(
				fmt.Sprintf("%s escreveu no ticket %s", e.Author, e.AggregateID),
				strings.ReplaceAll(html.EscapeString(e.Text), "\n", "<br>"),
				e.AggregateID),
		}, true
	}
	return Message{}, false
}

func (n *TicketNotifier) link(number string) string {
	return fmt.Sprintf("%s/tickets/%s", n.baseURL, number)
}

// htmlBody escapes heading; content must already be safe HTML.
func (n *TicketNotifier) htmlBody(heading, content, number string) string {
	url := html.EscapeString(n.link(number))
	return fmt.Sprintf(`
		<html>
		<body>
			<h2>%s</h2>
			<p>%s</p>
			<p><a href="%s">Abrir ticket</a></p>
		</body>
		</html>
	`, html.EscapeString(heading), content, url)
}
