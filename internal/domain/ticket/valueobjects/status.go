package valueobjects

import (
	"fmt"
	"strings"
)

// TicketStatus holds the label persisted in the tickets file.
type TicketStatus string

const (
	StatusOpen             TicketStatus = "Aberto"
	StatusInAnalysis       TicketStatus = "Em Análise"
	StatusAwaitingResponse TicketStatus = "Aguardando Retorno"
	StatusResolved         TicketStatus = "Resolvido"
)

// AllStatuses lists statuses in the order the status selector offers them.
var AllStatuses = []TicketStatus{
	StatusOpen,
	StatusInAnalysis,
	StatusAwaitingResponse,
	StatusResolved,
}

var statusCodes = map[TicketStatus]string{
	StatusOpen:             "open",
	StatusInAnalysis:       "in_analysis",
	StatusAwaitingResponse: "awaiting_response",
	StatusResolved:         "resolved",
}

func (ts TicketStatus) String() string {
	return string(ts)
}

// Code is the stable ASCII identifier used by API clients.
func (ts TicketStatus) Code() string {
	return statusCodes[ts]
}

func (ts TicketStatus) IsValid() bool {
	_, ok := statusCodes[ts]
	return ok
}

// NewTicketStatus accepts either the stored label or the code, case-insensitively.
func NewTicketStatus(s string) (TicketStatus, error) {
	s = strings.TrimSpace(s)
	for label, code := range statusCodes {
		if strings.EqualFold(s, string(label)) || strings.EqualFold(s, code) {
			return label, nil
		}
	}
	return "", fmt.Errorf("invalid ticket status: %s", s)
}

// StatusOrDefault is used when loading records that predate the status field.
func StatusOrDefault(s string) TicketStatus {
	if s == "" {
		return StatusOpen
	}
	ts, err := NewTicketStatus(s)
	if err != nil {
		return TicketStatus(s)
	}
	return ts
}
