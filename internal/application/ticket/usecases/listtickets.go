package usecases

import (
	"context"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sismaterial/helpdesk/internal/application/ticket/dto"
	"github.com/sismaterial/helpdesk/internal/domain/ticket"
	"github.com/sismaterial/helpdesk/internal/shared/logger"
)

type ListTicketsQuery struct {
	// Filter matches a title substring (case-insensitive) or a number substring.
	Filter string
}

type ListTicketsUseCase struct {
	ticketRepo ticket.Repository
	logger     logger.Interface
}

func NewListTicketsUseCase(ticketRepo ticket.Repository, logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *ListTicketsUseCase) Execute(ctx context.Context, query ListTicketsQuery) ([]dto.TicketListItemDTO, error) {
	tickets, err := uc.ticketRepo.List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, storageError(err, "failed to list tickets")
	}

	// newest first; equal timestamps keep submission order
	sort.SliceStable(tickets, func(i, j int) bool {
		return tickets[i].CreatedAt().After(tickets[j].CreatedAt())
	})

	raw := strings.TrimSpace(query.Filter)
	fold := foldFunc()
	folded := fold(raw)

	items := make([]dto.TicketListItemDTO, 0, len(tickets))
	for _, t := range tickets {
		if !t.MatchesFilter(raw, folded, fold) {
			continue
		}
		items = append(items, dto.ToTicketListItemDTO(t))
	}

	uc.logger.Debugw("listed tickets", "filter", raw, "total", len(tickets), "matched", len(items))
	return items, nil
}

// foldFunc returns a Unicode case folder. cases.Caser is stateful, so each
// call gets its own.
func foldFunc() func(string) string {
	caser := cases.Fold()
	return func(s string) string {
		return caser.String(s)
	}
}
