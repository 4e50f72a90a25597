package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/voyara/backend/internal/domain/entities"
	"github.com/voyara/backend/internal/domain/providers"
	"github.com/voyara/backend/internal/infrastructure/clients/vega"
	apperrors "github.com/voyara/backend/pkg/errors"
)

// RemoteProvider answers via the Vega suggestion backend. The reply is a
// rendered summary of the backend's structured suggestions.
type RemoteProvider struct {
	client vega.Client
}

// NewRemoteProvider creates an assistant provider backed by the Vega API
func NewRemoteProvider(client vega.Client) providers.AssistantProvider {
	return &RemoteProvider{client: client}
}

// Chat forwards the context to the Vega backend
func (p *RemoteProvider) Chat(ctx context.Context, req *entities.AssistantContext) (*entities.AssistantReply, error) {
	suggestReq := vega.SuggestRequest{
		City:        req.Message,
		Country:     req.Country,
		Day:         req.Day,
		TimeSlot:    req.TimeSlot,
		Preferences: req.Preferences,
		Adults:      1,
	}
	if req.RemainingBudget != nil {
		suggestReq.RemainingBudget = *req.RemainingBudget
	}
	if req.Trip != nil {
		suggestReq.TripID = req.Trip.ID
		suggestReq.City = req.Trip.Name
		if req.Trip.Budget != nil {
			suggestReq.TotalBudget = *req.Trip.Budget
		}
	}

	resp, err := p.client.Suggest(ctx, suggestReq)
	if err != nil {
		return nil, apperrors.NewExternalError("assistant backend request failed", err)
	}

	return &entities.AssistantReply{
		Reply: renderSuggestions(resp.Suggestions),
		Rules: SoftRules(req.Country, req.Preferences),
	}, nil
}

func renderSuggestions(suggestions []vega.Suggestion) string {
	if len(suggestions) == 0 {
		return "I couldn't find any suggestions for that right now. Try a different time slot or budget."
	}

	var b strings.Builder
	b.WriteString("Here's what I'd suggest:\n")
	for i, s := range suggestions {
		fmt.Fprintf(&b, "\n%d. %s - %s", i+1, s.Title, s.Description)
		if s.Reason != "" {
			fmt.Fprintf(&b, " (%s)", s.Reason)
		}
		if s.PriceAdult > 0 {
			fmt.Fprintf(&b, " ~%.0f %s per adult", s.PriceAdult, s.Currency)
		}
	}
	return b.String()
}
