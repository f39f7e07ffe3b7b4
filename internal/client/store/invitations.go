package store

import (
	"context"

	"github.com/mvolkov/tastebook/internal/client/api"
	"github.com/mvolkov/tastebook/internal/client/models"
	"github.com/mvolkov/tastebook/internal/logging"
)

type invitationAPI interface {
	Invitations(ctx context.Context, page, size int) (*models.Page[models.Invitation], *api.Problem)
	SendInvitation(ctx context.Context, cookbookID int64, email string) *api.Problem
	RespondInvitation(ctx context.Context, id int64, accept bool) *api.Problem
}

// InvitationStore caches one page of pending invitations.
type InvitationStore struct {
	api      invitationAPI
	pages    *PageStore[models.Invitation]
	pageSize int
	log      logging.Logger
}

func NewInvitationStore(client invitationAPI, pageSize int, log logging.Logger) *InvitationStore {
	return &InvitationStore{
		api:      client,
		pages:    NewPageStore(func(i models.Invitation) int64 { return i.ID }),
		pageSize: pageSize,
		log:      log,
	}
}

func (s *InvitationStore) Fetch(ctx context.Context, pageNumber int) *api.Problem {
	ticket := s.pages.begin()
	page, prob := s.api.Invitations(ctx, pageNumber, s.pageSize)
	if prob != nil {
		s.log.Warn(ctx, "invitation fetch failed", "page", pageNumber, "kind", prob.Kind)
		return prob
	}
	if !s.pages.apply(ticket, *page) {
		s.log.Debug(ctx, "discarded stale invitation page", "page", pageNumber)
	}
	return nil
}

func (s *InvitationStore) Send(ctx context.Context, cookbookID int64, email string) *api.Problem {
	return s.api.SendInvitation(ctx, cookbookID, email)
}

// Respond accepts or declines an invitation. Either outcome spends the
// invitation, so it is spliced out locally without a re-fetch; totals stay
// as fetched.
func (s *InvitationStore) Respond(ctx context.Context, id int64, accept bool) *api.Problem {
	if prob := s.api.RespondInvitation(ctx, id, accept); prob != nil {
		return prob
	}
	s.pages.Remove(id)
	return nil
}

func (s *InvitationStore) Current() models.Page[models.Invitation] {
	return s.pages.Current()
}
