package store

import (
	"context"

	"github.com/mvolkov/tastebook/internal/client/api"
	"github.com/mvolkov/tastebook/internal/client/models"
	"github.com/mvolkov/tastebook/internal/logging"
)

type membershipAPI interface {
	Memberships(ctx context.Context, cookbookID int64, page, size int) (*models.Page[models.Membership], *api.Problem)
	UpdateMembership(ctx context.Context, id int64, perms models.MembershipPermissions) *api.Problem
	DeleteMembership(ctx context.Context, id int64) *api.Problem
}

// MembershipStore caches one page of a cookbook's members.
type MembershipStore struct {
	api      membershipAPI
	pages    *PageStore[models.Membership]
	pageSize int
	log      logging.Logger
}

func NewMembershipStore(client membershipAPI, pageSize int, log logging.Logger) *MembershipStore {
	return &MembershipStore{
		api:      client,
		pages:    NewPageStore(func(m models.Membership) int64 { return m.ID }),
		pageSize: pageSize,
		log:      log,
	}
}

func (s *MembershipStore) Fetch(ctx context.Context, cookbookID int64, pageNumber int) *api.Problem {
	ticket := s.pages.begin()
	page, prob := s.api.Memberships(ctx, cookbookID, pageNumber, s.pageSize)
	if prob != nil {
		s.log.Warn(ctx, "membership fetch failed", "cookbook", cookbookID, "page", pageNumber, "kind", prob.Kind)
		return prob
	}
	if !s.pages.apply(ticket, *page) {
		s.log.Debug(ctx, "discarded stale membership page", "page", pageNumber)
	}
	return nil
}

// Update pushes new capability flags and patches the cached member.
func (s *MembershipStore) Update(ctx context.Context, id int64, perms models.MembershipPermissions) *api.Problem {
	if prob := s.api.UpdateMembership(ctx, id, perms); prob != nil {
		return prob
	}
	if member, ok := s.pages.Get(id); ok {
		member.MembershipPermissions = perms
		s.pages.Replace(id, member)
	}
	return nil
}

// Remove deletes the membership remotely and splices it out locally.
func (s *MembershipStore) Remove(ctx context.Context, id int64) *api.Problem {
	if prob := s.api.DeleteMembership(ctx, id); prob != nil {
		return prob
	}
	s.pages.Remove(id)
	return nil
}

func (s *MembershipStore) Current() models.Page[models.Membership] {
	return s.pages.Current()
}
