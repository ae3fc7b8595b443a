package relationship

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Service decides whether one user may address another with a notification.
// A relationship exists when the two users share a booking or a conversation
// in either professional/customer direction, or when the user targets
// themselves. Any lookup failure propagates: the caller must deny, never
// grant, on error.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// roleIDs is one user's resolved role-profile ids; either may be empty, and
// a dual-role user has both.
type roleIDs struct {
	professional string
	customer     string
}

// Verify reports whether requester may notify target.
func (s *Service) Verify(ctx context.Context, requesterUserID, targetUserID string) (bool, error) {
	if requesterUserID == targetUserID {
		return true, nil
	}

	var req, tgt roleIDs

	// The four profile lookups are independent.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		req.professional, err = s.repo.ProfessionalIDByUser(gctx, requesterUserID)
		return
	})
	g.Go(func() (err error) {
		req.customer, err = s.repo.CustomerIDByUser(gctx, requesterUserID)
		return
	})
	g.Go(func() (err error) {
		tgt.professional, err = s.repo.ProfessionalIDByUser(gctx, targetUserID)
		return
	})
	g.Go(func() (err error) {
		tgt.customer, err = s.repo.CustomerIDByUser(gctx, targetUserID)
		return
	})
	if err := g.Wait(); err != nil {
		return false, err
	}

	// Requester as professional, target as customer.
	if req.professional != "" && tgt.customer != "" {
		ok, err := s.probePair(ctx, req.professional, tgt.customer)
		if err != nil || ok {
			return ok, err
		}
	}

	// Requester as customer, target as professional.
	if req.customer != "" && tgt.professional != "" {
		ok, err := s.probePair(ctx, tgt.professional, req.customer)
		if err != nil || ok {
			return ok, err
		}
	}

	return false, nil
}

// probePair checks bookings first, then conversations, for one direction.
func (s *Service) probePair(ctx context.Context, professionalID, customerID string) (bool, error) {
	ok, err := s.repo.HasBooking(ctx, professionalID, customerID)
	if err != nil || ok {
		return ok, err
	}
	return s.repo.HasConversation(ctx, professionalID, customerID)
}
