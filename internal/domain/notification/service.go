package notification

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RelationshipVerifier is implemented by the relationship guard. A negative
// or failed answer always blocks delivery (fail closed).
type RelationshipVerifier interface {
	Verify(ctx context.Context, requesterUserID, targetUserID string) (bool, error)
}

type Service struct {
	repo   Repository
	guard  RelationshipVerifier
	pusher Pusher
	log    *zap.Logger
}

func NewService(repo Repository, guard RelationshipVerifier, pusher Pusher, log *zap.Logger) *Service {
	return &Service{repo: repo, guard: guard, pusher: pusher, log: log}
}

// Dispatch persists one notification for the target after the relationship
// guard admits the requester. Validation of the payload happens in the
// handler, before this runs.
func (s *Service) Dispatch(ctx context.Context, requesterUserID string, req DispatchRequest) error {
	ok, err := s.guard.Verify(ctx, requesterUserID, req.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoRelationship
	}

	return s.persist(ctx, req.UserID, req.UserType, req.Type, req.Title, req.Message, req.Data)
}

// CreateInternal records a server-originated notification (booking events
// and the like). No relationship guard: the server is always allowed.
func (s *Service) CreateInternal(ctx context.Context, userID, userType string, typ Type, title, message string, data map[string]any) error {
	return s.persist(ctx, userID, userType, typ, title, message, data)
}

func (s *Service) persist(ctx context.Context, userID, userType string, typ Type, title, message string, data map[string]any) error {
	n := &Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserType:  userType,
		Type:      typ,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return err
		}
		n.Data = raw
	}
	return s.repo.Create(ctx, n)
}

// SendPush verifies the relationship, then fans the payload out to every
// registered subscription for the target. Outcomes are isolated per
// subscription and reported as counts; an endpoint that answers
// permanent-gone is dropped from the registry.
func (s *Service) SendPush(ctx context.Context, requesterUserID string, req PushRequest) (*PushResult, error) {
	ok, err := s.guard.Verify(ctx, requesterUserID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoRelationship
	}

	if !s.pusher.Configured() {
		return nil, ErrPushNotConfigured
	}

	subs, err := s.repo.ListSubscriptions(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return &PushResult{Message: "No subscriptions found for user"}, nil
	}

	icon := req.Icon
	if icon == "" {
		icon = "/pwa-192x192.png"
	}
	url := req.URL
	if url == "" {
		url = "/"
	}
	payload, err := json.Marshal(map[string]any{
		"title": req.Title,
		"body":  req.Body,
		"icon":  icon,
		"url":   url,
		"data":  req.Data,
	})
	if err != nil {
		return nil, err
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successful int
		failed     int
	)
	for _, sub := range subs {
		wg.Add(1)
		go func(sub *PushSubscription) {
			defer wg.Done()
			err := s.pusher.Send(ctx, sub, payload)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				successful++
				return
			}
			failed++
			if errors.Is(err, ErrSubscriptionGone) {
				if derr := s.repo.DeleteSubscription(ctx, sub.ID); derr != nil {
					s.log.Warn("failed to remove expired push subscription",
						zap.String("subscription_id", sub.ID), zap.Error(derr))
				}
				return
			}
			s.log.Warn("push delivery failed",
				zap.String("subscription_id", sub.ID), zap.Error(err))
		}(sub)
	}
	wg.Wait()

	return &PushResult{
		Message:    "Push notifications sent",
		Successful: successful,
		Failed:     failed,
		Total:      len(subs),
	}, nil
}

func (s *Service) List(ctx context.Context, userID string, limit int) ([]*Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) CountUnread(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkRead(ctx, id, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *Service) RegisterSubscription(ctx context.Context, userID string, req RegisterSubscriptionRequest) (*PushSubscription, error) {
	// Re-registering an endpoint replaces the old row.
	if err := s.repo.DeleteSubscriptionByEndpoint(ctx, userID, req.Endpoint); err != nil {
		return nil, err
	}
	sub := &PushSubscription{
		ID:        uuid.New().String(),
		UserID:    userID,
		Endpoint:  req.Endpoint,
		P256dh:    req.P256dh,
		Auth:      req.Auth,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateSubscription(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *Service) RemoveSubscription(ctx context.Context, userID, endpoint string) error {
	return s.repo.DeleteSubscriptionByEndpoint(ctx, userID, endpoint)
}
