package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileDirectory resolves a user's role-profile ids. Empty string means the
// user does not hold that role.
type ProfileDirectory interface {
	ProfessionalIDByUser(ctx context.Context, userID string) (string, error)
	CustomerIDByUser(ctx context.Context, userID string) (string, error)
	UserIDByProfessional(ctx context.Context, professionalID string) (string, error)
	UserIDByCustomer(ctx context.Context, customerID string) (string, error)
}

// Notifier receives booking lifecycle events. Failures are the notifier's
// concern; booking writes never roll back on notification errors.
type Notifier interface {
	NotifyBookingCreated(ctx context.Context, professionalUserID, bookingID, serviceType string)
	NotifyBookingStatus(ctx context.Context, targetUserID, targetUserType, bookingID string, status Status)
}

type CreateRequest struct {
	ProfessionalID string `json:"professional_id" validate:"required"`
	ServiceType    string `json:"service_type" validate:"required"`
	ScheduledDate  string `json:"scheduled_date" validate:"required"`
	ScheduledTime  string `json:"scheduled_time"`
	RateAmount     string `json:"rate_amount"`
}

type Service struct {
	repo     Repository
	profiles ProfileDirectory
	notifier Notifier
}

func NewService(repo Repository, profiles ProfileDirectory, notifier Notifier) *Service {
	return &Service{repo: repo, profiles: profiles, notifier: notifier}
}

// Create books a professional on behalf of the calling customer.
func (s *Service) Create(ctx context.Context, customerUserID string, req CreateRequest) (*Booking, error) {
	customerID, err := s.profiles.CustomerIDByUser(ctx, customerUserID)
	if err != nil {
		return nil, err
	}
	if customerID == "" {
		return nil, ErrCustomerAbsent
	}

	professionalUserID, err := s.profiles.UserIDByProfessional(ctx, req.ProfessionalID)
	if err != nil {
		return nil, ErrProfessionalAbsent
	}

	now := time.Now()
	b := &Booking{
		ID:             uuid.New().String(),
		ProfessionalID: req.ProfessionalID,
		CustomerID:     customerID,
		ServiceType:    req.ServiceType,
		ScheduledDate:  req.ScheduledDate,
		ScheduledTime:  req.ScheduledTime,
		Status:         StatusPending,
		RateAmount:     req.RateAmount,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyBookingCreated(ctx, professionalUserID, b.ID, b.ServiceType)
	}
	return b, nil
}

// Transition applies one step of the status machine. The professional side
// drives confirm/start/complete; either side may cancel while the machine
// still allows it.
func (s *Service) Transition(ctx context.Context, userID, bookingID string, to Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	professionalID, err := s.profiles.ProfessionalIDByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	customerID, err := s.profiles.CustomerIDByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	isProfessional := professionalID != "" && b.ProfessionalID == professionalID
	isCustomer := customerID != "" && b.CustomerID == customerID
	if !isProfessional && !isCustomer {
		return nil, ErrNotParticipant
	}

	if !CanTransition(b.Status, to) {
		return nil, ErrInvalidTransition
	}

	switch to {
	case StatusConfirmed, StatusInProgress, StatusCompleted:
		if !isProfessional {
			return nil, ErrRoleNotPermitted
		}
	case StatusCancelled:
		// either participant
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, to); err != nil {
		return nil, err
	}
	b.Status = to
	b.UpdatedAt = time.Now()

	// Tell the other participant.
	if s.notifier != nil {
		var targetUserID, targetUserType string
		var lookupErr error
		if isProfessional {
			targetUserType = "customer"
			targetUserID, lookupErr = s.profiles.UserIDByCustomer(ctx, b.CustomerID)
		} else {
			targetUserType = "professional"
			targetUserID, lookupErr = s.profiles.UserIDByProfessional(ctx, b.ProfessionalID)
		}
		if lookupErr == nil && targetUserID != "" {
			s.notifier.NotifyBookingStatus(ctx, targetUserID, targetUserType, b.ID, to)
		}
	}
	return b, nil
}

// ListForUser returns bookings for every role the user holds.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*Booking, error) {
	professionalID, err := s.profiles.ProfessionalIDByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	customerID, err := s.profiles.CustomerIDByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var out []*Booking
	if professionalID != "" {
		bs, err := s.repo.ListByProfessional(ctx, professionalID)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	if customerID != "" {
		bs, err := s.repo.ListByCustomer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		out = append(out, bs...)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}
