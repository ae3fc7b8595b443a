package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRepository) ListByProfessional(ctx context.Context, professionalID string) ([]*Booking, error) {
	args := m.Called(ctx, professionalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

func (m *MockRepository) ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Booking), args.Error(1)
}

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) ProfessionalIDByUser(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockDirectory) CustomerIDByUser(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockDirectory) UserIDByProfessional(ctx context.Context, professionalID string) (string, error) {
	args := m.Called(ctx, professionalID)
	return args.String(0), args.Error(1)
}

func (m *MockDirectory) UserIDByCustomer(ctx context.Context, customerID string) (string, error) {
	args := m.Called(ctx, customerID)
	return args.String(0), args.Error(1)
}

type recordedEvent struct {
	kind       string
	targetUser string
	targetType string
	status     Status
}

type recordingNotifier struct {
	events []recordedEvent
}

func (n *recordingNotifier) NotifyBookingCreated(ctx context.Context, professionalUserID, bookingID, serviceType string) {
	n.events = append(n.events, recordedEvent{kind: "created", targetUser: professionalUserID})
}

func (n *recordingNotifier) NotifyBookingStatus(ctx context.Context, targetUserID, targetUserType, bookingID string, status Status) {
	n.events = append(n.events, recordedEvent{kind: "status", targetUser: targetUserID, targetType: targetUserType, status: status})
}

func TestCanTransitionMatrix(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, false},
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCreateResolvesCustomerAndNotifiesProfessional(t *testing.T) {
	repo := new(MockRepository)
	dir := new(MockDirectory)
	notifier := &recordingNotifier{}

	dir.On("CustomerIDByUser", mock.Anything, "cust-user").Return("cust-1", nil)
	dir.On("UserIDByProfessional", mock.Anything, "pro-1").Return("pro-user", nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *Booking) bool {
		return b.CustomerID == "cust-1" && b.ProfessionalID == "pro-1" && b.Status == StatusPending
	})).Return(nil)

	svc := NewService(repo, dir, notifier)
	b, err := svc.Create(context.Background(), "cust-user", CreateRequest{
		ProfessionalID: "pro-1",
		ServiceType:    "plumbing",
		ScheduledDate:  "2026-09-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, StatusPending, b.Status)
	assert.Len(t, notifier.events, 1)
	assert.Equal(t, "created", notifier.events[0].kind)
	assert.Equal(t, "pro-user", notifier.events[0].targetUser)
}

func TestCreateRequiresCustomerProfile(t *testing.T) {
	repo := new(MockRepository)
	dir := new(MockDirectory)
	dir.On("CustomerIDByUser", mock.Anything, "pro-only-user").Return("", nil)

	svc := NewService(repo, dir, nil)
	_, err := svc.Create(context.Background(), "pro-only-user", CreateRequest{
		ProfessionalID: "pro-1",
		ServiceType:    "plumbing",
		ScheduledDate:  "2026-09-01",
	})

	assert.ErrorIs(t, err, ErrCustomerAbsent)
	repo.AssertNotCalled(t, "Create")
}

func setupTransition(t *testing.T, b *Booking, proID, custID string) (*Service, *MockRepository, *recordingNotifier) {
	t.Helper()
	repo := new(MockRepository)
	dir := new(MockDirectory)
	notifier := &recordingNotifier{}

	repo.On("GetByID", mock.Anything, b.ID).Return(b, nil)
	repo.On("UpdateStatus", mock.Anything, b.ID, mock.Anything).Return(nil)
	dir.On("ProfessionalIDByUser", mock.Anything, "pro-user").Return(proID, nil)
	dir.On("CustomerIDByUser", mock.Anything, "pro-user").Return("", nil)
	dir.On("ProfessionalIDByUser", mock.Anything, "cust-user").Return("", nil)
	dir.On("CustomerIDByUser", mock.Anything, "cust-user").Return(custID, nil)
	dir.On("ProfessionalIDByUser", mock.Anything, "outsider").Return("", nil)
	dir.On("CustomerIDByUser", mock.Anything, "outsider").Return("", nil)
	dir.On("UserIDByProfessional", mock.Anything, b.ProfessionalID).Return("pro-user", nil)
	dir.On("UserIDByCustomer", mock.Anything, b.CustomerID).Return("cust-user", nil)

	return NewService(repo, dir, notifier), repo, notifier
}

func TestTransitionConfirmByProfessional(t *testing.T) {
	b := &Booking{ID: "b-1", ProfessionalID: "pro-1", CustomerID: "cust-1", Status: StatusPending}
	svc, _, notifier := setupTransition(t, b, "pro-1", "cust-1")

	got, err := svc.Transition(context.Background(), "pro-user", "b-1", StatusConfirmed)

	assert.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
	assert.Len(t, notifier.events, 1)
	assert.Equal(t, "cust-user", notifier.events[0].targetUser)
	assert.Equal(t, "customer", notifier.events[0].targetType)
}

func TestTransitionConfirmRejectedForCustomer(t *testing.T) {
	b := &Booking{ID: "b-2", ProfessionalID: "pro-1", CustomerID: "cust-1", Status: StatusPending}
	svc, repo, _ := setupTransition(t, b, "pro-1", "cust-1")

	_, err := svc.Transition(context.Background(), "cust-user", "b-2", StatusConfirmed)

	assert.ErrorIs(t, err, ErrRoleNotPermitted)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestTransitionCancelAllowedForEitherSide(t *testing.T) {
	b := &Booking{ID: "b-3", ProfessionalID: "pro-1", CustomerID: "cust-1", Status: StatusPending}
	svc, _, notifier := setupTransition(t, b, "pro-1", "cust-1")

	got, err := svc.Transition(context.Background(), "cust-user", "b-3", StatusCancelled)

	assert.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
	assert.Equal(t, "pro-user", notifier.events[0].targetUser)
	assert.Equal(t, "professional", notifier.events[0].targetType)
}

func TestTransitionInvalidMoveRejected(t *testing.T) {
	b := &Booking{ID: "b-4", ProfessionalID: "pro-1", CustomerID: "cust-1", Status: StatusCompleted}
	svc, repo, _ := setupTransition(t, b, "pro-1", "cust-1")

	_, err := svc.Transition(context.Background(), "pro-user", "b-4", StatusCancelled)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestTransitionRejectsOutsider(t *testing.T) {
	b := &Booking{ID: "b-5", ProfessionalID: "pro-1", CustomerID: "cust-1", Status: StatusPending}
	svc, repo, _ := setupTransition(t, b, "pro-1", "cust-1")

	_, err := svc.Transition(context.Background(), "outsider", "b-5", StatusCancelled)

	assert.ErrorIs(t, err, ErrNotParticipant)
	repo.AssertNotCalled(t, "UpdateStatus")
}

func TestListForUserMergesRoles(t *testing.T) {
	repo := new(MockRepository)
	dir := new(MockDirectory)
	dir.On("ProfessionalIDByUser", mock.Anything, "dual-user").Return("pro-9", nil)
	dir.On("CustomerIDByUser", mock.Anything, "dual-user").Return("cust-9", nil)
	repo.On("ListByProfessional", mock.Anything, "pro-9").Return([]*Booking{{ID: "as-pro"}}, nil)
	repo.On("ListByCustomer", mock.Anything, "cust-9").Return([]*Booking{{ID: "as-cust"}}, nil)

	svc := NewService(repo, dir, nil)
	out, err := svc.ListForUser(context.Background(), "dual-user")

	assert.NoError(t, err)
	assert.Len(t, out, 2)
}
