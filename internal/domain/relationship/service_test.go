package relationship

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ProfessionalIDByUser(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) CustomerIDByUser(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockRepository) HasBooking(ctx context.Context, professionalID, customerID string) (bool, error) {
	args := m.Called(ctx, professionalID, customerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) HasConversation(ctx context.Context, professionalID, customerID string) (bool, error) {
	args := m.Called(ctx, professionalID, customerID)
	return args.Bool(0), args.Error(1)
}

const (
	requester = "user-req"
	target    = "user-tgt"
)

func TestVerifySelfAlwaysAllowed(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo)

	ok, err := svc.Verify(context.Background(), requester, requester)

	assert.NoError(t, err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "ProfessionalIDByUser")
}

func TestVerifyBookingRelationship(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ProfessionalIDByUser", mock.Anything, requester).Return("pro-1", nil)
	repo.On("CustomerIDByUser", mock.Anything, requester).Return("", nil)
	repo.On("ProfessionalIDByUser", mock.Anything, target).Return("", nil)
	repo.On("CustomerIDByUser", mock.Anything, target).Return("cust-1", nil)
	repo.On("HasBooking", mock.Anything, "pro-1", "cust-1").Return(true, nil)

	ok, err := NewService(repo).Verify(context.Background(), requester, target)

	assert.NoError(t, err)
	assert.True(t, ok)
	repo.AssertNotCalled(t, "HasConversation")
}

func TestVerifyConversationOnlyRelationship(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ProfessionalIDByUser", mock.Anything, requester).Return("", nil)
	repo.On("CustomerIDByUser", mock.Anything, requester).Return("cust-2", nil)
	repo.On("ProfessionalIDByUser", mock.Anything, target).Return("pro-2", nil)
	repo.On("CustomerIDByUser", mock.Anything, target).Return("", nil)
	repo.On("HasBooking", mock.Anything, "pro-2", "cust-2").Return(false, nil)
	repo.On("HasConversation", mock.Anything, "pro-2", "cust-2").Return(true, nil)

	ok, err := NewService(repo).Verify(context.Background(), requester, target)

	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyNoRelationship(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ProfessionalIDByUser", mock.Anything, requester).Return("pro-3", nil)
	repo.On("CustomerIDByUser", mock.Anything, requester).Return("", nil)
	repo.On("ProfessionalIDByUser", mock.Anything, target).Return("", nil)
	repo.On("CustomerIDByUser", mock.Anything, target).Return("cust-3", nil)
	repo.On("HasBooking", mock.Anything, "pro-3", "cust-3").Return(false, nil)
	repo.On("HasConversation", mock.Anything, "pro-3", "cust-3").Return(false, nil)

	ok, err := NewService(repo).Verify(context.Background(), requester, target)

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyNoSharedRolePair(t *testing.T) {
	// Both users are professionals only; no pairing is possible.
	repo := new(MockRepository)
	repo.On("ProfessionalIDByUser", mock.Anything, requester).Return("pro-a", nil)
	repo.On("CustomerIDByUser", mock.Anything, requester).Return("", nil)
	repo.On("ProfessionalIDByUser", mock.Anything, target).Return("pro-b", nil)
	repo.On("CustomerIDByUser", mock.Anything, target).Return("", nil)

	ok, err := NewService(repo).Verify(context.Background(), requester, target)

	assert.NoError(t, err)
	assert.False(t, ok)
	repo.AssertNotCalled(t, "HasBooking")
	repo.AssertNotCalled(t, "HasConversation")
}

func TestVerifyDualRoleChecksBothDirections(t *testing.T) {
	// Requester holds both roles; the professional-side probe misses and the
	// customer-side probe hits.
	repo := new(MockRepository)
	repo.On("ProfessionalIDByUser", mock.Anything, requester).Return("pro-d", nil)
	repo.On("CustomerIDByUser", mock.Anything, requester).Return("cust-d", nil)
	repo.On("ProfessionalIDByUser", mock.Anything, target).Return("pro-t", nil)
	repo.On("CustomerIDByUser", mock.Anything, target).Return("cust-t", nil)
	repo.On("HasBooking", mock.Anything, "pro-d", "cust-t").Return(false, nil)
	repo.On("HasConversation", mock.Anything, "pro-d", "cust-t").Return(false, nil)
	repo.On("HasBooking", mock.Anything, "pro-t", "cust-d").Return(true, nil)

	ok, err := NewService(repo).Verify(context.Background(), requester, target)

	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyLookupErrorFailsClosed(t *testing.T) {
	repo := new(MockRepository)
	boom := errors.New("db down")
	repo.On("ProfessionalIDByUser", mock.Anything, mock.Anything).Return("", boom)
	repo.On("CustomerIDByUser", mock.Anything, mock.Anything).Return("", nil)

	ok, err := NewService(repo).Verify(context.Background(), requester, target)

	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}

func TestVerifyProbeErrorFailsClosed(t *testing.T) {
	repo := new(MockRepository)
	boom := errors.New("query failed")
	repo.On("ProfessionalIDByUser", mock.Anything, requester).Return("pro-e", nil)
	repo.On("CustomerIDByUser", mock.Anything, requester).Return("", nil)
	repo.On("ProfessionalIDByUser", mock.Anything, target).Return("", nil)
	repo.On("CustomerIDByUser", mock.Anything, target).Return("cust-e", nil)
	repo.On("HasBooking", mock.Anything, "pro-e", "cust-e").Return(false, boom)

	ok, err := NewService(repo).Verify(context.Background(), requester, target)

	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)
}
