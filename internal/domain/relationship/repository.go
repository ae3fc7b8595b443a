package relationship

import (
	"context"

	"gorm.io/gorm"
)

// Repository is the read-only lookup surface the guard needs. It queries the
// profile, booking and conversation tables directly; the guard never writes.
type Repository interface {
	ProfessionalIDByUser(ctx context.Context, userID string) (string, error)
	CustomerIDByUser(ctx context.Context, userID string) (string, error)
	HasBooking(ctx context.Context, professionalID, customerID string) (bool, error)
	HasConversation(ctx context.Context, professionalID, customerID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ProfessionalIDByUser(ctx context.Context, userID string) (string, error) {
	return r.profileID(ctx, "professional_profiles", userID)
}

func (r *repository) CustomerIDByUser(ctx context.Context, userID string) (string, error) {
	return r.profileID(ctx, "customer_profiles", userID)
}

func (r *repository) profileID(ctx context.Context, table, userID string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table(table).
		Select("id").
		Where("user_id = ?", userID).
		Limit(1).
		Find(&ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", nil
	}
	return ids[0], nil
}

func (r *repository) HasBooking(ctx context.Context, professionalID, customerID string) (bool, error) {
	return r.pairExists(ctx, "bookings", professionalID, customerID)
}

func (r *repository) HasConversation(ctx context.Context, professionalID, customerID string) (bool, error) {
	return r.pairExists(ctx, "conversations", professionalID, customerID)
}

func (r *repository) pairExists(ctx context.Context, table, professionalID, customerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where("professional_id = ? AND customer_id = ?", professionalID, customerID).
		Count(&count).Error
	return count > 0, err
}
