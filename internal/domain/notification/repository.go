package notification

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]*Notification, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error

	CreateSubscription(ctx context.Context, s *PushSubscription) error
	ListSubscriptions(ctx context.Context, userID string) ([]*PushSubscription, error)
	DeleteSubscription(ctx context.Context, id string) error
	DeleteSubscriptionByEndpoint(ctx context.Context, userID, endpoint string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) ListByUser(ctx context.Context, userID string, limit int) ([]*Notification, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []*Notification
	err := q.Find(&out).Error
	return out, err
}

func (r *repository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (r *repository) CreateSubscription(ctx context.Context, s *PushSubscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) ListSubscriptions(ctx context.Context, userID string) ([]*PushSubscription, error) {
	var subs []*PushSubscription
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&subs).Error
	return subs, err
}

func (r *repository) DeleteSubscription(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&PushSubscription{}).Error
}

func (r *repository) DeleteSubscriptionByEndpoint(ctx context.Context, userID, endpoint string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&PushSubscription{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}
