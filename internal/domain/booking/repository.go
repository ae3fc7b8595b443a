package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	ListByProfessional(ctx context.Context, professionalID string) ([]*Booking, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) GetByID(ctx context.Context, id string) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	return r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()}).Error
}

func (r *repository) ListByProfessional(ctx context.Context, professionalID string) ([]*Booking, error) {
	var bookings []*Booking
	err := r.db.WithContext(ctx).
		Where("professional_id = ?", professionalID).
		Order("scheduled_date DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *repository) ListByCustomer(ctx context.Context, customerID string) ([]*Booking, error) {
	var bookings []*Booking
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("scheduled_date DESC").
		Find(&bookings).Error
	return bookings, err
}
