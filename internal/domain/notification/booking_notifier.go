package notification

import (
	"context"

	"go.uber.org/zap"

	"handyconnect/internal/domain/booking"
)

// BookingNotifier adapts the notification service to the booking module's
// Notifier. Booking writes never fail because a notification could not be
// recorded; errors are only logged.
type BookingNotifier struct {
	service *Service
	log     *zap.Logger
}

func NewBookingNotifier(service *Service, log *zap.Logger) *BookingNotifier {
	return &BookingNotifier{service: service, log: log}
}

func (b *BookingNotifier) NotifyBookingCreated(ctx context.Context, professionalUserID, bookingID, serviceType string) {
	err := b.service.CreateInternal(ctx, professionalUserID, "professional", TypeBooking,
		"New booking request",
		"You have a new booking request for "+serviceType,
		map[string]any{"booking_id": bookingID},
	)
	if err != nil {
		b.log.Warn("booking-created notification failed",
			zap.String("booking_id", bookingID), zap.Error(err))
	}
}

func (b *BookingNotifier) NotifyBookingStatus(ctx context.Context, targetUserID, targetUserType, bookingID string, status booking.Status) {
	err := b.service.CreateInternal(ctx, targetUserID, targetUserType, TypeBooking,
		"Booking "+string(status),
		"Your booking is now "+string(status),
		map[string]any{"booking_id": bookingID, "status": string(status)},
	)
	if err != nil {
		b.log.Warn("booking-status notification failed",
			zap.String("booking_id", bookingID), zap.Error(err))
	}
}
