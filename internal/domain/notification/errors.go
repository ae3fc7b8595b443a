package notification

import "errors"

var (
	ErrNoRelationship       = errors.New("no relationship with target user")
	ErrPushNotConfigured    = errors.New("push keys are not configured")
	ErrSubscriptionGone     = errors.New("push subscription is gone")
	ErrNotificationNotFound = errors.New("notification not found")
)
