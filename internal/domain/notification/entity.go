package notification

import (
	"encoding/json"
	"time"
)

// Type is the fixed set of notification categories. Anything outside the
// set is rejected before authorization runs.
type Type string

const (
	TypeBooking Type = "booking"
	TypePayment Type = "payment"
	TypeReview  Type = "review"
	TypeMessage Type = "message"
	TypeSystem  Type = "system"
)

func ValidType(t Type) bool {
	switch t {
	case TypeBooking, TypePayment, TypeReview, TypeMessage, TypeSystem:
		return true
	}
	return false
}

const (
	MaxTitleLength   = 200
	MaxMessageLength = 1000
)

// Notification is write-once; only the read flag mutates afterwards.
type Notification struct {
	ID        string          `gorm:"column:id;primaryKey" json:"id"`
	UserID    string          `gorm:"column:user_id;index" json:"user_id"`
	UserType  string          `gorm:"column:user_type" json:"user_type"`
	Type      Type            `gorm:"column:type" json:"type"`
	Title     string          `gorm:"column:title" json:"title"`
	Message   string          `gorm:"column:message" json:"message"`
	Data      json.RawMessage `gorm:"column:data" json:"data,omitempty"`
	IsRead    bool            `gorm:"column:is_read" json:"is_read"`
	CreatedAt time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// PushSubscription is one browser/device push endpoint registered by a user.
type PushSubscription struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	UserID    string    `gorm:"column:user_id;index" json:"user_id"`
	Endpoint  string    `gorm:"column:endpoint" json:"endpoint"`
	P256dh    string    `gorm:"column:p256dh" json:"p256dh"`
	Auth      string    `gorm:"column:auth" json:"auth"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (PushSubscription) TableName() string { return "push_subscriptions" }
