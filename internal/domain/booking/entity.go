package booking

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// transitions is the one-way status machine. Nothing reverses; cancelled is
// reachable only from pending and confirmed.
var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking links a customer profile to a professional profile for a service
// on a date.
type Booking struct {
	ID             string    `gorm:"column:id;primaryKey" json:"id"`
	ProfessionalID string    `gorm:"column:professional_id;index" json:"professional_id"`
	CustomerID     string    `gorm:"column:customer_id;index" json:"customer_id"`
	ServiceType    string    `gorm:"column:service_type" json:"service_type"`
	ScheduledDate  string    `gorm:"column:scheduled_date" json:"scheduled_date"`
	ScheduledTime  string    `gorm:"column:scheduled_time" json:"scheduled_time,omitempty"`
	Status         Status    `gorm:"column:status" json:"status"`
	RateAmount     string    `gorm:"column:rate_amount" json:"rate_amount,omitempty"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }
