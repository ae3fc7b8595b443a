package notification

// DispatchRequest is the in-app notification payload. All fields except
// Data are required.
type DispatchRequest struct {
	UserID   string         `json:"user_id"`
	UserType string         `json:"user_type"`
	Type     Type           `json:"type"`
	Title    string         `json:"title"`
	Message  string         `json:"message"`
	Data     map[string]any `json:"data,omitempty"`
}

// PushRequest is the web-push payload. The original client API uses
// userId/title/body naming, kept here for compatibility.
type PushRequest struct {
	UserID string         `json:"userId"`
	Title  string         `json:"title"`
	Body   string         `json:"body"`
	Icon   string         `json:"icon,omitempty"`
	URL    string         `json:"url,omitempty"`
	Data   map[string]any `json:"data,omitempty"`
}

// PushResult aggregates per-subscription outcomes; one subscription's
// failure never aborts the others.
type PushResult struct {
	Message    string `json:"message"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`

	// Total distinguishes "no subscriptions" from a real fan-out.
	Total int `json:"-"`
}

type RegisterSubscriptionRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	P256dh   string `json:"p256dh" validate:"required"`
	Auth     string `json:"auth" validate:"required"`
}
