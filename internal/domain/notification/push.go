package notification

import (
	"context"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// Pusher delivers one payload to one subscription endpoint. Implementations
// return ErrSubscriptionGone when the endpoint reports the subscription is
// permanently dead, so the caller can drop it.
type Pusher interface {
	// Configured reports whether the transport has its signing keys.
	Configured() bool
	Send(ctx context.Context, sub *PushSubscription, payload []byte) error
}

// WebPusher signs deliveries with the server's VAPID key pair.
type WebPusher struct {
	publicKey  string
	privateKey string
	subject    string
}

func NewWebPusher(publicKey, privateKey, subject string) *WebPusher {
	return &WebPusher{publicKey: publicKey, privateKey: privateKey, subject: subject}
}

// Configured reports whether both VAPID keys are present.
func (p *WebPusher) Configured() bool {
	return p.publicKey != "" && p.privateKey != ""
}

func (p *WebPusher) Send(ctx context.Context, sub *PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      p.subject,
		VAPIDPublicKey:  p.publicKey,
		VAPIDPrivateKey: p.privateKey,
		TTL:             60,
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone, resp.StatusCode == http.StatusNotFound:
		return ErrSubscriptionGone
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("push endpoint returned %d", resp.StatusCode)
	}
	return nil
}
