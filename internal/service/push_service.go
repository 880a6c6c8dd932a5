package service

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"

	"sunescape/internal/models"
)

// PushService sends Web Push notifications to subscribed browsers.
// Like the email service it runs disabled when no VAPID keys are
// configured.
type PushService struct {
	publicKey  string
	privateKey string
	subject    string
	enabled    bool
}

// NewPushService creates a new push service
func NewPushService(publicKey, privateKey, subject string) *PushService {
	if publicKey == "" || privateKey == "" {
		log.Println("Push service disabled: VAPID keys not configured")
		return &PushService{enabled: false}
	}
	log.Println("Push service enabled")
	return &PushService{
		publicKey:  publicKey,
		privateKey: privateKey,
		subject:    subject,
		enabled:    true,
	}
}

// IsEnabled returns whether the push service is enabled
func (s *PushService) IsEnabled() bool {
	return s.enabled
}

// PublicKey returns the VAPID public key for browser registration
func (s *PushService) PublicKey() string {
	return s.publicKey
}

// pushPayload is the JSON body delivered to the service worker
type pushPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send pushes one notification to a single subscription. A gone
// endpoint (HTTP 404/410) is reported so the caller can prune it.
func (s *PushService) Send(sub *models.PushSubscription, title, body string) (gone bool, err error) {
	if !s.enabled {
		return false, nil
	}

	payload, err := json.Marshal(pushPayload{Title: title, Body: body})
	if err != nil {
		return false, fmt.Errorf("failed to marshal push payload: %w", err)
	}

	resp, err := webpush.SendNotification(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subject,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             int((12 * time.Hour).Seconds()),
	})
	if err != nil {
		if strings.Contains(err.Error(), "410") || strings.Contains(err.Error(), "404") {
			return true, err
		}
		return false, fmt.Errorf("failed to push to %s: %w", sub.Endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 || resp.StatusCode == 410 {
		return true, fmt.Errorf("push endpoint gone: %s", sub.Endpoint)
	}
	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("push to %s failed with status %d", sub.Endpoint, resp.StatusCode)
	}
	return false, nil
}
