package services

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// Push sends FCM notifications to registered devices. When Firebase is not
// configured the service is created disabled and every send is a no-op, so
// callers never have to branch.
type Push struct {
	client *messaging.Client
	logger *slog.Logger
}

// NotificationPayload represents the notification data
type NotificationPayload struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// NewPush initializes the Firebase Admin SDK from a service account file.
func NewPush(serviceAccountPath string, logger *slog.Logger) (*Push, error) {
	if serviceAccountPath == "" {
		logger.Warn("FIREBASE_SERVICE_ACCOUNT_PATH not set, push notifications disabled")
		return &Push{logger: logger}, nil
	}

	ctx := context.Background()
	opt := option.WithCredentialsFile(serviceAccountPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %v", err)
	}

	logger.Info("firebase cloud messaging initialized")
	return &Push{client: client, logger: logger}, nil
}

// Enabled reports whether a messaging client is configured.
func (p *Push) Enabled() bool {
	return p.client != nil
}

// SendToToken delivers a notification to a single device token. Errors are
// logged, never propagated: push delivery must not fail the request that
// triggered it.
func (p *Push) SendToToken(ctx context.Context, token string, payload NotificationPayload) {
	if !p.Enabled() || token == "" {
		return
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID:    "driverhire_trips",
				DefaultSound: true,
			},
		},
	}

	if _, err := p.client.Send(ctx, message); err != nil {
		p.logger.Warn("fcm send failed", "err", err)
	}
}

// SendTripAccepted notifies the rider that their driver accepted the hire.
func (p *Push) SendTripAccepted(ctx context.Context, token, driverName string, tripID uint) {
	p.SendToToken(ctx, token, NotificationPayload{
		Title: "Driver confirmed",
		Body:  fmt.Sprintf("%s has accepted your booking", driverName),
		Data: map[string]string{
			"type":   "trip_accepted",
			"tripId": fmt.Sprintf("%d", tripID),
		},
	})
}

// SendTripCompleted notifies the rider that the hire finished.
func (p *Push) SendTripCompleted(ctx context.Context, token string, tripID uint, fare float64) {
	p.SendToToken(ctx, token, NotificationPayload{
		Title: "Trip completed",
		Body:  fmt.Sprintf("Your trip is complete. Total fare %.2f", fare),
		Data: map[string]string{
			"type":   "trip_completed",
			"tripId": fmt.Sprintf("%d", tripID),
		},
	})
}
