package services

import (
	"context"
	"log/slog"
	"math"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
)

// Payments is a thin wrapper around stripe-go for the hold/capture/cancel
// flow used by card bookings: a manual-capture PaymentIntent is opened at
// booking time and captured when the driver completes the trip. When no API
// key is configured every call is a no-op returning an empty intent id.
type Payments struct {
	enabled  bool
	currency string
	logger   *slog.Logger
}

// NewPayments configures the stripe client. apiKey may be empty.
func NewPayments(apiKey, currency string, logger *slog.Logger) *Payments {
	if apiKey != "" {
		stripe.Key = apiKey
	}
	return &Payments{enabled: apiKey != "", currency: currency, logger: logger}
}

// Enabled reports whether a Stripe API key is configured.
func (p *Payments) Enabled() bool {
	return p.enabled
}

// Hold creates a PaymentIntent with capture_method=manual for the given
// amount (major currency units) and returns its id.
func (p *Payments) Hold(ctx context.Context, amount float64) (string, error) {
	if !p.enabled {
		return "", nil
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(amount)),
		Currency: stripe.String(p.currency),
	}
	params.CaptureMethod = stripe.String(string(stripe.PaymentIntentCaptureMethodManual))
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", err
	}
	return pi.ID, nil
}

// Capture finalizes a previously-held PaymentIntent.
func (p *Payments) Capture(ctx context.Context, paymentIntentID string) error {
	if !p.enabled || paymentIntentID == "" {
		return nil
	}
	_, err := paymentintent.Capture(paymentIntentID, &stripe.PaymentIntentCaptureParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		p.logger.Error("payment capture failed", "paymentIntentId", paymentIntentID, "error", err)
	}
	return err
}

// Release cancels the hold on a PaymentIntent.
func (p *Payments) Release(ctx context.Context, paymentIntentID string) error {
	if !p.enabled || paymentIntentID == "" {
		return nil
	}
	_, err := paymentintent.Cancel(paymentIntentID, &stripe.PaymentIntentCancelParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		p.logger.Error("payment release failed", "paymentIntentId", paymentIntentID, "error", err)
	}
	return err
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
