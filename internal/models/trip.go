package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type TripStatus string

const (
	TripStatusPending   TripStatus = "pending"
	TripStatusAccepted  TripStatus = "accepted"
	TripStatusStarted   TripStatus = "started"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// tripPredecessor is the whole transition table: each forward status is
// reachable only from the exact status it maps to. Cancellation is handled
// separately because it is reachable from every non-terminal state.
var tripPredecessor = map[TripStatus]TripStatus{
	TripStatusAccepted:  TripStatusPending,
	TripStatusStarted:   TripStatusAccepted,
	TripStatusCompleted: TripStatusStarted,
}

// Trip is the driver-side record mirroring a booking. Its lifecycle runs
// strictly forward along pending, accepted, started, completed.
type Trip struct {
	gorm.Model
	BookingID      uint          `json:"bookingId" gorm:"not null;uniqueIndex"`
	DriverID       uint          `json:"driverId" gorm:"not null;index"`
	ClientID       uint          `json:"clientId" gorm:"not null;index"`
	PickupAddress  string        `json:"pickupAddress"`
	PickupLat      float64       `json:"pickupLat"`
	PickupLng      float64       `json:"pickupLng"`
	DropoffAddress string        `json:"dropoffAddress"`
	DropoffLat     float64       `json:"dropoffLat"`
	DropoffLng     float64       `json:"dropoffLng"`
	Distance       float64       `json:"distance"` // in kilometers
	Duration       int           `json:"duration"` // in days
	Fare           float64       `json:"fare" gorm:"not null"`
	PaymentMethod  string        `json:"paymentMethod"`
	PaymentStatus  PaymentStatus `json:"paymentStatus" gorm:"not null;default:'pending'"`
	Status         TripStatus    `json:"status" gorm:"not null;default:'pending'"`
	RequestedAt    time.Time     `json:"requestedAt"`
	AcceptedAt     *time.Time    `json:"acceptedAt,omitempty"`
	StartedAt      *time.Time    `json:"startedAt,omitempty"`
	CompletedAt    *time.Time    `json:"completedAt,omitempty"`
	CancelledAt    *time.Time    `json:"cancelledAt,omitempty"`
	Driver         *User         `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
	Client         *User         `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName specifies the table name
func (Trip) TableName() string {
	return "trips"
}

// IsTerminal reports whether the status accepts no further mutation.
func (s TripStatus) IsTerminal() bool {
	return s == TripStatusCompleted || s == TripStatusCancelled
}

// CanTransition validates a move to the target status against the
// transition table without applying it.
func (t *Trip) CanTransition(to TripStatus) error {
	if to == TripStatusCancelled {
		if t.Status.IsTerminal() {
			return fmt.Errorf("Trip cannot be cancelled. Current status: %s", t.Status)
		}
		return nil
	}
	required, ok := tripPredecessor[to]
	if !ok || t.Status != required {
		return fmt.Errorf("Trip cannot be %s. Current status: %s", to, t.Status)
	}
	return nil
}

// Transition applies a status change, stamping the matching timestamp. It
// is the only place trip statuses move; handlers never compare status
// strings themselves.
func (t *Trip) Transition(to TripStatus, now time.Time) error {
	if err := t.CanTransition(to); err != nil {
		return err
	}
	t.Status = to
	switch to {
	case TripStatusAccepted:
		t.AcceptedAt = &now
	case TripStatusStarted:
		t.StartedAt = &now
	case TripStatusCompleted:
		t.CompletedAt = &now
	case TripStatusCancelled:
		t.CancelledAt = &now
	}
	return nil
}

// EarningsSince sums fares and counts trips completed at or after since.
// Trips without a completion timestamp are skipped.
func EarningsSince(trips []Trip, since time.Time) (total float64, count int) {
	for _, t := range trips {
		if t.Status != TripStatusCompleted || t.CompletedAt == nil {
			continue
		}
		if t.CompletedAt.Before(since) {
			continue
		}
		total += t.Fare
		count++
	}
	return total, count
}
