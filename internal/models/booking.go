package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPending PaymentStatus = "pending"
)

var (
	ErrBookingAlreadyCancelled = errors.New("Booking is already cancelled")
	ErrBookingCompleted        = errors.New("Cannot cancel a completed booking")
)

// Booking is the rider-side record of a multi-day driver hire. Nothing in
// this service moves a booking to completed; that transition belongs to an
// external settlement process.
type Booking struct {
	gorm.Model
	ClientID        uint           `json:"clientId" gorm:"not null;index"`
	DriverID        uint           `json:"driverId" gorm:"not null;index"`
	StartDate       time.Time      `json:"startDate" gorm:"not null"`
	EndDate         time.Time      `json:"endDate" gorm:"not null"`
	Duration        int            `json:"duration" gorm:"not null"` // in days
	TotalAmount     float64        `json:"totalAmount" gorm:"not null"`
	Location        string         `json:"location"`
	Destination     string         `json:"destination"`
	Status          BookingStatus  `json:"status" gorm:"not null;default:'confirmed'"`
	PaymentMethod   string         `json:"paymentMethod"`
	PaymentStatus   PaymentStatus  `json:"paymentStatus" gorm:"not null;default:'pending'"`
	PaymentIntentID string         `json:"-"`
	TripType        string         `json:"tripType"`
	CancelReason    string         `json:"cancelReason,omitempty"`
	CancelledAt     *time.Time     `json:"cancelledAt,omitempty"`
	Client          *User          `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Driver          *DriverProfile `json:"driver,omitempty" gorm:"foreignKey:DriverID"`
}

// TableName specifies the table name
func (Booking) TableName() string {
	return "bookings"
}

// IsTerminal reports whether the status accepts no further mutation.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanCancel is the single cancellation guard shared by every caller. It
// returns nil when the booking may still be cancelled and leaves the
// booking untouched otherwise.
func (b *Booking) CanCancel() error {
	switch b.Status {
	case BookingStatusCancelled:
		return ErrBookingAlreadyCancelled
	case BookingStatusCompleted:
		return ErrBookingCompleted
	default:
		return nil
	}
}

// Cancel moves the booking to cancelled, recording the reason and time.
func (b *Booking) Cancel(reason string, now time.Time) error {
	if err := b.CanCancel(); err != nil {
		return err
	}
	b.Status = BookingStatusCancelled
	b.CancelReason = reason
	b.CancelledAt = &now
	return nil
}

// BookingEndDate computes the end of a hire that starts on start and runs
// for durationDays days.
func BookingEndDate(start time.Time, durationDays int) time.Time {
	return start.AddDate(0, 0, durationDays)
}

// IsUpcoming reports whether the booking should appear in the client's
// upcoming list: it ends at or after now and was not cancelled.
func (b *Booking) IsUpcoming(now time.Time) bool {
	return b.Status != BookingStatusCancelled && !b.EndDate.Before(now)
}
