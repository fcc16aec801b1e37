package models

import (
	"testing"
	"time"
)

func TestBookingEndDate(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := BookingEndDate(start, 3)

	want := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if !end.Equal(want) {
		t.Fatalf("expected %v, got %v", want, end)
	}
}

func TestCancelCancelledBookingFails(t *testing.T) {
	b := &Booking{Status: BookingStatusCancelled}

	err := b.Cancel("changed my mind", time.Now())
	if err != ErrBookingAlreadyCancelled {
		t.Fatalf("expected ErrBookingAlreadyCancelled, got %v", err)
	}
	if b.Status != BookingStatusCancelled {
		t.Fatalf("status changed on failed cancel: %s", b.Status)
	}
	if b.CancelReason != "" {
		t.Fatalf("cancel reason recorded on failed cancel: %q", b.CancelReason)
	}
}

func TestCancelCompletedBookingFails(t *testing.T) {
	b := &Booking{Status: BookingStatusCompleted}

	err := b.Cancel("too late", time.Now())
	if err != ErrBookingCompleted {
		t.Fatalf("expected ErrBookingCompleted, got %v", err)
	}
	if b.Status != BookingStatusCompleted {
		t.Fatalf("status changed on failed cancel: %s", b.Status)
	}
}

func TestCancelConfirmedBooking(t *testing.T) {
	now := time.Now()
	b := &Booking{Status: BookingStatusConfirmed}

	if err := b.Cancel("plans changed", now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Status != BookingStatusCancelled {
		t.Fatalf("expected cancelled, got %s", b.Status)
	}
	if b.CancelReason != "plans changed" {
		t.Fatalf("expected reason recorded, got %q", b.CancelReason)
	}
	if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
		t.Fatalf("expected cancelledAt %v, got %v", now, b.CancelledAt)
	}
}

func TestIsUpcomingExcludesCancelled(t *testing.T) {
	now := time.Now()
	future := now.AddDate(0, 0, 5)

	b := &Booking{Status: BookingStatusCancelled, EndDate: future}
	if b.IsUpcoming(now) {
		t.Fatal("cancelled booking must not be upcoming")
	}

	b = &Booking{Status: BookingStatusConfirmed, EndDate: future}
	if !b.IsUpcoming(now) {
		t.Fatal("confirmed future booking must be upcoming")
	}

	b = &Booking{Status: BookingStatusConfirmed, EndDate: now.AddDate(0, 0, -1)}
	if b.IsUpcoming(now) {
		t.Fatal("ended booking must not be upcoming")
	}
}

func TestBookingTerminalStatuses(t *testing.T) {
	cases := []struct {
		status   BookingStatus
		terminal bool
	}{
		{BookingStatusConfirmed, false},
		{BookingStatusPending, false},
		{BookingStatusCompleted, true},
		{BookingStatusCancelled, true},
	}

	for _, tc := range cases {
		if tc.status.IsTerminal() != tc.terminal {
			t.Errorf("%s: expected terminal=%v", tc.status, tc.terminal)
		}
	}
}
