package models

import (
	"testing"
	"time"
)

func TestTripForwardTransitions(t *testing.T) {
	now := time.Now()
	trip := &Trip{Status: TripStatusPending}

	steps := []TripStatus{TripStatusAccepted, TripStatusStarted, TripStatusCompleted}
	for _, next := range steps {
		if err := trip.Transition(next, now); err != nil {
			t.Fatalf("transition to %s: unexpected error: %v", next, err)
		}
		if trip.Status != next {
			t.Fatalf("expected status %s, got %s", next, trip.Status)
		}
	}

	if trip.AcceptedAt == nil || trip.StartedAt == nil || trip.CompletedAt == nil {
		t.Fatal("expected every transition to stamp its timestamp")
	}
}

func TestTripTransitionRequiresExactPredecessor(t *testing.T) {
	now := time.Now()
	cases := []struct {
		from TripStatus
		to   TripStatus
	}{
		{TripStatusPending, TripStatusStarted},
		{TripStatusPending, TripStatusCompleted},
		{TripStatusAccepted, TripStatusCompleted},
		{TripStatusAccepted, TripStatusAccepted},
		{TripStatusStarted, TripStatusAccepted},
		{TripStatusCompleted, TripStatusStarted},
		{TripStatusCancelled, TripStatusAccepted},
	}

	for _, tc := range cases {
		trip := &Trip{Status: tc.from}
		err := trip.Transition(tc.to, now)
		if err == nil {
			t.Errorf("%s -> %s: expected error", tc.from, tc.to)
			continue
		}
		if trip.Status != tc.from {
			t.Errorf("%s -> %s: status changed on failed transition: %s", tc.from, tc.to, trip.Status)
		}
	}
}

func TestTripTransitionErrorNamesCurrentStatus(t *testing.T) {
	trip := &Trip{Status: TripStatusPending}
	err := trip.Transition(TripStatusStarted, time.Now())
	if err == nil {
		t.Fatal("expected error")
	}
	want := "Trip cannot be started. Current status: pending"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestTripCancelFromNonTerminalStates(t *testing.T) {
	now := time.Now()

	for _, from := range []TripStatus{TripStatusPending, TripStatusAccepted, TripStatusStarted} {
		trip := &Trip{Status: from}
		if err := trip.Transition(TripStatusCancelled, now); err != nil {
			t.Errorf("cancel from %s: unexpected error: %v", from, err)
		}
		if trip.CancelledAt == nil {
			t.Errorf("cancel from %s: missing cancelledAt", from)
		}
	}

	for _, from := range []TripStatus{TripStatusCompleted, TripStatusCancelled} {
		trip := &Trip{Status: from}
		if err := trip.Transition(TripStatusCancelled, now); err == nil {
			t.Errorf("cancel from %s: expected error", from)
		}
	}
}

func TestEarningsSince(t *testing.T) {
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	lastMonth := now.AddDate(0, -1, -2)

	trips := []Trip{
		{Status: TripStatusCompleted, Fare: 100, CompletedAt: &now},
		{Status: TripStatusCompleted, Fare: 250, CompletedAt: &yesterday},
		{Status: TripStatusCompleted, Fare: 500, CompletedAt: &lastMonth},
		{Status: TripStatusCancelled, Fare: 999, CancelledAt: &now},
		{Status: TripStatusStarted, Fare: 999},
	}

	total, count := EarningsSince(trips, now.AddDate(0, 0, -7))
	if count != 2 || total != 350 {
		t.Fatalf("week window: expected 2 trips totalling 350, got %d / %.2f", count, total)
	}

	total, count = EarningsSince(trips, time.Time{})
	if count != 3 || total != 850 {
		t.Fatalf("all time: expected 3 trips totalling 850, got %d / %.2f", count, total)
	}
}
