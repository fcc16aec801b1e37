package models

import "testing"

func TestHasBadgeCaseInsensitive(t *testing.T) {
	driver := DriverProfile{
		Badges: []Badge{{Name: "Business"}, {Name: "Outstation"}},
	}

	if !driver.HasBadge("business") {
		t.Error("expected match for lowercase query")
	}
	if !driver.HasBadge("BUSINESS") {
		t.Error("expected match for uppercase query")
	}
	if !driver.HasBadge("Outstation") {
		t.Error("expected match for exact name")
	}
	if driver.HasBadge("Rental") {
		t.Error("expected no match for absent badge")
	}
}

func TestHasBadgeNoBadges(t *testing.T) {
	driver := DriverProfile{}
	if driver.HasBadge("Business") {
		t.Error("expected no match when driver has no badges")
	}
}

func TestFirstBadgeName(t *testing.T) {
	driver := DriverProfile{
		Badges: []Badge{{Name: "Outstation"}, {Name: "Business"}},
	}
	if got := driver.FirstBadgeName(); got != "Outstation" {
		t.Errorf("FirstBadgeName() = %q, want %q", got, "Outstation")
	}

	empty := DriverProfile{}
	if got := empty.FirstBadgeName(); got != "" {
		t.Errorf("FirstBadgeName() = %q, want empty", got)
	}
}
