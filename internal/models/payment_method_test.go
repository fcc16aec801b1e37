package models

import (
	"testing"

	"gorm.io/gorm"
)

func method(id uint, isDefault bool) PaymentMethod {
	return PaymentMethod{Model: gorm.Model{ID: id}, IsDefault: isDefault}
}

func countDefaults(methods []PaymentMethod) int {
	n := 0
	for _, m := range methods {
		if m.IsDefault {
			n++
		}
	}
	return n
}

func TestMarkDefaultClearsSiblings(t *testing.T) {
	methods := []PaymentMethod{method(1, true), method(2, false), method(3, false)}

	if !MarkDefault(methods, 3) {
		t.Fatal("expected MarkDefault to find method 3")
	}

	if countDefaults(methods) != 1 {
		t.Fatalf("expected exactly one default, got %d", countDefaults(methods))
	}
	if !methods[2].IsDefault {
		t.Fatal("expected method 3 to be default")
	}
	if methods[0].IsDefault {
		t.Fatal("expected previous default to be cleared")
	}
}

func TestMarkDefaultUnknownID(t *testing.T) {
	methods := []PaymentMethod{method(1, true), method(2, false)}

	if MarkDefault(methods, 42) {
		t.Fatal("expected MarkDefault to reject unknown id")
	}
	if !methods[0].IsDefault || methods[1].IsDefault {
		t.Fatal("methods modified for unknown id")
	}
}

func TestPromoteCandidateAfterDeletingDefault(t *testing.T) {
	remaining := []PaymentMethod{method(4, false), method(2, false), method(7, false)}

	promoted := PromoteCandidate(remaining)
	if promoted == 0 {
		t.Fatal("expected a promotion candidate")
	}

	if promoted != 2 {
		t.Fatalf("expected oldest remaining method (2), got %d", promoted)
	}
}

func TestPromoteCandidateNoneRemaining(t *testing.T) {
	if promoted := PromoteCandidate(nil); promoted != 0 {
		t.Fatalf("expected no candidate, got %d", promoted)
	}
}

func TestDefaultMethod(t *testing.T) {
	methods := []PaymentMethod{method(1, false), method(2, true)}

	d := DefaultMethod(methods)
	if d == nil || d.ID != 2 {
		t.Fatalf("expected method 2, got %+v", d)
	}

	if DefaultMethod([]PaymentMethod{method(1, false)}) != nil {
		t.Fatal("expected nil when no default is set")
	}
}
