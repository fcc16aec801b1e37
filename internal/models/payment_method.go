package models

import (
	"gorm.io/gorm"
)

type PaymentMethodKind string

const (
	PaymentMethodCard PaymentMethodKind = "card"
	PaymentMethodUPI  PaymentMethodKind = "upi"
	PaymentMethodBank PaymentMethodKind = "bank"
)

// PaymentMethod is a stored way to pay. At most one method per user carries
// the default flag; MarkDefault and PromoteCandidate are the only two
// places that decide who holds it.
type PaymentMethod struct {
	gorm.Model
	UserID    uint              `json:"userId" gorm:"not null;index"`
	Kind      PaymentMethodKind `json:"kind" gorm:"not null"`
	Label     string            `json:"label" gorm:"not null"` // e.g. "Visa ending 4242"
	Details   string            `json:"details"`               // masked card number, UPI handle or account
	IsDefault bool              `json:"isDefault" gorm:"not null;default:false"`
}

// TableName specifies the table name
func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// MarkDefault sets the default flag on the method with the given id and
// clears it on every sibling. Returns false when id is not in methods, in
// which case nothing is modified.
func MarkDefault(methods []PaymentMethod, id uint) bool {
	found := false
	for i := range methods {
		if methods[i].ID == id {
			found = true
		}
	}
	if !found {
		return false
	}
	for i := range methods {
		methods[i].IsDefault = methods[i].ID == id
	}
	return true
}

// PromoteCandidate picks the method that inherits the default flag after
// the current default is deleted. Which one wins is unspecified; the oldest
// remaining method is as good as any. Returns 0 when none remain.
func PromoteCandidate(remaining []PaymentMethod) uint {
	var candidate uint
	for _, m := range remaining {
		if candidate == 0 || m.ID < candidate {
			candidate = m.ID
		}
	}
	return candidate
}

// DefaultMethod returns the user's default method, or nil when none is set.
func DefaultMethod(methods []PaymentMethod) *PaymentMethod {
	for i := range methods {
		if methods[i].IsDefault {
			return &methods[i]
		}
	}
	return nil
}
