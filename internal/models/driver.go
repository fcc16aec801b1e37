package models

import (
	"strings"

	"gorm.io/gorm"
)

// DriverApprovalStatus is set by an external admin process. This service only
// reads it: riders are never shown drivers that are not approved.
type DriverApprovalStatus string

const (
	DriverApprovalPending  DriverApprovalStatus = "pending"
	DriverApprovalApproved DriverApprovalStatus = "approved"
	DriverApprovalRejected DriverApprovalStatus = "rejected"
)

// DriverProfile holds the marketplace-facing driver record. Exactly one
// exists per user with UserType driver.
type DriverProfile struct {
	gorm.Model
	UserID          uint                 `json:"userId" gorm:"not null;uniqueIndex"`
	Rating          float64              `json:"rating" gorm:"not null;default:0"`
	TripsCount      int                  `json:"tripsCount" gorm:"not null;default:0"`
	PricePerDay     float64              `json:"pricePerDay" gorm:"not null"`
	VehicleMake     string               `json:"vehicleMake"`
	VehicleModel    string               `json:"vehicleModel"`
	VehiclePlate    string               `json:"vehiclePlate"`
	VehicleImageURL string               `json:"vehicleImageUrl"`
	IsAvailable     bool                 `json:"isAvailable" gorm:"not null;default:false"`
	Status          DriverApprovalStatus `json:"status" gorm:"not null;default:'pending'"`
	Badges          []Badge              `json:"badges" gorm:"foreignKey:DriverID"`
	User            *User                `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name
func (DriverProfile) TableName() string {
	return "driver_profiles"
}

// Badge is a trip-type preference advertised by a driver ("Business",
// "Outstation", ...). Order of insertion is meaningful: the first badge
// labels new bookings.
type Badge struct {
	gorm.Model
	DriverID uint   `json:"driverId" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`
}

// TableName specifies the table name
func (Badge) TableName() string {
	return "driver_badges"
}

// HasBadge reports whether the driver advertises a badge with the given
// name, compared case-insensitively.
func (d *DriverProfile) HasBadge(name string) bool {
	for _, b := range d.Badges {
		if strings.EqualFold(b.Name, name) {
			return true
		}
	}
	return false
}

// FirstBadgeName returns the name of the driver's first badge, or "" when
// the driver has none. New bookings inherit it as their trip type.
func (d *DriverProfile) FirstBadgeName() string {
	if len(d.Badges) == 0 {
		return ""
	}
	return d.Badges[0].Name
}
