package models

import (
	"math"

	"gorm.io/gorm"
)

// Review is a rider's rating of a driver after a hire.
type Review struct {
	gorm.Model
	DriverID  uint    `json:"driverId" gorm:"not null;index"`
	ClientID  uint    `json:"clientId" gorm:"not null"`
	BookingID uint    `json:"bookingId"`
	Rating    float64 `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string  `json:"comment,omitempty"`
	Client    *User   `json:"client,omitempty" gorm:"foreignKey:ClientID"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}

// AverageRating computes the arithmetic mean of ratings rounded to one
// decimal place. Zero when there are no ratings.
func AverageRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	mean := sum / float64(len(ratings))
	return math.Round(mean*10) / 10
}
