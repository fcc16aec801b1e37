package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kofiasare/driverhire-backend/internal/models"
	"github.com/kofiasare/driverhire-backend/internal/observability"
	"github.com/kofiasare/driverhire-backend/internal/services"
	"github.com/kofiasare/driverhire-backend/pkg/utils"
)

const bookingDateLayout = "2006-01-02"

// CreateBooking opens a multi-day hire against a driver: the booking the
// rider sees and the pending trip the driver works are created together.
func CreateBooking(db *gorm.DB, hub *services.Hub, payments *services.Payments) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			DriverID    uint    `json:"driverId" binding:"required"`
			StartDate   string  `json:"startDate" binding:"required"`
			Duration    int     `json:"duration" binding:"required,min=1"`
			TotalAmount float64 `json:"totalAmount" binding:"required"`
			Location    string  `json:"location"`
			Destination string  `json:"destination"`
			PickupLat   float64 `json:"pickupLat"`
			PickupLng   float64 `json:"pickupLng"`
			DropoffLat  float64 `json:"dropoffLat"`
			DropoffLng  float64 `json:"dropoffLng"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		startDate, err := time.Parse(bookingDateLayout, input.StartDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "startDate must be formatted as YYYY-MM-DD"})
			return
		}

		var driver models.DriverProfile
		if err := db.Preload("Badges").First(&driver, input.DriverID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		if driver.Status != models.DriverApprovalApproved {
			c.JSON(400, gin.H{"error": "Driver is not accepting bookings"})
			return
		}

		// The booking inherits the label of the rider's default payment
		// method; an empty label means they will choose at settlement.
		var methods []models.PaymentMethod
		if err := db.Where("user_id = ?", userId).Find(&methods).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payment methods"})
			return
		}
		defaultMethod := models.DefaultMethod(methods)

		paymentLabel := ""
		if defaultMethod != nil {
			paymentLabel = defaultMethod.Label
		}

		booking := models.Booking{
			ClientID:      userId,
			DriverID:      driver.ID,
			StartDate:     startDate,
			EndDate:       models.BookingEndDate(startDate, input.Duration),
			Duration:      input.Duration,
			TotalAmount:   input.TotalAmount,
			Location:      input.Location,
			Destination:   input.Destination,
			Status:        models.BookingStatusConfirmed,
			PaymentMethod: paymentLabel,
			PaymentStatus: models.PaymentStatusPending,
			TripType:      driver.FirstBadgeName(),
		}

		// Card bookings get a manual-capture hold that is captured at trip
		// completion. A failed hold is not fatal: the booking settles later.
		if payments.Enabled() && defaultMethod != nil && defaultMethod.Kind == models.PaymentMethodCard {
			intentID, err := payments.Hold(c.Request.Context(), input.TotalAmount)
			if err == nil {
				booking.PaymentIntentID = intentID
			}
		}

		var distance float64
		if input.PickupLat != 0 || input.PickupLng != 0 {
			distance = utils.HaversineDistance(input.PickupLat, input.PickupLng, input.DropoffLat, input.DropoffLng)
		}

		trip := models.Trip{
			DriverID:       driver.UserID,
			ClientID:       userId,
			PickupAddress:  input.Location,
			PickupLat:      input.PickupLat,
			PickupLng:      input.PickupLng,
			DropoffAddress: input.Destination,
			DropoffLat:     input.DropoffLat,
			DropoffLng:     input.DropoffLng,
			Distance:       distance,
			Duration:       input.Duration,
			Fare:           input.TotalAmount,
			PaymentMethod:  paymentLabel,
			PaymentStatus:  models.PaymentStatusPending,
			Status:         models.TripStatusPending,
			RequestedAt:    time.Now(),
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Create(&booking).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		trip.BookingID = booking.ID
		if err := tx.Create(&trip).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to create trip"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		observability.BookingsCreated.Inc()

		// Let the driver know a hire is waiting
		hub.SendEvent(driver.UserID, "booking_created", services.BookingCreated{
			BookingID: booking.ID,
			TripID:    trip.ID,
			ClientID:  userId,
			TripType:  booking.TripType,
			Fare:      booking.TotalAmount,
		})

		c.JSON(201, gin.H{
			"booking": booking,
			"tripId":  trip.ID,
		})
	}
}

// GetBooking returns booking detail with driver info backfilled from the
// driver record. Only the owning client or the assigned driver may read it.
func GetBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var booking models.Booking
		if err := db.Preload("Client").First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		var driver models.DriverProfile
		if err := db.Preload("Badges").Preload("User").First(&driver, booking.DriverID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		if booking.ClientID != userId && driver.UserID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized"})
			return
		}

		driverInfo := gin.H{
			"id":          driver.ID,
			"rating":      driver.Rating,
			"tripsCount":  driver.TripsCount,
			"pricePerDay": driver.PricePerDay,
			"vehicle":     driver.VehicleMake + " " + driver.VehicleModel + " - " + driver.VehiclePlate,
		}
		if driver.User != nil {
			driverInfo["name"] = driver.User.Username
			driverInfo["phoneNumber"] = driver.User.PhoneNumber
		}

		c.JSON(200, gin.H{
			"booking": booking,
			"driver":  driverInfo,
		})
	}
}

// ListBookings returns the client's bookings. ?scope=upcoming keeps
// bookings ending at or after now, cancelled ones excluded; ?scope=past is
// the complement. Without a scope everything is returned.
func ListBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		scope := c.Query("scope")

		var bookings []models.Booking
		if err := db.Where("client_id = ?", userId).
			Order("start_date DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		if scope == "upcoming" || scope == "past" {
			now := time.Now()
			filtered := bookings[:0]
			for _, b := range bookings {
				if b.IsUpcoming(now) == (scope == "upcoming") {
					filtered = append(filtered, b)
				}
			}
			bookings = filtered
		}

		c.JSON(200, bookings)
	}
}

// CancelBooking cancels a booking and its linked trip. Terminal bookings
// are rejected with the state-specific message and left unchanged.
func CancelBooking(db *gorm.DB, hub *services.Hub, payments *services.Payments, cache *services.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			Reason string `json:"reason"`
		}
		// Reason is optional; an empty body is fine
		c.ShouldBindJSON(&input)

		var booking models.Booking
		if err := db.First(&booking, bookingId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.ClientID != userId {
			c.JSON(403, gin.H{"error": "Unauthorized to cancel this booking"})
			return
		}

		now := time.Now()
		if err := booking.Cancel(input.Reason, now); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var trip models.Trip
		tripFound := db.Where("booking_id = ?", booking.ID).First(&trip).Error == nil

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(&booking).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to cancel booking"})
			return
		}

		if tripFound && !trip.Status.IsTerminal() {
			if err := trip.Transition(models.TripStatusCancelled, now); err == nil {
				if err := tx.Save(&trip).Error; err != nil {
					tx.Rollback()
					c.JSON(500, gin.H{"error": "Failed to cancel trip"})
					return
				}
			}
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		observability.BookingsCancelled.Inc()

		// Release any card hold; a failure here only delays the refund
		payments.Release(c.Request.Context(), booking.PaymentIntentID)

		if tripFound {
			hub.SendEvent(trip.DriverID, "booking_cancelled", services.BookingCancelled{
				BookingID: booking.ID,
				Reason:    booking.CancelReason,
			})
			ctx := context.Background()
			cache.PublishTripUpdate(ctx, trip.ID, string(models.TripStatusCancelled), map[string]interface{}{
				"reason": booking.CancelReason,
			})
		}

		c.JSON(200, gin.H{
			"message": "Booking cancelled successfully",
			"booking": booking,
		})
	}
}
