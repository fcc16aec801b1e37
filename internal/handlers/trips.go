package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kofiasare/driverhire-backend/internal/models"
	"github.com/kofiasare/driverhire-backend/internal/observability"
	"github.com/kofiasare/driverhire-backend/internal/services"
)

// loadDriverTrip fetches the trip and enforces that the acting user is a
// driver and is the trip's assigned driver. Responds and returns nil on
// failure.
func loadDriverTrip(c *gin.Context, db *gorm.DB) *models.Trip {
	tripIDStr := c.Param("id")
	driverID := c.GetUint("userId")
	userType := c.GetString("userType")

	if userType != string(models.UserTypeDriver) {
		c.JSON(403, gin.H{"error": "Only drivers can manage trips"})
		return nil
	}

	tripID, err := strconv.ParseUint(tripIDStr, 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid trip ID"})
		return nil
	}

	var trip models.Trip
	if err := db.Preload("Client").First(&trip, tripID).Error; err != nil {
		c.JSON(404, gin.H{"error": "Trip not found"})
		return nil
	}

	if trip.DriverID != driverID {
		c.JSON(403, gin.H{"error": "Unauthorized to update this trip"})
		return nil
	}

	return &trip
}

// GetDriverTrips lists the driver's open trips: pending offers plus
// accepted or started hires.
func GetDriverTrips(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can view trips"})
			return
		}

		var trips []models.Trip
		if err := db.Preload("Client").
			Where("driver_id = ? AND status IN (?)", driverID, []models.TripStatus{
				models.TripStatusPending,
				models.TripStatusAccepted,
				models.TripStatusStarted,
			}).
			Order("created_at DESC").
			Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		c.JSON(200, trips)
	}
}

// AcceptTrip moves a pending trip to accepted and flags the driver busy.
func AcceptTrip(db *gorm.DB, hub *services.Hub, cache *services.Cache, push *services.Push) gin.HandlerFunc {
	return func(c *gin.Context) {
		trip := loadDriverTrip(c, db)
		if trip == nil {
			return
		}

		if err := trip.Transition(models.TripStatusAccepted, time.Now()); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var profile models.DriverProfile
		if err := db.Where("user_id = ?", trip.DriverID).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver profile not found"})
			return
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(trip).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to accept trip"})
			return
		}

		// An accepted hire makes the driver unavailable for new bookings
		profile.IsAvailable = false
		if err := tx.Save(&profile).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update driver availability"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		observability.TripsAccepted.Inc()

		ctx := context.Background()
		cache.SetDriverAvailability(ctx, profile.ID, false)
		cache.PublishTripUpdate(ctx, trip.ID, string(trip.Status), nil)

		notifyTripStatus(db, hub, trip)
		if trip.Client != nil && trip.Client.FCMToken != "" {
			var driver models.User
			if err := db.First(&driver, trip.DriverID).Error; err == nil {
				push.SendTripAccepted(ctx, trip.Client.FCMToken, driver.Username, trip.ID)
			}
		}

		c.JSON(200, gin.H{
			"message": "Trip accepted successfully",
			"tripId":  trip.ID,
			"status":  trip.Status,
		})
	}
}

// StartTrip moves an accepted trip to started.
func StartTrip(db *gorm.DB, hub *services.Hub, cache *services.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		trip := loadDriverTrip(c, db)
		if trip == nil {
			return
		}

		if err := trip.Transition(models.TripStatusStarted, time.Now()); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if err := db.Save(trip).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to start trip"})
			return
		}

		ctx := context.Background()
		cache.PublishTripUpdate(ctx, trip.ID, string(trip.Status), nil)
		notifyTripStatus(db, hub, trip)

		c.JSON(200, gin.H{
			"message": "Trip started successfully",
			"tripId":  trip.ID,
			"status":  trip.Status,
		})
	}
}

// CompleteTrip settles a started trip: the fare is captured, the driver's
// trip count grows, and the driver becomes available again. All row updates
// commit or roll back together.
func CompleteTrip(db *gorm.DB, hub *services.Hub, cache *services.Cache, push *services.Push, payments *services.Payments) gin.HandlerFunc {
	return func(c *gin.Context) {
		trip := loadDriverTrip(c, db)
		if trip == nil {
			return
		}

		now := time.Now()
		if err := trip.Transition(models.TripStatusCompleted, now); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		trip.PaymentStatus = models.PaymentStatusPaid

		var profile models.DriverProfile
		if err := db.Where("user_id = ?", trip.DriverID).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver profile not found"})
			return
		}

		var booking models.Booking
		bookingFound := db.First(&booking, trip.BookingID).Error == nil

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(trip).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to complete trip"})
			return
		}

		profile.TripsCount++
		profile.IsAvailable = true
		if err := tx.Save(&profile).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update driver profile"})
			return
		}

		if bookingFound {
			booking.PaymentStatus = models.PaymentStatusPaid
			if err := tx.Save(&booking).Error; err != nil {
				tx.Rollback()
				c.JSON(500, gin.H{"error": "Failed to update booking payment"})
				return
			}
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		observability.TripsCompleted.Inc()

		// Capture the card hold when one exists. A capture failure is
		// logged by the payments layer and settled out of band; it does
		// not undo the completion.
		if bookingFound {
			payments.Capture(c.Request.Context(), booking.PaymentIntentID)
		}

		ctx := context.Background()
		cache.SetDriverAvailability(ctx, profile.ID, true)
		cache.PublishTripUpdate(ctx, trip.ID, string(trip.Status), gin.H{"fare": trip.Fare})

		notifyTripStatus(db, hub, trip)
		if trip.Client != nil {
			push.SendTripCompleted(ctx, trip.Client.FCMToken, trip.ID, trip.Fare)
		}

		c.JSON(200, gin.H{
			"message": "Trip completed successfully",
			"tripId":  trip.ID,
			"status":  trip.Status,
			"fare":    trip.Fare,
		})
	}
}

// CancelTrip cancels a non-terminal trip from the driver side. The linked
// booking is cancelled with it so both apps agree.
func CancelTrip(db *gorm.DB, hub *services.Hub, cache *services.Cache, payments *services.Payments) gin.HandlerFunc {
	return func(c *gin.Context) {
		trip := loadDriverTrip(c, db)
		if trip == nil {
			return
		}

		var input struct {
			Reason string `json:"reason"`
		}
		c.ShouldBindJSON(&input)

		now := time.Now()
		if err := trip.Transition(models.TripStatusCancelled, now); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var profile models.DriverProfile
		profileFound := db.Where("user_id = ?", trip.DriverID).First(&profile).Error == nil

		var booking models.Booking
		bookingFound := db.First(&booking, trip.BookingID).Error == nil

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(trip).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to cancel trip"})
			return
		}

		if profileFound {
			profile.IsAvailable = true
			if err := tx.Save(&profile).Error; err != nil {
				tx.Rollback()
				c.JSON(500, gin.H{"error": "Failed to update driver availability"})
				return
			}
		}

		if bookingFound && booking.CanCancel() == nil {
			booking.Cancel(input.Reason, now)
			if err := tx.Save(&booking).Error; err != nil {
				tx.Rollback()
				c.JSON(500, gin.H{"error": "Failed to cancel booking"})
				return
			}
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		if bookingFound {
			payments.Release(c.Request.Context(), booking.PaymentIntentID)
		}

		ctx := context.Background()
		if profileFound {
			cache.SetDriverAvailability(ctx, profile.ID, true)
		}
		cache.PublishTripUpdate(ctx, trip.ID, string(trip.Status), gin.H{"reason": input.Reason})

		hub.SendEvent(trip.ClientID, "booking_cancelled", services.BookingCancelled{
			BookingID: trip.BookingID,
			Reason:    input.Reason,
		})

		c.JSON(200, gin.H{
			"message": "Trip cancelled successfully",
			"tripId":  trip.ID,
			"status":  trip.Status,
		})
	}
}

// GetDriverEarnings summarizes completed-trip earnings for the acting
// driver over today, the trailing week and the trailing month.
func GetDriverEarnings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can view earnings"})
			return
		}

		var trips []models.Trip
		if err := db.Where("driver_id = ? AND status = ?", driverID, models.TripStatusCompleted).
			Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

		todayTotal, todayCount := models.EarningsSince(trips, startOfDay)
		weekTotal, weekCount := models.EarningsSince(trips, now.AddDate(0, 0, -7))
		monthTotal, monthCount := models.EarningsSince(trips, now.AddDate(0, -1, 0))
		allTotal, allCount := models.EarningsSince(trips, time.Time{})

		c.JSON(200, gin.H{
			"today": gin.H{"total": todayTotal, "trips": todayCount},
			"week":  gin.H{"total": weekTotal, "trips": weekCount},
			"month": gin.H{"total": monthTotal, "trips": monthCount},
			"all":   gin.H{"total": allTotal, "trips": allCount},
		})
	}
}

// GetDriverTripHistory returns the driver's finished trips, newest first.
func GetDriverTripHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverID := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can view trip history"})
			return
		}

		pageStr := c.DefaultQuery("page", "1")
		limitStr := c.DefaultQuery("limit", "10")

		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			page = 1
		}

		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			limit = 10
		}

		offset := (page - 1) * limit

		var trips []models.Trip
		if err := db.Preload("Client").
			Where("driver_id = ? AND status IN (?)", driverID, []models.TripStatus{
				models.TripStatusCompleted,
				models.TripStatusCancelled,
			}).
			Order("created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trip history"})
			return
		}

		var total int64
		db.Model(&models.Trip{}).
			Where("driver_id = ? AND status IN (?)", driverID, []models.TripStatus{
				models.TripStatusCompleted,
				models.TripStatusCancelled,
			}).Count(&total)

		c.JSON(200, gin.H{
			"trips": trips,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": (total + int64(limit) - 1) / int64(limit),
			},
		})
	}
}

// notifyTripStatus pushes the trip's current status to the rider over the
// WebSocket hub.
func notifyTripStatus(db *gorm.DB, hub *services.Hub, trip *models.Trip) {
	hub.SendEvent(trip.ClientID, "trip_"+string(trip.Status), services.TripStatusChanged{
		TripID:    trip.ID,
		BookingID: trip.BookingID,
		DriverID:  trip.DriverID,
		Status:    string(trip.Status),
	})
}
