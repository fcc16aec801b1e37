package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kofiasare/driverhire-backend/internal/models"
	"github.com/kofiasare/driverhire-backend/internal/observability"
	"github.com/kofiasare/driverhire-backend/internal/services"
)

// ListDrivers returns approved drivers, optionally filtered by trip type.
// The tripType query matches badge names case-insensitively, so
// ?tripType=business keeps drivers with a "Business" badge.
func ListDrivers(db *gorm.DB, cache *services.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		tripType := c.Query("tripType")

		var drivers []models.DriverProfile
		if err := db.Preload("Badges").Preload("User").
			Where("status = ?", models.DriverApprovalApproved).
			Find(&drivers).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch drivers"})
			return
		}

		if tripType != "" {
			filtered := drivers[:0]
			for _, d := range drivers {
				if d.HasBadge(tripType) {
					filtered = append(filtered, d)
				}
			}
			drivers = filtered
		}

		// Overlay the Redis availability hint where one exists; a miss
		// keeps the row value
		ctx := context.Background()
		for i := range drivers {
			if available, err := cache.GetDriverAvailability(ctx, drivers[i].ID); err == nil {
				drivers[i].IsAvailable = available
			}
		}

		c.JSON(200, drivers)
	}
}

// GetDriver returns a single driver profile with badges and user info.
func GetDriver(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.Param("id")

		var driver models.DriverProfile
		if err := db.Preload("Badges").Preload("User").
			First(&driver, driverId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		c.JSON(200, driver)
	}
}

// UpdateDriverAvailability toggles the driver's availability flag. Last
// write wins; concurrent toggles simply overwrite each other.
func UpdateDriverAvailability(db *gorm.DB, cache *services.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can update availability"})
			return
		}

		var input struct {
			IsAvailable *bool `json:"isAvailable" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var profile models.DriverProfile
		if err := db.Where("user_id = ?", userId).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver profile not found"})
			return
		}

		wasAvailable := profile.IsAvailable
		profile.IsAvailable = *input.IsAvailable
		if err := db.Save(&profile).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update availability"})
			return
		}

		if wasAvailable != profile.IsAvailable {
			if profile.IsAvailable {
				observability.DriversAvailable.Inc()
			} else {
				observability.DriversAvailable.Dec()
			}
		}

		// Mirror to Redis for the listing path; the row stays authoritative
		ctx := context.Background()
		cache.SetDriverAvailability(ctx, profile.ID, profile.IsAvailable)

		c.JSON(200, gin.H{
			"driverId":    profile.ID,
			"isAvailable": profile.IsAvailable,
		})
	}
}

// GetDriverStatus returns the acting driver's own profile.
func GetDriverStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		if userType != string(models.UserTypeDriver) {
			c.JSON(403, gin.H{"error": "Only drivers can view driver status"})
			return
		}

		var profile models.DriverProfile
		if err := db.Preload("Badges").Where("user_id = ?", userId).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver profile not found"})
			return
		}

		c.JSON(200, profile)
	}
}
