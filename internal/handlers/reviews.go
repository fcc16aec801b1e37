package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kofiasare/driverhire-backend/internal/models"
	"github.com/kofiasare/driverhire-backend/internal/observability"
)

// AddReview records a rider's review and recomputes the driver's rating as
// the mean of all review ratings, rounded to one decimal. The review row
// and the rating update commit together.
func AddReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.Param("id")
		userId := c.GetUint("userId")

		var input struct {
			Rating    float64 `json:"rating" binding:"required"`
			Comment   string  `json:"comment"`
			BookingID uint    `json:"bookingId"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Rating < 1 || input.Rating > 5 {
			c.JSON(400, gin.H{"error": "Rating must be between 1 and 5"})
			return
		}

		var driver models.DriverProfile
		if err := db.First(&driver, driverId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		review := models.Review{
			DriverID:  driver.ID,
			ClientID:  userId,
			BookingID: input.BookingID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Create(&review).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to add review"})
			return
		}

		var ratings []float64
		if err := tx.Model(&models.Review{}).
			Where("driver_id = ?", driver.ID).
			Pluck("rating", &ratings).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to fetch ratings"})
			return
		}

		driver.Rating = models.AverageRating(ratings)
		if err := tx.Save(&driver).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update driver rating"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		observability.ReviewsAdded.Inc()

		c.JSON(201, gin.H{
			"review": review,
			"rating": driver.Rating,
		})
	}
}

// ListReviews returns all reviews for a driver, newest first.
func ListReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		driverId := c.Param("id")

		var driver models.DriverProfile
		if err := db.First(&driver, driverId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Driver not found"})
			return
		}

		var reviews []models.Review
		if err := db.Preload("Client").
			Where("driver_id = ?", driver.ID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(200, reviews)
	}
}
