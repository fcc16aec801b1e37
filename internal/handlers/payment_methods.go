package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kofiasare/driverhire-backend/internal/models"
)

// saveSoleDefault persists methods so that exactly the method with
// defaultID carries the default flag. Runs inside one transaction: the
// clear and the set land together or not at all.
func saveSoleDefault(tx *gorm.DB, userID, defaultID uint) error {
	if err := tx.Model(&models.PaymentMethod{}).
		Where("user_id = ? AND id <> ?", userID, defaultID).
		Update("is_default", false).Error; err != nil {
		return err
	}
	return tx.Model(&models.PaymentMethod{}).
		Where("user_id = ? AND id = ?", userID, defaultID).
		Update("is_default", true).Error
}

// ListPaymentMethods returns the user's stored payment methods.
func ListPaymentMethods(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var methods []models.PaymentMethod
		if err := db.Where("user_id = ?", userId).Order("id").Find(&methods).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payment methods"})
			return
		}

		c.JSON(200, methods)
	}
}

// AddPaymentMethod stores a new payment method. The first method a user
// adds becomes their default; an explicit isDefault displaces the current
// one.
func AddPaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Kind      string `json:"kind" binding:"required,oneof=card upi bank"`
			Label     string `json:"label" binding:"required"`
			Details   string `json:"details"`
			IsDefault bool   `json:"isDefault"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing int64
		if err := db.Model(&models.PaymentMethod{}).
			Where("user_id = ?", userId).Count(&existing).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch payment methods"})
			return
		}

		method := models.PaymentMethod{
			UserID:    userId,
			Kind:      models.PaymentMethodKind(input.Kind),
			Label:     input.Label,
			Details:   input.Details,
			IsDefault: input.IsDefault || existing == 0,
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Create(&method).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to add payment method"})
			return
		}

		if method.IsDefault {
			if err := saveSoleDefault(tx, userId, method.ID); err != nil {
				tx.Rollback()
				c.JSON(500, gin.H{"error": "Failed to update default payment method"})
				return
			}
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		c.JSON(201, method)
	}
}

// UpdatePaymentMethod edits label/details and optionally moves the default
// flag.
func UpdatePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		methodId := c.Param("id")

		var input struct {
			Label     *string `json:"label"`
			Details   *string `json:"details"`
			IsDefault *bool   `json:"isDefault"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var method models.PaymentMethod
		if err := db.Where("user_id = ?", userId).First(&method, methodId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Payment method not found"})
			return
		}

		if input.Label != nil {
			method.Label = *input.Label
		}
		if input.Details != nil {
			method.Details = *input.Details
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Save(&method).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update payment method"})
			return
		}

		if input.IsDefault != nil && *input.IsDefault {
			if err := saveSoleDefault(tx, userId, method.ID); err != nil {
				tx.Rollback()
				c.JSON(500, gin.H{"error": "Failed to update default payment method"})
				return
			}
			method.IsDefault = true
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		c.JSON(200, method)
	}
}

// SetDefaultPaymentMethod makes the given method the user's sole default.
func SetDefaultPaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		methodId := c.Param("id")

		var method models.PaymentMethod
		if err := db.Where("user_id = ?", userId).First(&method, methodId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Payment method not found"})
			return
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := saveSoleDefault(tx, userId, method.ID); err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to update default payment method"})
			return
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		method.IsDefault = true
		c.JSON(200, method)
	}
}

// DeletePaymentMethod removes a method. Deleting the default promotes an
// arbitrary remaining method; deleting the last one leaves no default.
func DeletePaymentMethod(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		methodId := c.Param("id")

		var method models.PaymentMethod
		if err := db.Where("user_id = ?", userId).First(&method, methodId).Error; err != nil {
			c.JSON(404, gin.H{"error": "Payment method not found"})
			return
		}

		tx := db.Begin()
		defer func() {
			if r := recover(); r != nil {
				tx.Rollback()
			}
		}()

		if err := tx.Delete(&method).Error; err != nil {
			tx.Rollback()
			c.JSON(500, gin.H{"error": "Failed to delete payment method"})
			return
		}

		if method.IsDefault {
			var remaining []models.PaymentMethod
			if err := tx.Where("user_id = ?", userId).Find(&remaining).Error; err != nil {
				tx.Rollback()
				c.JSON(500, gin.H{"error": "Failed to fetch payment methods"})
				return
			}

			if promoted := models.PromoteCandidate(remaining); promoted != 0 {
				if err := saveSoleDefault(tx, userId, promoted); err != nil {
					tx.Rollback()
					c.JSON(500, gin.H{"error": "Failed to promote default payment method"})
					return
				}
			}
		}

		if err := tx.Commit().Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete transaction"})
			return
		}

		c.JSON(200, gin.H{"message": "Payment method deleted successfully"})
	}
}
