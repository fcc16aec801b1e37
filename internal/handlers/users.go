package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/kofiasare/driverhire-backend/internal/models"
	"github.com/kofiasare/driverhire-backend/internal/services"
)

// GetProfile retrieves the user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		c.JSON(200, gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"username":    user.Username,
			"phoneNumber": user.PhoneNumber,
			"address":     user.Address,
			"avatarUrl":   user.AvatarURL,
			"userType":    user.UserType,
		})
	}
}

// UpdateProfile updates the user's profile information
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			Username    *string `json:"username"`
			PhoneNumber *string `json:"phoneNumber"`
			Address     *string `json:"address"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		// Update fields individually to handle empty strings properly
		if input.Username != nil {
			user.Username = *input.Username
		}
		if input.PhoneNumber != nil {
			user.PhoneNumber = *input.PhoneNumber
		}
		if input.Address != nil {
			user.Address = *input.Address
		}

		// Use Save() instead of Updates() to persist all fields including empty strings
		if err := db.Save(&user).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{
			"id":          user.ID,
			"email":       user.Email,
			"username":    user.Username,
			"phoneNumber": user.PhoneNumber,
			"address":     user.Address,
			"avatarUrl":   user.AvatarURL,
			"userType":    user.UserType,
		})
	}
}

// UploadAvatar stores a profile image and records its URL. Drivers may
// also upload a vehicle image with form field "kind" set to "vehicle".
func UploadAvatar(db *gorm.DB, storage *services.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		userType := c.GetString("userType")

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "Image file is required"})
			return
		}

		kind := c.DefaultPostForm("kind", "avatar")

		if kind == "vehicle" {
			if userType != string(models.UserTypeDriver) {
				c.JSON(403, gin.H{"error": "Only drivers can upload vehicle images"})
				return
			}

			url, err := storage.UploadImage(file, "vehicles")
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to upload image"})
				return
			}

			if err := db.Model(&models.DriverProfile{}).
				Where("user_id = ?", userId).
				Update("vehicle_image_url", url).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to save image URL"})
				return
			}

			c.JSON(200, gin.H{"url": url})
			return
		}

		url, err := storage.UploadImage(file, "avatars")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload image"})
			return
		}

		if err := db.Model(&models.User{}).
			Where("id = ?", userId).
			Update("avatar_url", url).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save image URL"})
			return
		}

		c.JSON(200, gin.H{"url": url})
	}
}
