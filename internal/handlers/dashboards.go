package handlers

import (
	"time"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func startOfMonth(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

func countByStatus(db *gorm.DB, model interface{}, column string, id uint, status string) int64 {
	var count int64
	db.Model(model).Where(column+" = ? AND status = ?", id, status).Count(&count)
	return count
}

// TouristDashboard aggregates the tourist's bookings and notifications.
// Everything is recomputed on each request; nothing is cached.
func TouristDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		var unread int64
		db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", touristID, false).Count(&unread)

		var packageBookings int64
		db.Model(&models.PackageBooking{}).Where("tourist_id = ?", touristID).Count(&packageBookings)

		c.JSON(200, gin.H{
			"tourRequests": gin.H{
				"pending":  countByStatus(db, &models.TourRequest{}, "tourist_id", touristID, "pending"),
				"accepted": countByStatus(db, &models.TourRequest{}, "tourist_id", touristID, "accepted"),
				"rejected": countByStatus(db, &models.TourRequest{}, "tourist_id", touristID, "rejected"),
			},
			"hotelBookings": gin.H{
				"pending":   countByStatus(db, &models.HotelBooking{}, "tourist_id", touristID, "pending"),
				"confirmed": countByStatus(db, &models.HotelBooking{}, "tourist_id", touristID, "confirmed"),
				"cancelled": countByStatus(db, &models.HotelBooking{}, "tourist_id", touristID, "cancelled"),
				"completed": countByStatus(db, &models.HotelBooking{}, "tourist_id", touristID, "completed"),
			},
			"packageBookings":     packageBookings,
			"unreadNotifications": unread,
		})
	}
}

// GuideDashboard aggregates the guide's requests, tours, earnings, and rating
func GuideDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID := c.GetUint("userId")

		var profile models.GuideProfile
		if err := db.Where("user_id = ?", guideID).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Guide profile not found"})
			return
		}

		var reviewCount int64
		db.Model(&models.Review{}).Where("guide_id = ?", guideID).Count(&reviewCount)

		var totalEarnings float64
		db.Model(&models.Earning{}).Where("guide_id = ?", guideID).
			Select("COALESCE(SUM(amount), 0)").Scan(&totalEarnings)

		var monthEarnings float64
		db.Model(&models.Earning{}).
			Where("guide_id = ? AND date >= ?", guideID, startOfMonth(time.Now())).
			Select("COALESCE(SUM(amount), 0)").Scan(&monthEarnings)

		c.JSON(200, gin.H{
			"pendingRequests": countByStatus(db, &models.TourRequest{}, "guide_id", guideID, "pending"),
			"tours": gin.H{
				"upcoming":  countByStatus(db, &models.Tour{}, "guide_id", guideID, "upcoming"),
				"completed": countByStatus(db, &models.Tour{}, "guide_id", guideID, "completed"),
			},
			"averageRating": profile.AverageRating,
			"reviewCount":   reviewCount,
			"earnings": gin.H{
				"total":        totalEarnings,
				"currentMonth": monthEarnings,
			},
		})
	}
}

// HotelManagerDashboard aggregates bookings and revenue across owned hotels
func HotelManagerDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint("userId")

		var hotelIDs []uint
		if err := db.Model(&models.Hotel{}).Where("owner_id = ?", ownerID).
			Pluck("id", &hotelIDs).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch hotels"})
			return
		}

		if len(hotelIDs) == 0 {
			c.JSON(200, gin.H{
				"hotelCount":    0,
				"bookings":      gin.H{"pending": 0, "confirmed": 0, "cancelled": 0, "completed": 0},
				"averageRating": 0,
				"monthRevenue":  0,
			})
			return
		}

		bookingCount := func(status models.HotelBookingStatus) int64 {
			var count int64
			db.Model(&models.HotelBooking{}).
				Where("hotel_id IN ? AND status = ?", hotelIDs, status).Count(&count)
			return count
		}

		var monthRevenue float64
		db.Model(&models.HotelBooking{}).
			Where("hotel_id IN ? AND status IN ? AND created_at >= ?",
				hotelIDs,
				[]models.HotelBookingStatus{models.HotelBookingStatusConfirmed, models.HotelBookingStatusCompleted},
				startOfMonth(time.Now())).
			Select("COALESCE(SUM(total_amount), 0)").Scan(&monthRevenue)

		var averageRating float64
		db.Model(&models.Hotel{}).Where("id IN ?", hotelIDs).
			Select("COALESCE(AVG(average_rating), 0)").Scan(&averageRating)

		c.JSON(200, gin.H{
			"hotelCount": len(hotelIDs),
			"bookings": gin.H{
				"pending":   bookingCount(models.HotelBookingStatusPending),
				"confirmed": bookingCount(models.HotelBookingStatusConfirmed),
				"cancelled": bookingCount(models.HotelBookingStatusCancelled),
				"completed": bookingCount(models.HotelBookingStatusCompleted),
			},
			"averageRating": averageRating,
			"monthRevenue":  monthRevenue,
		})
	}
}
