package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/deshghuri/deshghuri-backend/internal/services"
	"github.com/deshghuri/deshghuri-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BookGuide creates a pending tour request directed at a specific guide
func BookGuide(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		guideID, err := strconv.ParseUint(c.Param("guideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid guide ID"})
			return
		}

		var input struct {
			DestinationID uint     `json:"destinationId" binding:"required"`
			Date          string   `json:"date" binding:"required"` // YYYY-MM-DD
			PeopleCount   int      `json:"peopleCount"`
			Price         *float64 `json:"price"`
			Note          string   `json:"note"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		date, err := time.Parse("2006-01-02", input.Date)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}

		today := time.Now().Truncate(24 * time.Hour)
		if date.Before(today) {
			c.JSON(400, gin.H{"error": "Tour date cannot be in the past"})
			return
		}

		if input.Price != nil && *input.Price < 0 {
			c.JSON(400, gin.H{"error": "Price must be non-negative"})
			return
		}

		var guide models.User
		if err := db.First(&guide, guideID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Guide not found"})
			return
		}
		if !guide.IsGuide() {
			c.JSON(400, gin.H{"error": "User is not a guide"})
			return
		}

		var destination models.Destination
		if err := db.First(&destination, input.DestinationID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Destination not found"})
			return
		}

		var tourist models.User
		if err := db.First(&tourist, touristID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to get tourist information"})
			return
		}

		peopleCount := input.PeopleCount
		if peopleCount < 1 {
			peopleCount = 1
		}

		request := models.TourRequest{
			TouristID:     touristID,
			GuideID:       guide.ID,
			DestinationID: destination.ID,
			Date:          date,
			PeopleCount:   peopleCount,
			Price:         input.Price,
			Note:          input.Note,
			Status:        models.TourRequestStatusPending,
		}

		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&request).Error; err != nil {
				return err
			}
			message := fmt.Sprintf("%s requested a tour to %s on %s",
				tourist.Username, destination.Name, date.Format("2006-01-02"))
			notification, err = services.CreateNotification(
				tx, guide.ID, message, models.BookingKindTourRequest, &request.ID)
			return err
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create tour request"})
			return
		}

		services.PushNotification(hub, notification)

		go utils.SendTourRequestEmail(guide.Email, destination.Name, tourist.Username)

		c.JSON(201, gin.H{
			"message":   "Tour request created. Waiting for the guide's decision.",
			"requestId": request.ID,
			"status":    request.Status,
		})
	}
}

// AcceptTourRequest lets the owning guide accept a pending request. The
// status change, the Tour, the Earning (when a price is set), and the
// notification to the tourist are written in a single transaction.
func AcceptTourRequest(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID := c.GetUint("userId")

		requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid request ID"})
			return
		}

		var request models.TourRequest
		if err := db.Preload("Tourist").Preload("Destination").First(&request, requestID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tour request not found"})
			return
		}

		if request.GuideID != guideID {
			c.JSON(403, gin.H{"error": "Unauthorized to accept this request"})
			return
		}

		if request.Status != models.TourRequestStatusPending {
			c.JSON(400, gin.H{"error": "Tour request is no longer pending"})
			return
		}

		var guide models.User
		if err := db.First(&guide, guideID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to get guide information"})
			return
		}

		var tour models.Tour
		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			request.Status = models.TourRequestStatusAccepted
			if err := tx.Save(&request).Error; err != nil {
				return err
			}

			tour = models.Tour{
				GuideID:       request.GuideID,
				DestinationID: request.DestinationID,
				Tourists:      []models.User{request.Tourist},
				StartDate:     request.Date,
				Price:         request.Price,
				Status:        models.TourStatusUpcoming,
			}
			if err := tx.Create(&tour).Error; err != nil {
				return err
			}

			if request.Price != nil {
				earning := models.Earning{
					GuideID:     request.GuideID,
					Amount:      *request.Price,
					Description: fmt.Sprintf("Tour to %s for %s", request.Destination.Name, request.Tourist.Username),
					Date:        time.Now(),
				}
				if err := tx.Create(&earning).Error; err != nil {
					return err
				}
			}

			message := fmt.Sprintf("Your tour request to %s has been accepted by %s",
				request.Destination.Name, guide.Username)
			notification, err = services.CreateNotification(
				tx, request.TouristID, message, models.BookingKindTourRequest, &request.ID)
			return err
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to accept tour request"})
			return
		}

		services.PushNotification(hub, notification)
		services.PublishBookingTransition(hub, request.TouristID,
			models.BookingKindTourRequest, request.ID, string(request.Status))

		go utils.SendTourRequestAcceptedEmail(request.Tourist.Email, guide.Username, request.Destination.Name)

		c.JSON(200, gin.H{
			"message":   "Tour request accepted successfully",
			"requestId": request.ID,
			"tourId":    tour.ID,
			"status":    request.Status,
		})
	}
}

// RejectTourRequest lets the owning guide reject a pending request
func RejectTourRequest(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID := c.GetUint("userId")

		requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid request ID"})
			return
		}

		var request models.TourRequest
		if err := db.Preload("Destination").First(&request, requestID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tour request not found"})
			return
		}

		if request.GuideID != guideID {
			c.JSON(403, gin.H{"error": "Unauthorized to reject this request"})
			return
		}

		if request.Status != models.TourRequestStatusPending {
			c.JSON(400, gin.H{"error": "Tour request is no longer pending"})
			return
		}

		var guide models.User
		if err := db.First(&guide, guideID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to get guide information"})
			return
		}

		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			request.Status = models.TourRequestStatusRejected
			if err := tx.Save(&request).Error; err != nil {
				return err
			}
			message := fmt.Sprintf("Your tour request to %s was rejected by %s",
				request.Destination.Name, guide.Username)
			notification, err = services.CreateNotification(
				tx, request.TouristID, message, models.BookingKindTourRequest, &request.ID)
			return err
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to reject tour request"})
			return
		}

		services.PushNotification(hub, notification)
		services.PublishBookingTransition(hub, request.TouristID,
			models.BookingKindTourRequest, request.ID, string(request.Status))

		c.JSON(200, gin.H{
			"message":   "Tour request rejected",
			"requestId": request.ID,
			"status":    request.Status,
		})
	}
}

// GetGuideTourRequests lists requests directed at the authenticated guide
func GetGuideTourRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID := c.GetUint("userId")

		query := db.Preload("Tourist").Preload("Destination").
			Where("guide_id = ?", guideID).
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var requests []models.TourRequest
		if err := query.Find(&requests).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch tour requests"})
			return
		}

		c.JSON(200, requests)
	}
}

// GetTouristTourRequests lists the authenticated tourist's own requests
func GetTouristTourRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		var requests []models.TourRequest
		if err := db.Preload("Guide").Preload("Destination").
			Where("tourist_id = ?", touristID).
			Order("created_at DESC").
			Find(&requests).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch tour requests"})
			return
		}

		c.JSON(200, requests)
	}
}

// GetGuideTours lists the authenticated guide's tours
func GetGuideTours(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID := c.GetUint("userId")

		var tours []models.Tour
		if err := db.Preload("Tourists").Preload("Destination").
			Where("guide_id = ?", guideID).
			Order("start_date DESC").
			Find(&tours).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch tours"})
			return
		}

		c.JSON(200, tours)
	}
}

// GetTouristTours lists tours the authenticated tourist takes part in
func GetTouristTours(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		var tours []models.Tour
		if err := db.Preload("Guide").Preload("Destination").
			Joins("JOIN tour_tourists ON tour_tourists.tour_id = tours.id").
			Where("tour_tourists.user_id = ?", touristID).
			Order("start_date DESC").
			Find(&tours).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch tours"})
			return
		}

		c.JSON(200, tours)
	}
}

// CompleteTour lets the owning guide mark an upcoming tour as completed
func CompleteTour(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID := c.GetUint("userId")

		tourID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid tour ID"})
			return
		}

		var tour models.Tour
		if err := db.Preload("Tourists").Preload("Destination").First(&tour, tourID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Tour not found"})
			return
		}

		if tour.GuideID != guideID {
			c.JSON(403, gin.H{"error": "Unauthorized to update this tour"})
			return
		}

		if tour.Status != models.TourStatusUpcoming {
			c.JSON(400, gin.H{"error": "Only upcoming tours can be completed"})
			return
		}

		var notifications []*models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			tour.Status = models.TourStatusCompleted
			if err := tx.Save(&tour).Error; err != nil {
				return err
			}
			message := fmt.Sprintf("Your tour to %s has been completed", tour.Destination.Name)
			completedID := tour.ID
			for _, tourist := range tour.Tourists {
				notification, err := services.CreateNotification(
					tx, tourist.ID, message, models.BookingKindTour, &completedID)
				if err != nil {
					return err
				}
				notifications = append(notifications, notification)
			}
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to complete tour"})
			return
		}

		for _, notification := range notifications {
			services.PushNotification(hub, notification)
		}

		c.JSON(200, gin.H{
			"message": "Tour completed successfully",
			"tourId":  tour.ID,
			"status":  tour.Status,
		})
	}
}
