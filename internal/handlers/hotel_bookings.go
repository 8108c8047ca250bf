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

// BookRoom creates a pending hotel booking for the authenticated tourist.
// Availability is checked against the room type's advertised count but the
// count itself is managed manually by the hotel manager and is not
// decremented here.
func BookRoom(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel ID"})
			return
		}
		roomTypeID, err := strconv.ParseUint(c.Param("roomTypeId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid room type ID"})
			return
		}

		var input struct {
			CheckIn  string `json:"checkIn" binding:"required"`  // YYYY-MM-DD
			CheckOut string `json:"checkOut" binding:"required"` // YYYY-MM-DD
			Rooms    int    `json:"rooms"`
			Guests   int    `json:"guests"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		checkIn, err := time.Parse("2006-01-02", input.CheckIn)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid check-in date, expected YYYY-MM-DD"})
			return
		}
		checkOut, err := time.Parse("2006-01-02", input.CheckOut)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid check-out date, expected YYYY-MM-DD"})
			return
		}

		if !checkOut.After(checkIn) {
			c.JSON(400, gin.H{"error": "Check-out must be after check-in"})
			return
		}

		today := time.Now().Truncate(24 * time.Hour)
		if checkIn.Before(today) {
			c.JSON(400, gin.H{"error": "Check-in date cannot be in the past"})
			return
		}

		rooms := input.Rooms
		if rooms < 1 {
			rooms = 1
		}
		guests := input.Guests
		if guests < 1 {
			guests = 1
		}

		var hotel models.Hotel
		if err := db.First(&hotel, hotelID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Hotel not found"})
			return
		}

		var roomType models.RoomType
		if err := db.First(&roomType, roomTypeID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Room type not found"})
			return
		}
		if roomType.HotelID != hotel.ID {
			c.JSON(400, gin.H{"error": "Room type does not belong to this hotel"})
			return
		}

		if rooms > roomType.AvailableRooms {
			c.JSON(400, gin.H{"error": "Not enough rooms available"})
			return
		}

		total, err := utils.HotelBookingTotal(roomType.PricePerNight, rooms, checkIn, checkOut)
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var tourist models.User
		if err := db.First(&tourist, touristID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to get tourist information"})
			return
		}

		booking := models.HotelBooking{
			TouristID:   touristID,
			HotelID:     hotel.ID,
			RoomTypeID:  roomType.ID,
			CheckIn:     checkIn,
			CheckOut:    checkOut,
			Rooms:       rooms,
			Guests:      guests,
			TotalAmount: total,
			Status:      models.HotelBookingStatusPending,
		}

		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&booking).Error; err != nil {
				return err
			}
			message := fmt.Sprintf("%s requested %d %s room(s) at %s from %s to %s",
				tourist.Username, rooms, roomType.Name, hotel.Name,
				checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))
			notification, err = services.CreateNotification(
				tx, hotel.OwnerID, message, models.BookingKindHotelBooking, &booking.ID)
			return err
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		services.PushNotification(hub, notification)

		c.JSON(201, gin.H{
			"message":     "Booking request created",
			"bookingId":   booking.ID,
			"totalAmount": booking.TotalAmount,
			"status":      booking.Status,
		})
	}
}

// allowedHotelBookingTransitions is the closed transition table for hotel
// bookings. Cancelled and completed are terminal.
var allowedHotelBookingTransitions = map[models.HotelBookingStatus][]models.HotelBookingStatus{
	models.HotelBookingStatusPending:   {models.HotelBookingStatusConfirmed, models.HotelBookingStatusCancelled},
	models.HotelBookingStatusConfirmed: {models.HotelBookingStatusCompleted, models.HotelBookingStatusCancelled},
}

func hotelBookingTransitionAllowed(from, to models.HotelBookingStatus) bool {
	for _, allowed := range allowedHotelBookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateHotelBookingStatus lets the hotel owner move a booking through its
// lifecycle. Every transition notifies the tourist in the same transaction.
func UpdateHotelBookingStatus(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking ID"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required,oneof=confirmed cancelled completed"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.HotelBooking
		if err := db.Preload("Hotel").Preload("Tourist").First(&booking, bookingID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.Hotel.OwnerID != userID {
			c.JSON(403, gin.H{"error": "Unauthorized to update this booking"})
			return
		}

		newStatus := models.HotelBookingStatus(input.Status)
		if !hotelBookingTransitionAllowed(booking.Status, newStatus) {
			c.JSON(400, gin.H{"error": fmt.Sprintf("Cannot change booking from %s to %s", booking.Status, newStatus)})
			return
		}

		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			booking.Status = newStatus
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
			message := fmt.Sprintf("Your booking at %s is now %s", booking.Hotel.Name, newStatus)
			notification, err = services.CreateNotification(
				tx, booking.TouristID, message, models.BookingKindHotelBooking, &booking.ID)
			return err
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking status"})
			return
		}

		services.PushNotification(hub, notification)
		services.PublishBookingTransition(hub, booking.TouristID,
			models.BookingKindHotelBooking, booking.ID, string(booking.Status))

		go utils.SendHotelBookingStatusEmail(booking.Tourist.Email, booking.Hotel.Name, string(newStatus))

		c.JSON(200, gin.H{
			"message":   "Booking status updated successfully",
			"bookingId": booking.ID,
			"status":    booking.Status,
		})
	}
}

// CancelHotelBooking lets the tourist cancel their own pending booking
func CancelHotelBooking(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid booking ID"})
			return
		}

		var booking models.HotelBooking
		if err := db.Preload("Hotel").Preload("Tourist").First(&booking, bookingID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.TouristID != touristID {
			c.JSON(403, gin.H{"error": "Unauthorized to cancel this booking"})
			return
		}

		if booking.Status != models.HotelBookingStatusPending {
			c.JSON(400, gin.H{"error": "Only pending bookings can be cancelled"})
			return
		}

		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			booking.Status = models.HotelBookingStatusCancelled
			if err := tx.Save(&booking).Error; err != nil {
				return err
			}
			message := fmt.Sprintf("%s cancelled their booking at %s",
				booking.Tourist.Username, booking.Hotel.Name)
			notification, err = services.CreateNotification(
				tx, booking.Hotel.OwnerID, message, models.BookingKindHotelBooking, &booking.ID)
			return err
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to cancel booking"})
			return
		}

		services.PushNotification(hub, notification)

		c.JSON(200, gin.H{
			"message":   "Booking cancelled successfully",
			"bookingId": booking.ID,
			"status":    booking.Status,
		})
	}
}

// GetTouristHotelBookings lists the authenticated tourist's hotel bookings
func GetTouristHotelBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		var bookings []models.HotelBooking
		if err := db.Preload("Hotel").Preload("RoomType").
			Where("tourist_id = ?", touristID).
			Order("created_at DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// GetHotelBookings lists bookings for a hotel the authenticated manager owns
func GetHotelBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel ID"})
			return
		}

		if _, ok := getOwnedHotel(db, c, uint(hotelID)); !ok {
			return
		}

		query := db.Preload("Tourist").Preload("RoomType").
			Where("hotel_id = ?", hotelID).
			Order("created_at DESC")

		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}

		var bookings []models.HotelBooking
		if err := query.Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}
