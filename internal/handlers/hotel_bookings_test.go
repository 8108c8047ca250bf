package handlers_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createHotelWithRoom(t *testing.T, db *gorm.DB, owner *models.User, pricePerNight float64, availableRooms int) (*models.Hotel, *models.RoomType) {
	t.Helper()

	hotel := &models.Hotel{
		OwnerID: owner.ID,
		Name:    "Hotel Sea Crown",
		City:    "Cox's Bazar",
		Area:    "Kolatoli",
	}
	require.NoError(t, db.Create(hotel).Error)

	roomType := &models.RoomType{
		HotelID:        hotel.ID,
		Name:           "Deluxe Double",
		PricePerNight:  pricePerNight,
		Capacity:       2,
		AvailableRooms: availableRooms,
	}
	require.NoError(t, db.Create(roomType).Error)
	return hotel, roomType
}

func TestBookRoomComputesTotal(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2500, 5)

	checkIn := time.Now().AddDate(0, 0, 10)
	checkOut := checkIn.AddDate(0, 0, 3)

	w := doJSON(t, r, "POST",
		fmt.Sprintf("/hotels/%d/rooms/%d/book", hotel.ID, roomType.ID),
		tokenFor(t, alice), map[string]interface{}{
			"checkIn":  checkIn.Format("2006-01-02"),
			"checkOut": checkOut.Format("2006-01-02"),
			"rooms":    2,
			"guests":   4,
		})
	require.Equal(t, 201, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(15000), body["totalAmount"]) // 2500 x 2 rooms x 3 nights
	assert.Equal(t, "pending", body["status"])

	var booking models.HotelBooking
	require.NoError(t, db.First(&booking).Error)
	assert.Equal(t, float64(15000), booking.TotalAmount)
	assert.Equal(t, models.HotelBookingStatusPending, booking.Status)

	// The owner is notified, not the tourist
	var notification models.Notification
	require.NoError(t, db.First(&notification).Error)
	assert.Equal(t, manager.ID, notification.UserID)
	assert.Contains(t, notification.Message, "alice")
}

func TestBookRoomRejectsBadDateRange(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2000, 5)

	day := time.Now().AddDate(0, 0, 10).Format("2006-01-02")

	// Same-day check-out
	w := doJSON(t, r, "POST",
		fmt.Sprintf("/hotels/%d/rooms/%d/book", hotel.ID, roomType.ID),
		tokenFor(t, alice), map[string]interface{}{
			"checkIn":  day,
			"checkOut": day,
		})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Check-out must be after check-in")

	// Check-out before check-in
	w = doJSON(t, r, "POST",
		fmt.Sprintf("/hotels/%d/rooms/%d/book", hotel.ID, roomType.ID),
		tokenFor(t, alice), map[string]interface{}{
			"checkIn":  time.Now().AddDate(0, 0, 10).Format("2006-01-02"),
			"checkOut": time.Now().AddDate(0, 0, 8).Format("2006-01-02"),
		})
	assert.Equal(t, 400, w.Code)

	var count int64
	db.Model(&models.HotelBooking{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestBookRoomNotEnoughRooms(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2000, 2)

	checkIn := time.Now().AddDate(0, 0, 10)

	w := doJSON(t, r, "POST",
		fmt.Sprintf("/hotels/%d/rooms/%d/book", hotel.ID, roomType.ID),
		tokenFor(t, alice), map[string]interface{}{
			"checkIn":  checkIn.Format("2006-01-02"),
			"checkOut": checkIn.AddDate(0, 0, 2).Format("2006-01-02"),
			"rooms":    5,
		})
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Not enough rooms available")
}

func TestBookRoomKeepsAvailabilityUnchanged(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2000, 3)

	checkIn := time.Now().AddDate(0, 0, 10)

	w := doJSON(t, r, "POST",
		fmt.Sprintf("/hotels/%d/rooms/%d/book", hotel.ID, roomType.ID),
		tokenFor(t, alice), map[string]interface{}{
			"checkIn":  checkIn.Format("2006-01-02"),
			"checkOut": checkIn.AddDate(0, 0, 1).Format("2006-01-02"),
			"rooms":    2,
		})
	require.Equal(t, 201, w.Code)

	// Availability is managed by the hotel manager, bookings never touch it
	var reloaded models.RoomType
	require.NoError(t, db.First(&reloaded, roomType.ID).Error)
	assert.Equal(t, 3, reloaded.AvailableRooms)
}

func bookPendingRoom(t *testing.T, db *gorm.DB, r *gin.Engine, tourist *models.User, hotel *models.Hotel, roomType *models.RoomType) *models.HotelBooking {
	t.Helper()

	checkIn := time.Now().AddDate(0, 0, 10)
	w := doJSON(t, r, "POST",
		fmt.Sprintf("/hotels/%d/rooms/%d/book", hotel.ID, roomType.ID),
		tokenFor(t, tourist), map[string]interface{}{
			"checkIn":  checkIn.Format("2006-01-02"),
			"checkOut": checkIn.AddDate(0, 0, 2).Format("2006-01-02"),
		})
	require.Equal(t, 201, w.Code)

	var booking models.HotelBooking
	require.NoError(t, db.Order("id DESC").First(&booking).Error)
	return &booking
}

func TestHotelBookingStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2000, 5)

	booking := bookPendingRoom(t, db, r, alice, hotel, roomType)
	statusURL := fmt.Sprintf("/manager/hotels/bookings/%d/status", booking.ID)

	// pending -> completed is not allowed
	w := doJSON(t, r, "PATCH", statusURL, tokenFor(t, manager), map[string]interface{}{"status": "completed"})
	assert.Equal(t, 400, w.Code)

	// pending -> confirmed
	w = doJSON(t, r, "PATCH", statusURL, tokenFor(t, manager), map[string]interface{}{"status": "confirmed"})
	require.Equal(t, 200, w.Code)

	// confirmed -> pending is not a valid status value at all
	w = doJSON(t, r, "PATCH", statusURL, tokenFor(t, manager), map[string]interface{}{"status": "pending"})
	assert.Equal(t, 400, w.Code)

	// confirmed -> completed
	w = doJSON(t, r, "PATCH", statusURL, tokenFor(t, manager), map[string]interface{}{"status": "completed"})
	require.Equal(t, 200, w.Code)

	// completed is terminal
	w = doJSON(t, r, "PATCH", statusURL, tokenFor(t, manager), map[string]interface{}{"status": "cancelled"})
	assert.Equal(t, 400, w.Code)

	require.NoError(t, db.First(booking, booking.ID).Error)
	assert.Equal(t, models.HotelBookingStatusCompleted, booking.Status)

	// The tourist got a notification for each successful transition
	var count int64
	db.Model(&models.Notification{}).Where("user_id = ?", alice.ID).Count(&count)
	assert.Equal(t, int64(2), count)
}

func TestUpdateHotelBookingStatusByNonOwner(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	rival := createUser(t, db, "rival", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2000, 5)

	booking := bookPendingRoom(t, db, r, alice, hotel, roomType)

	w := doJSON(t, r, "PATCH",
		fmt.Sprintf("/manager/hotels/bookings/%d/status", booking.ID),
		tokenFor(t, rival), map[string]interface{}{"status": "confirmed"})
	assert.Equal(t, 403, w.Code)

	require.NoError(t, db.First(booking, booking.ID).Error)
	assert.Equal(t, models.HotelBookingStatusPending, booking.Status)
}

func TestCancelHotelBooking(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	carol := createUser(t, db, "carol", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2000, 5)

	booking := bookPendingRoom(t, db, r, alice, hotel, roomType)
	cancelURL := fmt.Sprintf("/hotels/bookings/%d/cancel", booking.ID)

	// Only the booking's tourist may cancel
	w := doJSON(t, r, "POST", cancelURL, tokenFor(t, carol), nil)
	assert.Equal(t, 403, w.Code)

	w = doJSON(t, r, "POST", cancelURL, tokenFor(t, alice), nil)
	require.Equal(t, 200, w.Code)

	require.NoError(t, db.First(booking, booking.ID).Error)
	assert.Equal(t, models.HotelBookingStatusCancelled, booking.Status)

	// Cancelled is terminal for the tourist too
	w = doJSON(t, r, "POST", cancelURL, tokenFor(t, alice), nil)
	assert.Equal(t, 400, w.Code)
}

func TestManagerListsHotelBookings(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2000, 5)
	bookPendingRoom(t, db, r, alice, hotel, roomType)

	w := doJSON(t, r, "GET", fmt.Sprintf("/manager/hotels/%d/bookings", hotel.ID), tokenFor(t, manager), nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "alice")

	w = doJSON(t, r, "GET", fmt.Sprintf("/manager/hotels/%d/bookings?status=cancelled", hotel.ID), tokenFor(t, manager), nil)
	require.Equal(t, 200, w.Code)
	assert.NotContains(t, w.Body.String(), "alice")
}
