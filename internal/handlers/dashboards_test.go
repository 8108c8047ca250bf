package handlers_test

import (
	"fmt"
	"testing"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuideDashboard(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice", models.RoleTourist)
	carol := createUser(t, db, "carol", models.RoleTourist)
	bob := createUser(t, db, "bob", models.RoleGuide)
	destination := createDestination(t, db, "Sundarbans")

	// One accepted request with a price, one left pending
	price := float64(5000)
	accepted := bookAndGetRequest(t, db, r, alice, bob, destination.ID, &price)
	w := doJSON(t, r, "POST", fmt.Sprintf("/guide/requests/%d/accept", accepted.ID), tokenFor(t, bob), nil)
	require.Equal(t, 200, w.Code)

	bookAndGetRequest(t, db, r, carol, bob, destination.ID, nil)

	// A review so the rating aggregate shows up
	w = doJSON(t, r, "POST", fmt.Sprintf("/guides/%d/reviews", bob.ID), tokenFor(t, alice), map[string]interface{}{
		"rating": 4,
	})
	require.Equal(t, 201, w.Code)

	w = doJSON(t, r, "GET", "/guide/dashboard", tokenFor(t, bob), nil)
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["pendingRequests"])
	assert.Equal(t, float64(4), body["averageRating"])
	assert.Equal(t, float64(1), body["reviewCount"])

	tours := body["tours"].(map[string]interface{})
	assert.Equal(t, float64(1), tours["upcoming"])
	assert.Equal(t, float64(0), tours["completed"])

	earnings := body["earnings"].(map[string]interface{})
	assert.Equal(t, float64(5000), earnings["total"])
	assert.Equal(t, float64(5000), earnings["currentMonth"])
}

func TestTouristDashboard(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice", models.RoleTourist)
	bob := createUser(t, db, "bob", models.RoleGuide)
	manager := createUser(t, db, "manager", models.RoleHotelManager)
	destination := createDestination(t, db, "Sundarbans")
	hotel, roomType := createHotelWithRoom(t, db, manager, 2000, 5)

	request := bookAndGetRequest(t, db, r, alice, bob, destination.ID, nil)
	w := doJSON(t, r, "POST", fmt.Sprintf("/guide/requests/%d/accept", request.ID), tokenFor(t, bob), nil)
	require.Equal(t, 200, w.Code)

	bookPendingRoom(t, db, r, alice, hotel, roomType)

	w = doJSON(t, r, "GET", "/tourists/dashboard", tokenFor(t, alice), nil)
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	tourRequests := body["tourRequests"].(map[string]interface{})
	assert.Equal(t, float64(0), tourRequests["pending"])
	assert.Equal(t, float64(1), tourRequests["accepted"])

	hotelBookings := body["hotelBookings"].(map[string]interface{})
	assert.Equal(t, float64(1), hotelBookings["pending"])

	// The acceptance left an unread notification behind
	assert.Equal(t, float64(1), body["unreadNotifications"])
}

func TestHotelManagerDashboard(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	manager := createUser(t, db, "manager", models.RoleHotelManager)
	alice := createUser(t, db, "alice", models.RoleTourist)
	hotel, roomType := createHotelWithRoom(t, db, manager, 2500, 5)

	booking := bookPendingRoom(t, db, r, alice, hotel, roomType)
	w := doJSON(t, r, "PATCH",
		fmt.Sprintf("/manager/hotels/bookings/%d/status", booking.ID),
		tokenFor(t, manager), map[string]interface{}{"status": "confirmed"})
	require.Equal(t, 200, w.Code)

	bookPendingRoom(t, db, r, alice, hotel, roomType)

	w = doJSON(t, r, "GET", "/manager/dashboard", tokenFor(t, manager), nil)
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["hotelCount"])

	bookings := body["bookings"].(map[string]interface{})
	assert.Equal(t, float64(1), bookings["pending"])
	assert.Equal(t, float64(1), bookings["confirmed"])

	// Confirmed booking this month counts toward revenue: 2500 x 1 room x 2 nights
	assert.Equal(t, float64(5000), body["monthRevenue"])
}
