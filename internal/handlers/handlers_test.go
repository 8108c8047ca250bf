package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/deshghuri/deshghuri-backend/internal/database"
	"github.com/deshghuri/deshghuri-backend/internal/handlers"
	"github.com/deshghuri/deshghuri-backend/internal/middleware"
	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/deshghuri/deshghuri-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// Every connection to :memory: is a separate database, so the pool
	// must stay at a single connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// newRouter registers routes the way the API binary does, with the same
// auth and role middleware, so tests exercise the full request path.
func newRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()

	r.POST("/auth/register", handlers.Register(db))
	r.POST("/auth/login", handlers.Login(db))
	r.GET("/packages/:id", handlers.GetPackage(db))
	r.GET("/hotels", handlers.GetHotels(db))
	r.GET("/guides/:guideId/reviews", handlers.GetGuideReviews(db))

	auth := r.Group("/", middleware.AuthMiddleware())

	tourist := auth.Group("/", middleware.RequireRole(models.RoleTourist))
	{
		tourist.POST("/guides/:guideId/book", handlers.BookGuide(db, nil))
		tourist.POST("/guides/:guideId/reviews", handlers.CreateGuideReview(db, nil))
		tourist.PUT("/reviews/:id", handlers.UpdateGuideReview(db))
		tourist.DELETE("/reviews/:id", handlers.DeleteGuideReview(db))
		tourist.POST("/hotels/:id/rooms/:roomTypeId/book", handlers.BookRoom(db, nil))
		tourist.POST("/hotels/bookings/:id/cancel", handlers.CancelHotelBooking(db, nil))
		tourist.POST("/hotels/:id/reviews", handlers.CreateHotelReview(db, nil))
		tourist.PUT("/hotels/reviews/:id", handlers.UpdateHotelReview(db))
		tourist.DELETE("/hotels/reviews/:id", handlers.DeleteHotelReview(db))
		tourist.POST("/packages/:id/book", handlers.BookPackage(db))
		tourist.POST("/packages/:id/reviews", handlers.AddPackageReview(db))
		tourist.GET("/tourists/dashboard", handlers.TouristDashboard(db))
		tourist.GET("/tourists/tours", handlers.GetTouristTours(db))
	}

	guide := auth.Group("/guide", middleware.RequireRole(models.RoleGuide))
	{
		guide.GET("/dashboard", handlers.GuideDashboard(db))
		guide.GET("/requests", handlers.GetGuideTourRequests(db))
		guide.POST("/requests/:id/accept", handlers.AcceptTourRequest(db, nil))
		guide.POST("/requests/:id/reject", handlers.RejectTourRequest(db, nil))
		guide.GET("/tours", handlers.GetGuideTours(db))
		guide.POST("/tours/:id/complete", handlers.CompleteTour(db, nil))
	}

	manager := auth.Group("/manager", middleware.RequireRole(models.RoleHotelManager))
	{
		manager.GET("/dashboard", handlers.HotelManagerDashboard(db))
		manager.POST("/hotels", handlers.CreateHotel(db))
		manager.POST("/hotels/:id/room-types", handlers.CreateRoomType(db))
		manager.PUT("/hotels/room-types/:roomTypeId", handlers.UpdateRoomType(db))
		manager.DELETE("/hotels/room-types/:roomTypeId", handlers.DeleteRoomType(db))
		manager.PATCH("/hotels/bookings/:id/status", handlers.UpdateHotelBookingStatus(db, nil))
		manager.GET("/hotels/:id/bookings", handlers.GetHotelBookings(db))
	}

	auth.GET("/notifications", handlers.GetNotifications(db))
	auth.GET("/notifications/unread-count", handlers.GetUnreadCount(db))
	auth.POST("/notifications/:id/read", handlers.MarkNotificationRead(db))
	auth.POST("/notifications/read-all", handlers.MarkAllNotificationsRead(db))

	return r
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)

	if role == models.RoleGuide {
		require.NoError(t, db.Create(&models.GuideProfile{UserID: user.ID}).Error)
	}
	return user
}

func tokenFor(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := utils.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
