package handlers

import (
	"log"
	"strconv"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/deshghuri/deshghuri-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// recomputeHotelPriceRange rewrites the hotel's derived min and max price
// from its current room type set.
func recomputeHotelPriceRange(tx *gorm.DB, hotelID uint) error {
	var prices []float64
	if err := tx.Model(&models.RoomType{}).Where("hotel_id = ?", hotelID).
		Pluck("price_per_night", &prices).Error; err != nil {
		return err
	}

	var minPrice, maxPrice float64
	for i, p := range prices {
		if i == 0 || p < minPrice {
			minPrice = p
		}
		if p > maxPrice {
			maxPrice = p
		}
	}

	return tx.Model(&models.Hotel{}).Where("id = ?", hotelID).
		Updates(map[string]interface{}{"min_price": minPrice, "max_price": maxPrice}).Error
}

// getOwnedHotel loads a hotel and checks that the authenticated manager owns it
func getOwnedHotel(db *gorm.DB, c *gin.Context, hotelID uint) (*models.Hotel, bool) {
	var hotel models.Hotel
	if err := db.First(&hotel, hotelID).Error; err != nil {
		c.JSON(404, gin.H{"error": "Hotel not found"})
		return nil, false
	}
	if hotel.OwnerID != c.GetUint("userId") {
		c.JSON(403, gin.H{"error": "Unauthorized to manage this hotel"})
		return nil, false
	}
	return &hotel, true
}

// GetHotels lists hotels, optionally filtered by city or area
func GetHotels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("RoomTypes").Preload("Images").Order("created_at DESC")

		if city := c.Query("city"); city != "" {
			query = query.Where("city = ?", city)
		}
		if area := c.Query("area"); area != "" {
			query = query.Where("area = ?", area)
		}

		var hotels []models.Hotel
		if err := query.Find(&hotels).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch hotels"})
			return
		}

		c.JSON(200, hotels)
	}
}

// GetHotel returns one hotel with room types, images, and reviews
func GetHotel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel ID"})
			return
		}

		var hotel models.Hotel
		if err := db.Preload("RoomTypes").Preload("Images").First(&hotel, hotelID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Hotel not found"})
			return
		}

		var reviews []models.HotelReview
		if err := db.Preload("Tourist").Where("hotel_id = ?", hotelID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch hotel reviews"})
			return
		}

		c.JSON(200, gin.H{
			"hotel":   hotel,
			"reviews": reviews,
		})
	}
}

type hotelInput struct {
	Name        string `json:"name" binding:"required"`
	City        string `json:"city"`
	Area        string `json:"area"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

// CreateHotel registers a new hotel owned by the authenticated manager
func CreateHotel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint("userId")

		var input hotelInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		hotel := models.Hotel{
			OwnerID:     ownerID,
			Name:        input.Name,
			City:        input.City,
			Area:        input.Area,
			Address:     input.Address,
			Phone:       input.Phone,
			Description: input.Description,
		}

		if err := db.Create(&hotel).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create hotel"})
			return
		}

		c.JSON(201, hotel)
	}
}

// UpdateHotel edits a hotel owned by the authenticated manager
func UpdateHotel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel ID"})
			return
		}

		hotel, ok := getOwnedHotel(db, c, uint(hotelID))
		if !ok {
			return
		}

		var input hotelInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		hotel.Name = input.Name
		hotel.City = input.City
		hotel.Area = input.Area
		hotel.Address = input.Address
		hotel.Phone = input.Phone
		hotel.Description = input.Description

		if err := db.Save(hotel).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update hotel"})
			return
		}

		c.JSON(200, hotel)
	}
}

// DeleteHotel removes a hotel owned by the authenticated manager
func DeleteHotel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel ID"})
			return
		}

		hotel, ok := getOwnedHotel(db, c, uint(hotelID))
		if !ok {
			return
		}

		if err := db.Delete(hotel).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete hotel"})
			return
		}

		c.JSON(200, gin.H{"message": "Hotel deleted successfully"})
	}
}

type roomTypeInput struct {
	Name           string  `json:"name" binding:"required"`
	PricePerNight  float64 `json:"pricePerNight" binding:"required,gt=0"`
	Capacity       int     `json:"capacity"`
	AvailableRooms int     `json:"availableRooms" binding:"min=0"`
	Description    string  `json:"description"`
}

// CreateRoomType adds a room type to an owned hotel and refreshes the
// hotel's derived price range
func CreateRoomType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel ID"})
			return
		}

		if _, ok := getOwnedHotel(db, c, uint(hotelID)); !ok {
			return
		}

		var input roomTypeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		capacity := input.Capacity
		if capacity < 1 {
			capacity = 2
		}

		roomType := models.RoomType{
			HotelID:        uint(hotelID),
			Name:           input.Name,
			PricePerNight:  input.PricePerNight,
			Capacity:       capacity,
			AvailableRooms: input.AvailableRooms,
			Description:    input.Description,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&roomType).Error; err != nil {
				return err
			}
			return recomputeHotelPriceRange(tx, uint(hotelID))
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create room type"})
			return
		}

		c.JSON(201, roomType)
	}
}

// UpdateRoomType edits a room type on an owned hotel
func UpdateRoomType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomTypeID, err := strconv.ParseUint(c.Param("roomTypeId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid room type ID"})
			return
		}

		var roomType models.RoomType
		if err := db.First(&roomType, roomTypeID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Room type not found"})
			return
		}

		if _, ok := getOwnedHotel(db, c, roomType.HotelID); !ok {
			return
		}

		var input roomTypeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		roomType.Name = input.Name
		roomType.PricePerNight = input.PricePerNight
		if input.Capacity > 0 {
			roomType.Capacity = input.Capacity
		}
		roomType.AvailableRooms = input.AvailableRooms
		roomType.Description = input.Description

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&roomType).Error; err != nil {
				return err
			}
			return recomputeHotelPriceRange(tx, roomType.HotelID)
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update room type"})
			return
		}

		c.JSON(200, roomType)
	}
}

// DeleteRoomType removes a room type from an owned hotel
func DeleteRoomType(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomTypeID, err := strconv.ParseUint(c.Param("roomTypeId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid room type ID"})
			return
		}

		var roomType models.RoomType
		if err := db.First(&roomType, roomTypeID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Room type not found"})
			return
		}

		if _, ok := getOwnedHotel(db, c, roomType.HotelID); !ok {
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&roomType).Error; err != nil {
				return err
			}
			return recomputeHotelPriceRange(tx, roomType.HotelID)
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete room type"})
			return
		}

		c.JSON(200, gin.H{"message": "Room type deleted successfully"})
	}
}

// UploadHotelImage stores an image for an owned hotel
func UploadHotelImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel ID"})
			return
		}

		if _, ok := getOwnedHotel(db, c, uint(hotelID)); !ok {
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(400, gin.H{"error": "Image file is required"})
			return
		}

		url, err := services.UploadImage(file, "hotels")
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload image"})
			return
		}

		image := models.HotelImage{
			HotelID: uint(hotelID),
			URL:     url,
			Caption: c.PostForm("caption"),
		}

		if err := db.Create(&image).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save image"})
			return
		}

		c.JSON(201, image)
	}
}

// DeleteHotelImage removes an image from an owned hotel. The stored object
// is deleted best effort after the row is gone.
func DeleteHotelImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		imageID, err := strconv.ParseUint(c.Param("imageId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid image ID"})
			return
		}

		var image models.HotelImage
		if err := db.First(&image, imageID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Image not found"})
			return
		}

		if _, ok := getOwnedHotel(db, c, image.HotelID); !ok {
			return
		}

		if err := db.Delete(&image).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete image"})
			return
		}

		if err := services.DeleteImage(image.URL); err != nil {
			log.Printf("Failed to delete stored image %s: %v", image.URL, err)
		}

		c.JSON(200, gin.H{"message": "Image deleted successfully"})
	}
}

// GetManagerHotels lists the authenticated manager's hotels
func GetManagerHotels(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetUint("userId")

		var hotels []models.Hotel
		if err := db.Preload("RoomTypes").Preload("Images").
			Where("owner_id = ?", ownerID).
			Order("created_at DESC").
			Find(&hotels).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch hotels"})
			return
		}

		c.JSON(200, hotels)
	}
}
