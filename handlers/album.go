package handlers

import (
	"net/http"

	"bookstore-backend/models"
	"bookstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AlbumHandler struct {
	DB *gorm.DB
}

func (h *AlbumHandler) GetAlbums(c *gin.Context) {
	var albums []models.MusicAlbum
	if err := h.DB.Preload("Artist").Find(&albums).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch albums"})
		return
	}
	c.JSON(http.StatusOK, albums)
}

func (h *AlbumHandler) GetAlbum(c *gin.Context) {
	id := c.Param("id")
	var album models.MusicAlbum
	if err := h.DB.Preload("Artist").Where("id = ?", id).First(&album).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Album not found"})
		return
	}
	c.JSON(http.StatusOK, album)
}

func (h *AlbumHandler) CreateAlbum(c *gin.Context) {
	var req struct {
		ArtistID       uuid.UUID       `json:"artist_id" binding:"required"`
		NumberOfTracks int             `json:"number_of_tracks" binding:"required,min=1"`
		Price          decimal.Decimal `json:"price"`
		Weight         decimal.Decimal `json:"weight"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Price.IsNegative() || req.Weight.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and weight must not be negative"})
		return
	}

	var artist models.User
	if err := h.DB.Where("id = ?", req.ArtistID).First(&artist).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Artist not found"})
		return
	}

	album := models.MusicAlbum{
		ID:             uuid.New(),
		ArtistID:       req.ArtistID,
		NumberOfTracks: req.NumberOfTracks,
		Price:          req.Price,
		Weight:         req.Weight,
	}

	if err := h.DB.Create(&album).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create album"})
		return
	}

	c.JSON(http.StatusCreated, album)
}

func (h *AlbumHandler) DeleteAlbum(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Where("id = ?", id).Delete(&models.MusicAlbum{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete album"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Album deleted"})
}
