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

type LicenseHandler struct {
	DB *gorm.DB
}

func (h *LicenseHandler) GetLicenses(c *gin.Context) {
	var licenses []models.SoftwareLicense
	if err := h.DB.Find(&licenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch licenses"})
		return
	}
	c.JSON(http.StatusOK, licenses)
}

func (h *LicenseHandler) GetLicense(c *gin.Context) {
	id := c.Param("id")
	var license models.SoftwareLicense
	if err := h.DB.Where("id = ?", id).First(&license).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "License not found"})
		return
	}
	c.JSON(http.StatusOK, license)
}

func (h *LicenseHandler) CreateLicense(c *gin.Context) {
	var req struct {
		Price  decimal.Decimal `json:"price"`
		Weight decimal.Decimal `json:"weight"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Price.IsNegative() || req.Weight.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and weight must not be negative"})
		return
	}

	license := models.SoftwareLicense{
		ID:     uuid.New(),
		Price:  req.Price,
		Weight: req.Weight,
	}

	if err := h.DB.Create(&license).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create license"})
		return
	}

	c.JSON(http.StatusCreated, license)
}

func (h *LicenseHandler) DeleteLicense(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Where("id = ?", id).Delete(&models.SoftwareLicense{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete license"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "License deleted"})
}
