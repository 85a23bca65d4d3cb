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

type BookHandler struct {
	DB *gorm.DB
}

func (h *BookHandler) GetBooks(c *gin.Context) {
	var books []models.Book
	query := h.DB.Preload("Author")

	// Search by title
	if search := c.Query("search"); search != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+search+"%")
	}

	if err := query.Find(&books).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
		return
	}

	c.JSON(http.StatusOK, books)
}

func (h *BookHandler) GetBook(c *gin.Context) {
	id := c.Param("id")
	var book models.Book

	if err := h.DB.Preload("Author").Where("id = ?", id).First(&book).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) CreateBook(c *gin.Context) {
	var req struct {
		Title         string          `json:"title" binding:"required"`
		AuthorID      uuid.UUID       `json:"author_id" binding:"required"`
		NumberOfPages int             `json:"number_of_pages" binding:"required,min=1"`
		Price         decimal.Decimal `json:"price"`
		Weight        decimal.Decimal `json:"weight"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Price.IsNegative() || req.Weight.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Price and weight must not be negative"})
		return
	}

	var author models.User
	if err := h.DB.Where("id = ?", req.AuthorID).First(&author).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Author not found"})
		return
	}

	book := models.Book{
		ID:            uuid.New(),
		Title:         req.Title,
		AuthorID:      req.AuthorID,
		NumberOfPages: req.NumberOfPages,
		Price:         req.Price,
		Weight:        req.Weight,
	}

	if err := h.DB.Create(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		return
	}

	c.JSON(http.StatusCreated, book)
}

func (h *BookHandler) UpdateBook(c *gin.Context) {
	id := c.Param("id")
	var book models.Book
	if err := h.DB.Where("id = ?", id).First(&book).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	var req struct {
		Title         *string          `json:"title"`
		NumberOfPages *int             `json:"number_of_pages" binding:"omitempty,min=1"`
		Price         *decimal.Decimal `json:"price"`
		Weight        *decimal.Decimal `json:"weight"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.NumberOfPages != nil {
		book.NumberOfPages = *req.NumberOfPages
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must not be negative"})
			return
		}
		book.Price = *req.Price
	}
	if req.Weight != nil {
		if req.Weight.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Weight must not be negative"})
			return
		}
		book.Weight = *req.Weight
	}

	if err := h.DB.Save(&book).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		return
	}

	// Cart lines caching the old price stay stale until their next mutation.
	c.JSON(http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Where("id = ?", id).Delete(&models.Book{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}
