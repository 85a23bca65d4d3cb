package handlers

import (
	"errors"
	"net/http"

	"bookstore-backend/models"
	"bookstore-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartHandler struct {
	DB *gorm.DB
}

// productRequest is the shared payload for add and remove. Quantity is
// optional and defaults to 1, matching repeat "add to cart" clicks.
type productRequest struct {
	ProductKind string    `json:"product_kind" binding:"required"`
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Quantity    *int      `json:"quantity" binding:"omitempty,min=1"`
}

func (r *productRequest) quantity() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

// userCart resolves the authenticated user's cart, creating one on first use.
// Writes the error response itself and returns nil when that fails.
func (h *CartHandler) userCart(c *gin.Context) (*models.Cart, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}

	cart, created, err := models.GetOrCreateCartForUser(h.DB, userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
		return nil, false
	}
	return cart, created
}

// cartSummary serializes the full cart shape the clients render: every line
// with its subtotals plus the cart-level aggregates.
func (h *CartHandler) cartSummary(cart *models.Cart) (gin.H, error) {
	items, err := cart.LoadItems(h.DB)
	if err != nil {
		return nil, err
	}

	totalPrice := decimal.Zero
	totalWeight := decimal.Zero
	lines := make([]gin.H, 0, len(items))
	for _, item := range items {
		// The label is display-only; a vanished product just renders blank.
		label := ""
		if info, err := models.ResolveProduct(h.DB, item.ProductKind, item.ProductID); err == nil {
			label = info.Label
		}

		lines = append(lines, gin.H{
			"id":              item.ID,
			"product_kind":    item.ProductKind,
			"product_id":      item.ProductID,
			"product_label":   label,
			"quantity":        item.Quantity,
			"cached_price":    item.CachedPrice,
			"cached_weight":   item.CachedWeight,
			"subtotal_price":  item.SubtotalPrice(),
			"subtotal_weight": item.SubtotalWeight(),
		})
		totalPrice = totalPrice.Add(item.SubtotalPrice())
		totalWeight = totalWeight.Add(item.SubtotalWeight())
	}

	return gin.H{
		"id":           cart.ID,
		"user_id":      cart.UserID,
		"items":        lines,
		"total_price":  totalPrice,
		"total_weight": totalWeight,
		"item_count":   len(items),
		"created_at":   cart.CreatedAt,
		"updated_at":   cart.UpdatedAt,
	}, nil
}

// GetCart returns the user's cart, creating it on first access.
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, created := h.userCart(c)
	if cart == nil {
		return
	}

	summary, err := h.cartSummary(cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, summary)
}

func (h *CartHandler) AddProduct(c *gin.Context) {
	cart, _ := h.userCart(c)
	if cart == nil {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	kind, err := models.ParseProductKind(req.ProductKind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product kind: must be book, album or license"})
		return
	}

	if _, err := cart.AddProduct(h.DB, kind, req.ProductID, req.quantity()); err != nil {
		switch {
		case errors.Is(err, models.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, models.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add product to cart"})
		}
		return
	}

	summary, err := h.cartSummary(cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product added to cart", "cart": summary})
}

func (h *CartHandler) RemoveProduct(c *gin.Context) {
	cart, _ := h.userCart(c)
	if cart == nil {
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	kind, err := models.ParseProductKind(req.ProductKind)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product kind: must be book, album or license"})
		return
	}

	removed, err := cart.RemoveProduct(h.DB, kind, req.ProductID, req.quantity())
	if err != nil {
		if errors.Is(err, models.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove product from cart"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found in cart"})
		return
	}

	summary, err := h.cartSummary(cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from cart", "cart": summary})
}

func (h *CartHandler) GetTotals(c *gin.Context) {
	cart, _ := h.userCart(c)
	if cart == nil {
		return
	}

	totalPrice, err := cart.TotalPrice(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return
	}
	totalWeight, err := cart.TotalWeight(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return
	}
	count, err := cart.ItemCount(h.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart_id":      cart.ID,
		"total_price":  totalPrice,
		"total_weight": totalWeight,
		"item_count":   count,
	})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, _ := h.userCart(c)
	if cart == nil {
		return
	}

	if err := cart.Clear(h.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	summary, err := h.cartSummary(cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared", "cart": summary})
}
