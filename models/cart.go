package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart is a per-user collection of product lines. user_id is nullable in
// storage but every HTTP path attaches the authenticated user.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (cart *Cart) BeforeCreate(tx *gorm.DB) error {
	if cart.ID == uuid.Nil {
		cart.ID = uuid.New()
	}
	return nil
}

// CartItem is one line in a cart: a polymorphic (kind, product_id) reference
// plus quantity and price/weight snapshots taken from the product on every
// save. A cart holds at most one line per distinct product.
type CartItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CartID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_kind_product" json:"cart_id"`
	ProductKind  ProductKind     `gorm:"not null;uniqueIndex:idx_cart_kind_product" json:"product_kind"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_kind_product" json:"product_id"`
	Quantity     int             `gorm:"not null;default:1" json:"quantity"`
	CachedPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cached_price"`
	CachedWeight decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"cached_weight"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (item *CartItem) BeforeCreate(tx *gorm.DB) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return nil
}

// BeforeSave re-reads the referenced product and overwrites the cached price
// and weight, so the snapshot is as fresh as the last mutation of this line.
// A product that no longer resolves keeps the previous cached values.
func (item *CartItem) BeforeSave(tx *gorm.DB) error {
	// Fresh session so the lookup does not clobber the statement being saved.
	info, err := ResolveProduct(tx.Session(&gorm.Session{NewDB: true}), item.ProductKind, item.ProductID)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return nil
		}
		return err
	}
	item.CachedPrice = info.Price
	item.CachedWeight = info.Weight
	return nil
}

// SubtotalPrice is quantity times the cached unit price.
func (item *CartItem) SubtotalPrice() decimal.Decimal {
	return item.CachedPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// SubtotalWeight is quantity times the cached unit weight.
func (item *CartItem) SubtotalWeight() decimal.Decimal {
	return item.CachedWeight.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// AddProduct puts quantity units of the referenced product into the cart.
// A repeat add of the same product merges into the existing line instead of
// creating a second one; the save refreshes the cached price/weight either way.
func (cart *Cart) AddProduct(db *gorm.DB, kind ProductKind, productID uuid.UUID, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	// Resolve up front so an unknown product fails before any row is written.
	info, err := ResolveProduct(db, kind, productID)
	if err != nil {
		return nil, err
	}

	var item CartItem
	err = db.Where("cart_id = ? AND product_kind = ? AND product_id = ?", cart.ID, kind, productID).
		First(&item).Error
	if err == nil {
		item.Quantity += quantity
		if err := db.Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item = CartItem{
		ID:           uuid.New(),
		CartID:       cart.ID,
		ProductKind:  kind,
		ProductID:    productID,
		Quantity:     quantity,
		CachedPrice:  info.Price,
		CachedWeight: info.Weight,
	}
	if err := db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveProduct takes quantity units off the matching line. When nothing would
// remain the line is deleted outright. The false return means the product was
// not in the cart; that is a no-op signal, not an error.
func (cart *Cart) RemoveProduct(db *gorm.DB, kind ProductKind, productID uuid.UUID, quantity int) (bool, error) {
	if quantity < 1 {
		return false, ErrInvalidQuantity
	}

	var item CartItem
	err := db.Where("cart_id = ? AND product_kind = ? AND product_id = ?", cart.ID, kind, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if item.Quantity <= quantity {
		if err := db.Delete(&item).Error; err != nil {
			return false, err
		}
		return true, nil
	}

	item.Quantity -= quantity
	if err := db.Save(&item).Error; err != nil {
		return false, err
	}
	return true, nil
}

// Clear deletes every line in the cart. Idempotent.
func (cart *Cart) Clear(db *gorm.DB) error {
	return db.Where("cart_id = ?", cart.ID).Delete(&CartItem{}).Error
}

// LoadItems returns the cart's lines in insertion order.
func (cart *Cart) LoadItems(db *gorm.DB) ([]CartItem, error) {
	var items []CartItem
	if err := db.Where("cart_id = ?", cart.ID).Order("created_at").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// TotalPrice sums quantity * cached price over all lines; 0 for an empty cart.
func (cart *Cart) TotalPrice(db *gorm.DB) (decimal.Decimal, error) {
	items, err := cart.LoadItems(db)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.SubtotalPrice())
	}
	return total, nil
}

// TotalWeight sums quantity * cached weight over all lines; 0 for an empty cart.
func (cart *Cart) TotalWeight(db *gorm.DB) (decimal.Decimal, error) {
	items, err := cart.LoadItems(db)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.SubtotalWeight())
	}
	return total, nil
}

// ItemCount is the number of distinct product lines, not summed quantities.
func (cart *Cart) ItemCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&CartItem{}).Where("cart_id = ?", cart.ID).Count(&count).Error
	return count, err
}

// GetOrCreateCartForUser returns the user's cart, creating one when none
// exists. Storage does not enforce one cart per user, so two concurrent
// first-time calls can each create a cart; the oldest one wins on later
// lookups. Known gap, kept as-is.
func GetOrCreateCartForUser(db *gorm.DB, userID uuid.UUID) (*Cart, bool, error) {
	var cart Cart
	err := db.Where("user_id = ?", userID).Order("created_at").First(&cart).Error
	if err == nil {
		return &cart, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	cart = Cart{ID: uuid.New(), UserID: &userID}
	if err := db.Create(&cart).Error; err != nil {
		return nil, false, err
	}
	return &cart, true, nil
}
