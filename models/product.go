package models

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductKind discriminates which catalog table a cart line points into.
type ProductKind string

const (
	KindBook    ProductKind = "book"
	KindAlbum   ProductKind = "album"
	KindLicense ProductKind = "license"
)

// ParseProductKind maps a request-supplied tag onto the enumerated kinds.
func ParseProductKind(s string) (ProductKind, error) {
	switch kind := ProductKind(s); kind {
	case KindBook, KindAlbum, KindLicense:
		return kind, nil
	}
	return "", ErrInvalidKind
}

// ProductInfo is the minimal contract the cart needs from any catalog variant:
// identity, current price/weight and a human-readable label.
type ProductInfo struct {
	Kind   ProductKind
	ID     uuid.UUID
	Price  decimal.Decimal
	Weight decimal.Decimal
	Label  string
}

// ResolveProduct looks up the concrete product behind a (kind, id) reference.
// The switch is exhaustive over the three catalog kinds; anything else fails
// with ErrInvalidKind before touching the database.
func ResolveProduct(db *gorm.DB, kind ProductKind, id uuid.UUID) (ProductInfo, error) {
	switch kind {
	case KindBook:
		var book Book
		if err := db.Where("id = ?", id).First(&book).Error; err != nil {
			return ProductInfo{}, resolveError(err)
		}
		return ProductInfo{
			Kind:   KindBook,
			ID:     book.ID,
			Price:  book.Price,
			Weight: book.Weight,
			Label:  book.Title,
		}, nil

	case KindAlbum:
		var album MusicAlbum
		if err := db.Preload("Artist").Where("id = ?", id).First(&album).Error; err != nil {
			return ProductInfo{}, resolveError(err)
		}
		return ProductInfo{
			Kind:   KindAlbum,
			ID:     album.ID,
			Price:  album.Price,
			Weight: album.Weight,
			Label:  album.Artist.Name,
		}, nil

	case KindLicense:
		var license SoftwareLicense
		if err := db.Where("id = ?", id).First(&license).Error; err != nil {
			return ProductInfo{}, resolveError(err)
		}
		return ProductInfo{
			Kind:   KindLicense,
			ID:     license.ID,
			Price:  license.Price,
			Weight: license.Weight,
			Label:  license.ID.String(),
		}, nil
	}

	return ProductInfo{}, ErrInvalidKind
}

func resolveError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return err
}
