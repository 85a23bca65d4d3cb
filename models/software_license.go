package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SoftwareLicense has no display attributes of its own; the id doubles as its
// label.
type SoftwareLicense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Weight    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"weight"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (l *SoftwareLicense) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
