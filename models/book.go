package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Book struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title         string          `gorm:"not null" json:"title"`
	AuthorID      uuid.UUID       `gorm:"type:uuid;not null" json:"author_id"`
	Author        User            `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	NumberOfPages int             `json:"number_of_pages"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Weight        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"weight"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
