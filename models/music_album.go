package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MusicAlbum struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ArtistID       uuid.UUID       `gorm:"type:uuid;not null" json:"artist_id"`
	Artist         User            `gorm:"foreignKey:ArtistID" json:"artist,omitempty"`
	NumberOfTracks int             `json:"number_of_tracks"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Weight         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"weight"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (a *MusicAlbum) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
