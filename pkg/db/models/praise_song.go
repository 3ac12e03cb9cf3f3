package models

import (
	"time"

	"github.com/google/uuid"
)

// PraiseSong is one repertoire entry referenced by rosters.
type PraiseSong struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Artist    string    `gorm:"column:artist;not null"`
	SongKey   *string   `gorm:"column:song_key"`
	Lyrics    *string   `gorm:"column:lyrics"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy collection name.
func (PraiseSong) TableName() string {
	return "praise_songs"
}
