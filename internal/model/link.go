package model

import (
	"time"
)

// Link binds a short alias to a destination URL. The alias is immutable after
// creation; Clicks is a fast display counter kept alongside the click ledger.
type Link struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	OriginalURL string    `gorm:"type:text;not null" json:"original_url"`
	Alias       string    `gorm:"size:50;uniqueIndex;not null" json:"alias"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Clicks      int64     `gorm:"default:0" json:"clicks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Link) TableName() string {
	return "links"
}
