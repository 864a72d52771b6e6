package model

import (
	"time"
)

// ClickEvent is one recorded traversal of a link's alias. Rows are append-only
// and carry a one-way hash of the requester address, never the raw IP.
type ClickEvent struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	LinkID    string    `gorm:"size:36;not null;index" json:"link_id"`
	Country   string    `gorm:"size:100;index" json:"country"`
	City      string    `gorm:"size:100" json:"city,omitempty"`
	IPHash    string    `gorm:"size:64" json:"ip_hash"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ClickEvent) TableName() string {
	return "click_events"
}
