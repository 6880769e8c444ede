// Package models holds the gorm persistence models. This is the
// anti-corruption layer between domain aggregates and database rows.
package models

import "time"

type EventModel struct {
	ID           uint   `gorm:"primarykey"`
	TenantID     uint   `gorm:"index:idx_events_tenant_slug,unique;not null"`
	Name         string `gorm:"not null;size:200"`
	Slug         string `gorm:"index:idx_events_tenant_slug,unique;not null;size:120"`
	Description  string `gorm:"type:text"`
	Venue        string `gorm:"size:200"`
	City         string `gorm:"size:100"`
	Country      string `gorm:"size:100"`
	Status       string `gorm:"not null;size:20;default:draft;index"`
	IsPublic     bool   `gorm:"not null;default:false"`
	HeroImageURL *string
	StartAt      time.Time `gorm:"not null;index"`
	EndAt        time.Time `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (EventModel) TableName() string {
	return "events"
}
