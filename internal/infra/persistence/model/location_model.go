// Package model holds GORM-specific persistence structs.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AlertLocationModel is the GORM-specific struct for the 'alert_locations'
// table. Position preserves registry insertion order across reloads.
type AlertLocationModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Position  int       `gorm:"not null;index:idx_alert_locations_on_position"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Latitude  float64   `gorm:"type:decimal(10,8);not null"`
	Longitude float64   `gorm:"type:decimal(11,8);not null"`
	Reminder  string    `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AlertLocationModel) TableName() string {
	return "alert_locations"
}
