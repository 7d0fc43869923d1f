// Package domain contains persistence models for billing clients.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Client represents a billing party owned by exactly one user.
type Client struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID `gorm:"not null;index" json:"user_id"`
	Name          string       `gorm:"not null" json:"name"`
	Email         string       `gorm:"type:text" json:"email,omitempty"`
	Phone         string       `gorm:"type:text" json:"phone,omitempty"`
	Address       string       `gorm:"type:text" json:"address,omitempty"`
	Company       string       `gorm:"type:text" json:"company,omitempty"`
	ContactPerson string       `gorm:"type:text" json:"contact_person,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
