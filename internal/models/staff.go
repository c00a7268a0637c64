package models

import "time"

// Specialties is informational only; it does not restrict which
// services a staff member can be booked for.
type Staff struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `json:"business_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Specialties string `gorm:"size:255" json:"specialties"`
	PhotoURL    string `gorm:"size:255" json:"photo_url"`
	Active      bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
