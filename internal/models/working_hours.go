package models

import "time"

// Uma linha por dia da semana (0=domingo..6=sábado), por salão.
// Closed=true anula start/end: nenhum slot é gerado nesse dia.
type WorkingHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"uniqueIndex:idx_business_weekday" json:"business_id"`

	DayOfWeek int `gorm:"uniqueIndex:idx_business_weekday" json:"day_of_week"`

	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Closed    bool   `json:"is_closed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
