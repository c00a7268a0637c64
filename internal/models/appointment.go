package models

import "time"

// Uma linha por serviço dentro de uma visita. Linhas da mesma visita
// compartilham AppointmentGroupID, data, horários e profissional: o
// "agendamento" real, do ponto de vista do cliente, é o grupo.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint     `json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	AppointmentGroupID string `gorm:"size:36;index;not null" json:"appointment_group_id"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	StaffID *uint  `gorm:"index:idx_staff_slot" json:"staff_id"`
	Staff   *Staff `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"staff"`

	AppointmentDate string `gorm:"size:10;index:idx_staff_slot;index" json:"appointment_date"`
	StartTime       string `gorm:"size:5;index:idx_staff_slot" json:"start_time"`
	EndTime         string `gorm:"size:5" json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	TotalPrice float64 `json:"total_price"`
	Notes      string  `gorm:"size:255" json:"notes"`

	Payments []Payment `gorm:"foreignKey:AppointmentID" json:"payments"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
