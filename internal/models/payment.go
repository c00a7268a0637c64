package models

import "time"

const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodCredit = "credit"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
)

// Pagamento vinculado a uma linha de Appointment. O "pagamento" de um
// grupo é a agregação dos pagamentos das linhas.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID    uint `json:"business_id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	Amount float64 `json:"amount"`
	Method string  `gorm:"size:20;not null" json:"payment_method"`
	Status string  `gorm:"size:20;default:'pending'" json:"payment_status"`

	// Crédito/fiado: data prevista de recebimento
	ExpectedPaymentDate *time.Time `json:"expected_payment_date"`

	// Link de pagamento do gateway, quando gerado
	ProviderRef string `gorm:"size:255" json:"provider_ref"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
