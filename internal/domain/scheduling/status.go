package scheduling

import "github.com/salonkit/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Transições permitidas. completed → confirmed é a válvula de escape
// administrativa para desfazer conclusão por engano (não mexe em pagamento).
var allowedTransitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {StatusConfirmed},
}

func IsValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsActive diz se o status ainda ocupa o horário do profissional.
func IsActive(s Status) bool {
	return s == StatusScheduled || s == StatusConfirmed
}

func ActiveStatuses() []Status {
	return []Status{StatusScheduled, StatusConfirmed}
}

// CanTransition valida a mudança de status contra a tabela.
func CanTransition(from, to Status) error {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_transition")
}

// PromptsPayment indica se a transição exige oferecer captura de
// pagamento na sequência. Recusar a captura deixa o grupo concluído
// sem pagamento registrado, estado de negócio aceito.
func PromptsPayment(to Status) bool {
	return to == StatusCompleted
}

func InitialStatus() Status {
	return StatusScheduled
}
