package scheduling

import (
	"github.com/salonkit/salon-scheduler/internal/models"
	"github.com/salonkit/salon-scheduler/internal/timegrid"
)

type Availability struct {
	AllSlots      []string `json:"all_slots"`
	OccupiedSlots []string `json:"occupied_slots"`
}

// BuildSlots gera a grade de horários do dia a partir da configuração
// de expediente. Dia fechado ou sem configuração → grade vazia.
func BuildSlots(wh *models.WorkingHours) []string {
	if wh == nil || wh.Closed || wh.StartTime == "" || wh.EndTime == "" {
		return []string{}
	}

	slots, err := timegrid.Slots(wh.StartTime, wh.EndTime)
	if err != nil || slots == nil {
		return []string{}
	}
	return slots
}

// MarkOccupied devolve o subconjunto de slots cujo intervalo [slot, slot+30min)
// sobrepõe algum agendamento ativo [start, end) do profissional.
//
// A grade não verifica se a duração completa do serviço cabe antes do
// fechamento: o slot só ancora o início (limitação conhecida).
func MarkOccupied(slots []string, appointments []models.Appointment) []string {
	occupied := []string{}

	for _, slot := range slots {
		slotStart, err := timegrid.ToMinutes(slot)
		if err != nil {
			continue
		}
		slotEnd := slotStart + timegrid.SlotMinutes

		for _, ap := range appointments {
			apStart, err := timegrid.ToMinutes(ap.StartTime)
			if err != nil {
				continue
			}
			apEnd, err := timegrid.ToMinutes(ap.EndTime)
			if err != nil {
				continue
			}

			if timegrid.Overlaps(slotStart, slotEnd, apStart, apEnd) {
				occupied = append(occupied, slot)
				break
			}
		}
	}

	return occupied
}
