package scheduling

import "github.com/salonkit/salon-scheduler/internal/models"

// ===============================
// Appointment Group
// ===============================

type GroupService struct {
	ServiceID   uint    `json:"service_id"`
	Name        string  `json:"name"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`
}

// AppointmentGroup é a visão agregada de uma visita: as linhas que
// compartilham o mesmo group id, recombinadas. Não é persistido.
type AppointmentGroup struct {
	GroupID        string           `json:"group_id"`
	AppointmentIDs []uint           `json:"appointment_ids"`
	Date           string           `json:"appointment_date"`
	StartTime      string           `json:"start_time"`
	EndTime        string           `json:"end_time"`
	Status         Status           `json:"status"`
	Notes          string           `json:"notes"`
	TotalPrice     float64          `json:"total_price"`
	Customer       models.Customer  `json:"customer"`
	Staff          *models.Staff    `json:"staff"`
	Services       []GroupService   `json:"services"`
	Payments       []models.Payment `json:"payments"`
}

// Group agrupa linhas de Appointment por group id. A primeira linha vista
// semeia os campos escalares (data, horários, status, notas, cliente,
// profissional); as demais só acrescentam serviço, id e pagamentos.
// O chamador deve passar as linhas em ordem consistente (start_time)
// para que a linha representativa seja determinística.
//
// Divergência de status entre linhas do mesmo grupo não é reconciliada:
// o gerente de status sempre grava o grupo inteiro, então confiamos na
// primeira linha.
func Group(rows []models.Appointment) []AppointmentGroup {
	byID := make(map[string]*AppointmentGroup, len(rows))
	order := make([]string, 0, len(rows))

	for _, row := range rows {
		g, ok := byID[row.AppointmentGroupID]
		if !ok {
			g = &AppointmentGroup{
				GroupID:   row.AppointmentGroupID,
				Date:      row.AppointmentDate,
				StartTime: row.StartTime,
				EndTime:   row.EndTime,
				Status:    Status(row.Status),
				Notes:     row.Notes,
				Customer:  row.Customer,
				Staff:     row.Staff,
			}
			byID[row.AppointmentGroupID] = g
			order = append(order, row.AppointmentGroupID)
		}

		g.AppointmentIDs = append(g.AppointmentIDs, row.ID)
		g.TotalPrice += row.TotalPrice
		g.Services = append(g.Services, GroupService{
			ServiceID:   row.ServiceID,
			Name:        row.Service.Name,
			DurationMin: row.Service.DurationMin,
			Price:       row.TotalPrice,
		})
		g.Payments = append(g.Payments, row.Payments...)
	}

	out := make([]AppointmentGroup, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}
