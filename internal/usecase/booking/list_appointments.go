package booking

import (
	"context"

	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
	"github.com/salonkit/salon-scheduler/internal/tenant"
)

type ListGroupedAppointments struct {
	repo scheduling.Repository
}

func NewListGroupedAppointments(
	repo scheduling.Repository,
) *ListGroupedAppointments {
	return &ListGroupedAppointments{
		repo: repo,
	}
}

// Execute lista as linhas do período e as recombina em grupos. As
// linhas chegam ordenadas por data/hora/id, então a linha representativa
// de cada grupo é determinística.
func (uc *ListGroupedAppointments) Execute(
	ctx context.Context,
	tn tenant.Context,
	filter scheduling.AppointmentFilter,
) ([]scheduling.AppointmentGroup, error) {

	rows, err := uc.repo.ListAppointments(ctx, tn.BusinessID, filter)
	if err != nil {
		return nil, err
	}

	return scheduling.Group(rows), nil
}
