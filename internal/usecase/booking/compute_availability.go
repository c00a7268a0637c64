package booking

import (
	"context"
	"log"

	"github.com/salonkit/salon-scheduler/internal/cache"
	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
	"github.com/salonkit/salon-scheduler/internal/tenant"
	"github.com/salonkit/salon-scheduler/internal/timezone"
)

type ComputeAvailability struct {
	repo  scheduling.Repository
	cache *cache.AvailabilityCache
}

func NewComputeAvailability(
	repo scheduling.Repository,
	cache *cache.AvailabilityCache,
) *ComputeAvailability {
	return &ComputeAvailability{
		repo:  repo,
		cache: cache,
	}
}

// Execute calcula a grade do dia e marca os slots ocupados do
// profissional. Nunca retorna erro: qualquer falha de leitura degrada
// para "nenhum horário disponível", e a página de agendamento sempre
// tem um estado definido.
//
// Sem profissional selecionado ("qualquer um disponível") a ocupação
// não é verificada: todos os slots gerados aparecem livres mesmo que
// toda a equipe esteja ocupada. Decisão de produto preservada.
func (uc *ComputeAvailability) Execute(
	ctx context.Context,
	tn tenant.Context,
	date string,
	staffID *uint,
) *scheduling.Availability {

	empty := &scheduling.Availability{
		AllSlots:      []string{},
		OccupiedSlots: []string{},
	}

	weekday, err := timezone.Weekday(date)
	if err != nil {
		return empty
	}

	if av, ok := uc.cache.Get(ctx, tn.BusinessID, staffID, date); ok {
		return av
	}

	wh, err := uc.repo.GetWorkingHours(ctx, tn.BusinessID, weekday)
	if err != nil {
		// dia sem configuração ou falha de leitura → fechado
		return empty
	}

	slots := scheduling.BuildSlots(wh)
	if len(slots) == 0 {
		return empty
	}

	occupied := []string{}
	if staffID != nil {
		appointments, err := uc.repo.ListStaffAppointmentsForDate(
			ctx,
			*staffID,
			date,
			scheduling.ActiveStatuses(),
		)
		if err != nil {
			log.Printf("availability: listing staff %d appointments failed: %v", *staffID, err)
			return empty
		}

		occupied = scheduling.MarkOccupied(slots, appointments)
	}

	av := &scheduling.Availability{
		AllSlots:      slots,
		OccupiedSlots: occupied,
	}

	uc.cache.Set(ctx, tn.BusinessID, staffID, date, av)

	return av
}
