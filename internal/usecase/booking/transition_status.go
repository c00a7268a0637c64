package booking

import (
	"context"

	"github.com/salonkit/salon-scheduler/internal/audit"
	"github.com/salonkit/salon-scheduler/internal/cache"
	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/metrics"
	"github.com/salonkit/salon-scheduler/internal/tenant"
	"github.com/salonkit/salon-scheduler/internal/timezone"
)

type TransitionResult struct {
	GroupID    string            `json:"group_id"`
	Status     scheduling.Status `json:"status"`
	PaymentDue bool              `json:"payment_due"`
}

type TransitionStatus struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	cache *cache.AvailabilityCache
}

func NewTransitionStatus(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
) *TransitionStatus {
	return &TransitionStatus{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

// Execute muda o status de TODAS as linhas do grupo de uma vez, nunca
// de um subconjunto. Falha de escrita não altera nada: o chamador
// relê o grupo e continua vendo o estado anterior.
func (uc *TransitionStatus) Execute(
	ctx context.Context,
	tn tenant.Context,
	userID *uint,
	groupID string,
	newStatus scheduling.Status,
) (*TransitionResult, error) {

	if !scheduling.IsValidStatus(newStatus) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	rows, err := uc.repo.GetGroup(ctx, tn.BusinessID, groupID)
	if err != nil {
		return nil, err
	}

	current := scheduling.Status(rows[0].Status)
	if err := scheduling.CanTransition(current, newStatus); err != nil {
		return nil, err
	}

	biz, err := uc.repo.GetBusinessByID(ctx, tn.BusinessID)
	if err != nil {
		return nil, err
	}
	now := timezone.NowIn(biz.Timezone)

	if err := uc.repo.UpdateGroupStatus(ctx, tn.BusinessID, groupID, newStatus, now); err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(string(newStatus)).Inc()

	uc.cache.Invalidate(ctx, tn.BusinessID, rows[0].StaffID, rows[0].AppointmentDate)

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: tn.BusinessID,
			UserID:     userID,
			Action:     "appointment_status_changed",
			Entity:     "appointment_group",
			Metadata: map[string]any{
				"group_id": groupID,
				"from":     string(current),
				"to":       string(newStatus),
			},
		})
	}

	return &TransitionResult{
		GroupID:    groupID,
		Status:     newStatus,
		PaymentDue: scheduling.PromptsPayment(newStatus),
	}, nil
}
