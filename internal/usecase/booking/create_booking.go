package booking

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/salonkit/salon-scheduler/internal/audit"
	"github.com/salonkit/salon-scheduler/internal/cache"
	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/metrics"
	"github.com/salonkit/salon-scheduler/internal/models"
	"github.com/salonkit/salon-scheduler/internal/notify"
	"github.com/salonkit/salon-scheduler/internal/tenant"
	"github.com/salonkit/salon-scheduler/internal/timegrid"
	"github.com/salonkit/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type CustomerInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Notes     string
}

type CreateBookingInput struct {
	ServiceIDs []uint
	Date       string // YYYY-MM-DD
	StartTime  string // HH:mm
	StaffID    *uint  // nil = "qualquer um disponível"
	Customer   CustomerInput
	Notes      string
}

type CreateBookingResult struct {
	GroupID    string  `json:"group_id"`
	CustomerID uint    `json:"customer_id"`
	StaffID    *uint   `json:"staff_id"`
	EndTime    string  `json:"end_time"`
	TotalPrice float64 `json:"total_price"`
}

// Picker escolhe um índice em [0,n). Injetável para tornar o sorteio
// de profissional determinístico em teste.
type Picker func(n int) int

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     scheduling.Repository
	notifier *notify.Notifier
	audit    *audit.Dispatcher
	cache    *cache.AvailabilityCache
	pick     Picker
}

func NewCreateBooking(
	repo scheduling.Repository,
	notifier *notify.Notifier,
	audit *audit.Dispatcher,
	cache *cache.AvailabilityCache,
	pick Picker,
) *CreateBooking {
	if pick == nil {
		pick = rand.Intn
	}
	return &CreateBooking{
		repo:     repo,
		notifier: notifier,
		audit:    audit,
		cache:    cache,
		pick:     pick,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	tn tenant.Context,
	in CreateBookingInput,
) (*CreateBookingResult, error) {

	// --------------------------------------------------
	// 1. Pré-condições, antes de qualquer I/O
	// --------------------------------------------------
	if err := validateInput(in); err != nil {
		return nil, err
	}

	biz, err := uc.repo.GetBusinessByID(ctx, tn.BusinessID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Antecedência mínima
	// --------------------------------------------------
	start, err := timezone.ParseDateTime(biz.Timezone, in.Date, in.StartTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := biz.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(biz.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3. Expediente do dia
	// --------------------------------------------------
	weekday, err := timezone.Weekday(in.Date)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	wh, err := uc.repo.GetWorkingHours(ctx, tn.BusinessID, weekday)
	if err != nil || wh.Closed {
		return nil, httperr.ErrBusiness("business_closed")
	}

	// --------------------------------------------------
	// 4. Serviços + totais
	// --------------------------------------------------
	serviceIDs := dedupe(in.ServiceIDs)

	services, err := uc.repo.ListServicesByIDs(ctx, tn.BusinessID, serviceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(serviceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	totalDuration := 0
	for _, svc := range services {
		totalDuration += svc.DurationMin
	}

	// aritmética de minuto-do-dia; fim após meia-noite "enrola" no
	// mesmo dia (limitação conhecida)
	endTime, err := timegrid.AddMinutes(in.StartTime, totalDuration)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time")
	}

	// --------------------------------------------------
	// 5. Resolução de profissional
	// --------------------------------------------------
	staffID, err := uc.resolveStaff(ctx, tn, in.StaffID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Cliente (get or create)
	// --------------------------------------------------
	customer, err := uc.repo.GetOrCreateCustomer(ctx, tn.BusinessID, models.Customer{
		FirstName: in.Customer.FirstName,
		LastName:  in.Customer.LastName,
		Phone:     in.Customer.Phone,
		Email:     in.Customer.Email,
		Notes:     in.Customer.Notes,
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7. Grupo atômico: uma linha por serviço
	// --------------------------------------------------
	groupID := uuid.NewString()

	rows := make([]models.Appointment, 0, len(services))
	totalPrice := 0.0
	for _, svc := range services {
		totalPrice += svc.Price
		rows = append(rows, models.Appointment{
			BusinessID:         tn.BusinessID,
			AppointmentGroupID: groupID,
			CustomerID:         customer.ID,
			ServiceID:          svc.ID,
			StaffID:            staffID,
			AppointmentDate:    in.Date,
			StartTime:          in.StartTime,
			EndTime:            endTime,
			Status:             string(scheduling.InitialStatus()),
			TotalPrice:         svc.Price,
			Notes:              in.Notes,
		})
	}

	if err := uc.repo.InsertAppointmentGroup(ctx, rows); err != nil {
		if httperr.IsBusiness(err, "slot_conflict") {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	// --------------------------------------------------
	// 8. Efeitos colaterais (nunca revertem o agendamento)
	// --------------------------------------------------
	metrics.BookingsCreated.Inc()

	uc.cache.Invalidate(ctx, tn.BusinessID, staffID, in.Date)

	if uc.notifier != nil {
		uc.notifier.BusinessNewBooking(biz.Phone, customer.FirstName+" "+customer.LastName, in.Date, in.StartTime)
		uc.notifier.CustomerConfirmation(customer.Phone, biz.Name, in.Date, in.StartTime)
		metrics.NotificationsSent.Inc()
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: tn.BusinessID,
			Action:     "booking_created",
			Entity:     "appointment_group",
			Metadata: map[string]any{
				"group_id": groupID,
				"date":     in.Date,
				"start":    in.StartTime,
				"services": len(services),
			},
		})
	}

	return &CreateBookingResult{
		GroupID:    groupID,
		CustomerID: customer.ID,
		StaffID:    staffID,
		EndTime:    endTime,
		TotalPrice: totalPrice,
	}, nil
}

// ======================================================
// HELPERS
// ======================================================

func validateInput(in CreateBookingInput) error {
	if len(in.ServiceIDs) == 0 {
		return httperr.ErrBusiness("missing_services")
	}
	if in.Date == "" {
		return httperr.ErrBusiness("missing_date")
	}
	if in.StartTime == "" {
		return httperr.ErrBusiness("missing_time")
	}
	if _, err := timegrid.ToMinutes(in.StartTime); err != nil {
		return httperr.ErrBusiness("invalid_time")
	}
	if in.Customer.FirstName == "" || in.Customer.LastName == "" || in.Customer.Phone == "" {
		return httperr.ErrBusiness("missing_customer_fields")
	}
	return nil
}

// resolveStaff: escolha explícita vence; "qualquer um" sorteia entre os
// ativos; sem equipe cadastrada fica sem atribuição.
func (uc *CreateBooking) resolveStaff(
	ctx context.Context,
	tn tenant.Context,
	explicit *uint,
) (*uint, error) {

	if explicit != nil {
		st, err := uc.repo.GetStaff(ctx, tn.BusinessID, *explicit)
		if err != nil || !st.Active {
			return nil, httperr.ErrBusiness("staff_not_found")
		}
		return &st.ID, nil
	}

	staff, err := uc.repo.ListActiveStaff(ctx, tn.BusinessID)
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return nil, nil
	}

	picked := staff[uc.pick(len(staff))].ID
	return &picked, nil
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
