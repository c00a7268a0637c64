package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/models"
	"github.com/salonkit/salon-scheduler/internal/tenant"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

type fakeRepo struct {
	biz      *models.Business
	wh       *models.WorkingHours
	services []models.Service
	staff    []models.Staff
	group    []models.Appointment
	staffDay []models.Appointment

	insertErr   error
	staffDayErr error

	calls    int
	inserted [][]models.Appointment
	updates  []scheduling.Status
	payments []*models.Payment
}

func (f *fakeRepo) GetBusinessByID(ctx context.Context, id uint) (*models.Business, error) {
	f.calls++
	if f.biz == nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	return f.biz, nil
}

func (f *fakeRepo) GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error) {
	f.calls++
	if f.biz == nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	return f.biz, nil
}

func (f *fakeRepo) GetWorkingHours(ctx context.Context, businessID uint, dayOfWeek int) (*models.WorkingHours, error) {
	f.calls++
	if f.wh == nil {
		return nil, errors.New("not configured")
	}
	return f.wh, nil
}

func (f *fakeRepo) ListServicesByIDs(ctx context.Context, businessID uint, ids []uint) ([]models.Service, error) {
	f.calls++
	var out []models.Service
	for _, id := range ids {
		for _, svc := range f.services {
			if svc.ID == id {
				out = append(out, svc)
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) GetStaff(ctx context.Context, businessID uint, staffID uint) (*models.Staff, error) {
	f.calls++
	for i := range f.staff {
		if f.staff[i].ID == staffID {
			return &f.staff[i], nil
		}
	}
	return nil, httperr.ErrBusiness("staff_not_found")
}

func (f *fakeRepo) ListActiveStaff(ctx context.Context, businessID uint) ([]models.Staff, error) {
	f.calls++
	var out []models.Staff
	for _, st := range f.staff {
		if st.Active {
			out = append(out, st)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetOrCreateCustomer(ctx context.Context, businessID uint, customer models.Customer) (*models.Customer, error) {
	f.calls++
	customer.ID = 7
	customer.BusinessID = businessID
	return &customer, nil
}

func (f *fakeRepo) InsertAppointmentGroup(ctx context.Context, rows []models.Appointment) error {
	f.calls++
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, rows)
	return nil
}

func (f *fakeRepo) ListAppointments(ctx context.Context, businessID uint, filter scheduling.AppointmentFilter) ([]models.Appointment, error) {
	f.calls++
	return f.group, nil
}

func (f *fakeRepo) ListStaffAppointmentsForDate(ctx context.Context, staffID uint, date string, statuses []scheduling.Status) ([]models.Appointment, error) {
	f.calls++
	if f.staffDayErr != nil {
		return nil, f.staffDayErr
	}
	return f.staffDay, nil
}

func (f *fakeRepo) GetGroup(ctx context.Context, businessID uint, groupID string) ([]models.Appointment, error) {
	f.calls++
	if len(f.group) == 0 {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return f.group, nil
}

func (f *fakeRepo) UpdateGroupStatus(ctx context.Context, businessID uint, groupID string, status scheduling.Status, at time.Time) error {
	f.calls++
	f.updates = append(f.updates, status)
	return nil
}

func (f *fakeRepo) CreatePayment(ctx context.Context, payment *models.Payment) error {
	f.calls++
	payment.ID = uint(len(f.payments) + 1)
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakeRepo) ListGroupPayments(ctx context.Context, businessID uint, groupID string) ([]models.Payment, error) {
	f.calls++
	return nil, nil
}

var _ scheduling.Repository = (*fakeRepo)(nil)

// ======================================================
// FIXTURES
// ======================================================

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		biz: &models.Business{
			ID:                1,
			Name:              "Studio Ipanema",
			Slug:              "studio-ipanema",
			Phone:             "+5521999990000",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 120,
		},
		wh: &models.WorkingHours{StartTime: "09:00", EndTime: "18:00"},
		services: []models.Service{
			{ID: 10, BusinessID: 1, Name: "Corte", DurationMin: 45, Price: 150, Active: true},
			{ID: 11, BusinessID: 1, Name: "Escova", DurationMin: 30, Price: 100, Active: true},
		},
		staff: []models.Staff{
			{ID: 3, BusinessID: 1, Name: "Bia", Active: true},
			{ID: 4, BusinessID: 1, Name: "Carla", Active: true},
		},
	}
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		ServiceIDs: []uint{10, 11},
		Date:       "2030-05-20", // bem no futuro: passa a antecedência mínima
		StartTime:  "09:00",
		Customer: CustomerInput{
			FirstName: "Ana",
			LastName:  "Souza",
			Phone:     "21988887777",
		},
	}
}

func tn() tenant.Context { return tenant.New(1) }

// ======================================================
// CREATE BOOKING
// ======================================================

func TestCreateBooking_TwoServicesOneGroup(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil, func(n int) int { return 0 })

	result, err := uc.Execute(context.Background(), tn(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, result.GroupID)
	assert.Equal(t, "10:15", result.EndTime) // 45 + 30 min
	assert.Equal(t, 250.0, result.TotalPrice)
	assert.Equal(t, uint(7), result.CustomerID)

	require.Len(t, repo.inserted, 1)
	rows := repo.inserted[0]
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Equal(t, result.GroupID, row.AppointmentGroupID)
		assert.Equal(t, "2030-05-20", row.AppointmentDate)
		assert.Equal(t, "09:00", row.StartTime)
		assert.Equal(t, "10:15", row.EndTime)
		assert.Equal(t, "scheduled", row.Status)
	}
	assert.Equal(t, 150.0, rows[0].TotalPrice)
	assert.Equal(t, 100.0, rows[1].TotalPrice)
}

func TestCreateBooking_ValidationShortCircuits(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
		code   string
	}{
		{"sem serviços", func(in *CreateBookingInput) { in.ServiceIDs = nil }, "missing_services"},
		{"sem data", func(in *CreateBookingInput) { in.Date = "" }, "missing_date"},
		{"sem horário", func(in *CreateBookingInput) { in.StartTime = "" }, "missing_time"},
		{"horário inválido", func(in *CreateBookingInput) { in.StartTime = "25:00" }, "invalid_time"},
		{"sem telefone", func(in *CreateBookingInput) { in.Customer.Phone = "" }, "missing_customer_fields"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFakeRepo()
			uc := NewCreateBooking(repo, nil, nil, nil, nil)

			in := validInput()
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), tn(), in)
			require.True(t, httperr.IsBusiness(err, tc.code), "got %v", err)
			assert.Zero(t, repo.calls, "validação deve barrar antes de qualquer I/O")
		})
	}
}

func TestCreateBooking_TooSoon(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil, nil)

	in := validInput()
	in.Date = "2020-01-01" // passado

	_, err := uc.Execute(context.Background(), tn(), in)
	require.True(t, httperr.IsBusiness(err, "too_soon"), "got %v", err)
	assert.Empty(t, repo.inserted)
}

func TestCreateBooking_ClosedDayRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.wh = &models.WorkingHours{Closed: true}
	uc := NewCreateBooking(repo, nil, nil, nil, nil)

	_, err := uc.Execute(context.Background(), tn(), validInput())
	require.True(t, httperr.IsBusiness(err, "business_closed"), "got %v", err)
	assert.Empty(t, repo.inserted)

	repo.wh = nil // dia sem configuração conta como fechado
	_, err = uc.Execute(context.Background(), tn(), validInput())
	require.True(t, httperr.IsBusiness(err, "business_closed"), "got %v", err)
}

func TestCreateBooking_UnknownServiceRejectsWholeGroup(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil, nil)

	in := validInput()
	in.ServiceIDs = []uint{10, 999}

	_, err := uc.Execute(context.Background(), tn(), in)
	require.True(t, httperr.IsBusiness(err, "service_not_found"), "got %v", err)
	assert.Empty(t, repo.inserted)
}

func TestCreateBooking_DuplicateServiceIDsCollapsed(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil, func(n int) int { return 0 })

	in := validInput()
	in.ServiceIDs = []uint{10, 10, 11}

	result, err := uc.Execute(context.Background(), tn(), in)
	require.NoError(t, err)
	assert.Equal(t, 250.0, result.TotalPrice)
	require.Len(t, repo.inserted, 1)
	assert.Len(t, repo.inserted[0], 2)
}

func TestCreateBooking_PicksRandomActiveStaff(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil, func(n int) int { return 1 })

	result, err := uc.Execute(context.Background(), tn(), validInput())
	require.NoError(t, err)
	require.NotNil(t, result.StaffID)
	assert.Equal(t, uint(4), *result.StaffID) // segundo da lista de ativos
}

func TestCreateBooking_ExplicitStaffWins(t *testing.T) {
	repo := newFakeRepo()
	uc := NewCreateBooking(repo, nil, nil, nil, func(n int) int { t.Fatal("não deve sortear"); return 0 })

	in := validInput()
	id := uint(3)
	in.StaffID = &id

	result, err := uc.Execute(context.Background(), tn(), in)
	require.NoError(t, err)
	require.NotNil(t, result.StaffID)
	assert.Equal(t, uint(3), *result.StaffID)
}

func TestCreateBooking_InactiveExplicitStaffRejected(t *testing.T) {
	repo := newFakeRepo()
	repo.staff[0].Active = false
	uc := NewCreateBooking(repo, nil, nil, nil, nil)

	in := validInput()
	id := uint(3)
	in.StaffID = &id

	_, err := uc.Execute(context.Background(), tn(), in)
	require.True(t, httperr.IsBusiness(err, "staff_not_found"), "got %v", err)
}

func TestCreateBooking_NoStaffConfigured(t *testing.T) {
	repo := newFakeRepo()
	repo.staff = nil
	uc := NewCreateBooking(repo, nil, nil, nil, nil)

	result, err := uc.Execute(context.Background(), tn(), validInput())
	require.NoError(t, err)
	assert.Nil(t, result.StaffID)
}

func TestCreateBooking_SlotConflictPropagates(t *testing.T) {
	repo := newFakeRepo()
	repo.insertErr = httperr.ErrBusiness("slot_conflict")
	uc := NewCreateBooking(repo, nil, nil, nil, func(n int) int { return 0 })

	_, err := uc.Execute(context.Background(), tn(), validInput())
	require.True(t, httperr.IsBusiness(err, "slot_conflict"), "got %v", err)
}

// ======================================================
// COMPUTE AVAILABILITY
// ======================================================

func TestComputeAvailability_AnyStaffShowsAllFree(t *testing.T) {
	repo := newFakeRepo()
	uc := NewComputeAvailability(repo, nil)

	av := uc.Execute(context.Background(), tn(), "2030-05-20", nil)
	require.NotNil(t, av)
	assert.Len(t, av.AllSlots, 18) // 09:00..17:30
	assert.Empty(t, av.OccupiedSlots)
}

func TestComputeAvailability_MarksStaffOccupancy(t *testing.T) {
	repo := newFakeRepo()
	repo.staffDay = []models.Appointment{
		{StartTime: "10:00", EndTime: "10:45", Status: "scheduled"},
	}
	uc := NewComputeAvailability(repo, nil)

	id := uint(3)
	av := uc.Execute(context.Background(), tn(), "2030-05-20", &id)
	require.NotNil(t, av)
	assert.Equal(t, []string{"10:00", "10:30"}, av.OccupiedSlots)
}

func TestComputeAvailability_DegradesToEmpty(t *testing.T) {
	repo := newFakeRepo()
	uc := NewComputeAvailability(repo, nil)

	// data inválida
	av := uc.Execute(context.Background(), tn(), "20/05/2030", nil)
	require.NotNil(t, av)
	assert.Empty(t, av.AllSlots)
	assert.Empty(t, av.OccupiedSlots)

	// dia sem expediente configurado
	repo.wh = nil
	av = uc.Execute(context.Background(), tn(), "2030-05-20", nil)
	assert.Empty(t, av.AllSlots)

	// falha lendo a agenda do profissional
	repo.wh = &models.WorkingHours{StartTime: "09:00", EndTime: "18:00"}
	repo.staffDayErr = errors.New("db down")
	id := uint(3)
	av = uc.Execute(context.Background(), tn(), "2030-05-20", &id)
	assert.Empty(t, av.AllSlots)
	assert.Empty(t, av.OccupiedSlots)
}

// ======================================================
// TRANSITION STATUS
// ======================================================

func groupRows(status string) []models.Appointment {
	staffID := uint(3)
	return []models.Appointment{
		{ID: 1, AppointmentGroupID: "g1", AppointmentDate: "2030-05-20", StartTime: "09:00", EndTime: "10:15", Status: status, StaffID: &staffID, TotalPrice: 150},
		{ID: 2, AppointmentGroupID: "g1", AppointmentDate: "2030-05-20", StartTime: "09:00", EndTime: "10:15", Status: status, StaffID: &staffID, TotalPrice: 100},
	}
}

func TestTransitionStatus_CompletionPromptsPayment(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("confirmed")
	uc := NewTransitionStatus(repo, nil, nil)

	result, err := uc.Execute(context.Background(), tn(), nil, "g1", scheduling.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, scheduling.StatusCompleted, result.Status)
	assert.True(t, result.PaymentDue)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, scheduling.StatusCompleted, repo.updates[0])
}

func TestTransitionStatus_InvalidTransition(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("cancelled")
	uc := NewTransitionStatus(repo, nil, nil)

	_, err := uc.Execute(context.Background(), tn(), nil, "g1", scheduling.StatusConfirmed)
	require.True(t, httperr.IsBusiness(err, "invalid_transition"), "got %v", err)
	assert.Empty(t, repo.updates)
}

func TestTransitionStatus_UnknownStatusRejectedBeforeRead(t *testing.T) {
	repo := newFakeRepo()
	uc := NewTransitionStatus(repo, nil, nil)

	_, err := uc.Execute(context.Background(), tn(), nil, "g1", scheduling.Status("in_progress"))
	require.True(t, httperr.IsBusiness(err, "invalid_status"), "got %v", err)
	assert.Zero(t, repo.calls)
}

func TestTransitionStatus_UndoCompletion(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("completed")
	uc := NewTransitionStatus(repo, nil, nil)

	result, err := uc.Execute(context.Background(), tn(), nil, "g1", scheduling.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, scheduling.StatusConfirmed, result.Status)
	assert.False(t, result.PaymentDue)
}

func TestTransitionStatus_GroupNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewTransitionStatus(repo, nil, nil)

	_, err := uc.Execute(context.Background(), tn(), nil, "nope", scheduling.StatusConfirmed)
	require.True(t, httperr.IsBusiness(err, "appointment_not_found"), "got %v", err)
}

// ======================================================
// RECORD PAYMENT
// ======================================================

type fakeLinks struct {
	link string
	err  error
}

func (f *fakeLinks) CreatePaymentLink(ctx context.Context, groupID string, description string, amount float64) (string, error) {
	return f.link, f.err
}

func TestRecordPayment_CashDefaultsToGroupTotal(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("completed")
	uc := NewRecordPayment(repo, nil, nil)

	payment, err := uc.Execute(context.Background(), tn(), nil, RecordPaymentInput{
		GroupID: "g1",
		Method:  models.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, 250.0, payment.Amount)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	assert.Equal(t, uint(1), payment.AppointmentID) // ancora na primeira linha
}

func TestRecordPayment_RequiresCompletedGroup(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("confirmed")
	uc := NewRecordPayment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), tn(), nil, RecordPaymentInput{
		GroupID: "g1",
		Method:  models.PaymentMethodCash,
	})
	require.True(t, httperr.IsBusiness(err, "group_not_completed"), "got %v", err)
	assert.Empty(t, repo.payments)
}

func TestRecordPayment_CreditNeedsExpectedDate(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("completed")
	uc := NewRecordPayment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), tn(), nil, RecordPaymentInput{
		GroupID: "g1",
		Method:  models.PaymentMethodCredit,
	})
	require.True(t, httperr.IsBusiness(err, "missing_expected_payment_date"), "got %v", err)

	due := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
	payment, err := uc.Execute(context.Background(), tn(), nil, RecordPaymentInput{
		GroupID:             "g1",
		Method:              models.PaymentMethodCredit,
		ExpectedPaymentDate: &due,
	})
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
}

func TestRecordPayment_CardAttachesLink(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("completed")
	uc := NewRecordPayment(repo, nil, &fakeLinks{link: "https://pay.example/abc"})

	payment, err := uc.Execute(context.Background(), tn(), nil, RecordPaymentInput{
		GroupID: "g1",
		Method:  models.PaymentMethodCard,
		Amount:  200,
	})
	require.NoError(t, err)
	assert.Equal(t, 200.0, payment.Amount)
	assert.Equal(t, "https://pay.example/abc", payment.ProviderRef)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
}

func TestRecordPayment_LinkFailureStillRecords(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("completed")
	uc := NewRecordPayment(repo, nil, &fakeLinks{err: errors.New("gateway down")})

	payment, err := uc.Execute(context.Background(), tn(), nil, RecordPaymentInput{
		GroupID: "g1",
		Method:  models.PaymentMethodCard,
	})
	require.NoError(t, err)
	assert.Empty(t, payment.ProviderRef)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestRecordPayment_InvalidMethod(t *testing.T) {
	repo := newFakeRepo()
	uc := NewRecordPayment(repo, nil, nil)

	_, err := uc.Execute(context.Background(), tn(), nil, RecordPaymentInput{
		GroupID: "g1",
		Method:  "pix",
	})
	require.True(t, httperr.IsBusiness(err, "invalid_payment_method"), "got %v", err)
	assert.Zero(t, repo.calls)
}

// ======================================================
// LIST GROUPED
// ======================================================

func TestListGroupedAppointments_Recombines(t *testing.T) {
	repo := newFakeRepo()
	repo.group = groupRows("scheduled")
	uc := NewListGroupedAppointments(repo)

	groups, err := uc.Execute(context.Background(), tn(), scheduling.AppointmentFilter{Date: "2030-05-20"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "g1", groups[0].GroupID)
	assert.Equal(t, 250.0, groups[0].TotalPrice)
	assert.Len(t, groups[0].AppointmentIDs, 2)
}
