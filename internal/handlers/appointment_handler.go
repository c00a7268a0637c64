package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/httpresp"
	"github.com/salonkit/salon-scheduler/internal/middleware"
	"github.com/salonkit/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *booking.CreateBooking
	availabilityUC *booking.ComputeAvailability
	listUC         *booking.ListGroupedAppointments
	transitionUC   *booking.TransitionStatus
	paymentUC      *booking.RecordPayment
}

func NewAppointmentHandler(
	createUC *booking.CreateBooking,
	availabilityUC *booking.ComputeAvailability,
	listUC *booking.ListGroupedAppointments,
	transitionUC *booking.TransitionStatus,
	paymentUC *booking.RecordPayment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		availabilityUC: availabilityUC,
		listUC:         listUC,
		transitionUC:   transitionUC,
		paymentUC:      paymentUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceIDs []uint `json:"service_ids" binding:"required"`
	Date       string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime  string `json:"start_time" binding:"required"`
	StaffID    *uint  `json:"staff_id"`

	CustomerFirstName string `json:"customer_first_name" binding:"required"`
	CustomerLastName  string `json:"customer_last_name" binding:"required"`
	CustomerPhone     string `json:"customer_phone" binding:"required"`
	CustomerEmail     string `json:"customer_email"`

	Notes string `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type RecordPaymentRequest struct {
	Method              string  `json:"payment_method" binding:"required"`
	Amount              float64 `json:"amount"`
	ExpectedPaymentDate *string `json:"expected_payment_date"` // YYYY-MM-DD
	AppointmentID       *uint   `json:"appointment_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), tn, booking.CreateBookingInput{
		ServiceIDs: req.ServiceIDs,
		Date:       req.Date,
		StartTime:  req.StartTime,
		StaffID:    req.StaffID,
		Customer: booking.CustomerInput{
			FirstName: req.CustomerFirstName,
			LastName:  req.CustomerLastName,
			Phone:     req.CustomerPhone,
			Email:     req.CustomerEmail,
		},
		Notes: req.Notes,
	})
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var staffID *uint
	if s := c.Query("staff_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
			return
		}
		v := uint(id)
		staffID = &v
	}

	av := h.availabilityUC.Execute(c.Request.Context(), tn, date, staffID)
	c.JSON(http.StatusOK, gin.H{
		"date":           date,
		"all_slots":      av.AllSlots,
		"occupied_slots": av.OccupiedSlots,
	})
}

// ======================================================
// LIST (GROUPED)
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	filter := scheduling.AppointmentFilter{Date: date}

	if s := c.Query("staff_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_staff_id", "Profissional inválido.")
			return
		}
		v := uint(id)
		filter.StaffID = &v
	}

	groups, err := h.listUC.Execute(c.Request.Context(), tn, filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, groups)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	tn := middleware.TenantFrom(c)

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	groups, err := h.listUC.Execute(c.Request.Context(), tn, scheduling.AppointmentFilter{
		DateFrom: first.Format("2006-01-02"),
		DateTo:   last.Format("2006-01-02"),
	})
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": groups,
	})
}

// ======================================================
// STATUS TRANSITION
// ======================================================

func (h *AppointmentHandler) Transition(c *gin.Context) {
	tn := middleware.TenantFrom(c)
	groupID := c.Param("groupId")

	var req TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.transitionUC.Execute(
		c.Request.Context(),
		tn,
		middleware.UserIDFrom(c),
		groupID,
		scheduling.Status(req.Status),
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ======================================================
// PAYMENT
// ======================================================

func (h *AppointmentHandler) RecordPayment(c *gin.Context) {
	tn := middleware.TenantFrom(c)
	groupID := c.Param("groupId")

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var expected *time.Time
	if req.ExpectedPaymentDate != nil {
		d, err := time.Parse("2006-01-02", *req.ExpectedPaymentDate)
		if err != nil {
			httperr.BadRequest(c, "invalid_expected_payment_date", "Data prevista inválida.")
			return
		}
		expected = &d
	}

	payment, err := h.paymentUC.Execute(
		c.Request.Context(),
		tn,
		middleware.UserIDFrom(c),
		booking.RecordPaymentInput{
			GroupID:             groupID,
			Method:              req.Method,
			Amount:              req.Amount,
			ExpectedPaymentDate: expected,
			AppointmentID:       req.AppointmentID,
		},
	)
	if err != nil {
		mapBookingError(c, err)
		return
	}

	httpresp.Created(c, payment)
}

// ======================================================
// ERROR MAPPING
// ======================================================

func mapBookingError(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "slot_conflict"):
		httperr.Conflict(c, "slot_conflict", "Horário não está mais disponível, escolha outro.")
	case httperr.IsBusiness(err, "invalid_transition"):
		httperr.BadRequest(c, "invalid_transition", "Mudança de status não permitida.")
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")
	case httperr.IsBusiness(err, "staff_not_found"):
		httperr.BadRequest(c, "staff_not_found", "Profissional não encontrado.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Horário inválido.")
	case httperr.IsBusiness(err, "business_closed"):
		httperr.BadRequest(c, "business_closed", "O salão não atende nesse dia.")
	default:
		var be httperr.BusinessError
		if errors.As(err, &be) {
			httperr.BadRequest(c, be.Code, "Dados inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
