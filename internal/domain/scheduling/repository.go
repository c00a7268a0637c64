package scheduling

import (
	"context"
	"time"

	"github.com/salonkit/salon-scheduler/internal/models"
)

// AppointmentFilter restringe a listagem de agendamentos de um salão.
// Datas no formato "2006-01-02"; janela [DateFrom, DateTo] inclusiva.
type AppointmentFilter struct {
	StaffID  *uint
	Date     string
	DateFrom string
	DateTo   string
	StatusIn []Status
}

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	GetBusinessBySlug(
		ctx context.Context,
		slug string,
	) (*models.Business, error)

	// -------- Working hours --------
	GetWorkingHours(
		ctx context.Context,
		businessID uint,
		dayOfWeek int,
	) (*models.WorkingHours, error)

	// -------- Service / Staff --------
	ListServicesByIDs(
		ctx context.Context,
		businessID uint,
		ids []uint,
	) ([]models.Service, error)

	GetStaff(
		ctx context.Context,
		businessID uint,
		staffID uint,
	) (*models.Staff, error)

	ListActiveStaff(
		ctx context.Context,
		businessID uint,
	) ([]models.Staff, error)

	// -------- Customer --------
	GetOrCreateCustomer(
		ctx context.Context,
		businessID uint,
		customer models.Customer,
	) (*models.Customer, error)

	// -------- Appointment (create) --------
	// InsertAppointmentGroup grava todas as linhas do grupo em uma única
	// transação, com verificação serializada de conflito de horário
	// (check-and-insert com lock). Ou todas as linhas existem, ou nenhuma.
	// Horário perdido para outro cliente → erro de negócio "slot_conflict".
	InsertAppointmentGroup(
		ctx context.Context,
		rows []models.Appointment,
	) error

	// -------- Appointment (read) --------
	ListAppointments(
		ctx context.Context,
		businessID uint,
		filter AppointmentFilter,
	) ([]models.Appointment, error)

	ListStaffAppointmentsForDate(
		ctx context.Context,
		staffID uint,
		date string,
		statuses []Status,
	) ([]models.Appointment, error)

	GetGroup(
		ctx context.Context,
		businessID uint,
		groupID string,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	// UpdateGroupStatus aplica o novo status a TODAS as linhas do grupo
	// em um único update, nunca a um subconjunto.
	UpdateGroupStatus(
		ctx context.Context,
		businessID uint,
		groupID string,
		status Status,
		at time.Time,
	) error

	// -------- Payment --------
	CreatePayment(
		ctx context.Context,
		payment *models.Payment,
	) error

	ListGroupPayments(
		ctx context.Context,
		businessID uint,
		groupID string,
	) ([]models.Payment, error)
}
