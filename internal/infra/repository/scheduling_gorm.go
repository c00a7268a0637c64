package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/models"
	"github.com/salonkit/salon-scheduler/internal/validators"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *SchedulingGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).First(&biz, id).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

func (r *SchedulingGormRepository) GetBusinessBySlug(
	ctx context.Context,
	slug string,
) (*models.Business, error) {

	var biz models.Business
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&biz).Error; err != nil {
		return nil, err
	}
	return &biz, nil
}

// --------------------------------------------------
// Working hours
// --------------------------------------------------

func (r *SchedulingGormRepository) GetWorkingHours(
	ctx context.Context,
	businessID uint,
	dayOfWeek int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND day_of_week = ?", businessID, dayOfWeek).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

// --------------------------------------------------
// Service / Staff
// --------------------------------------------------

func (r *SchedulingGormRepository) ListServicesByIDs(
	ctx context.Context,
	businessID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND id IN ? AND active = true", businessID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *SchedulingGormRepository) GetStaff(
	ctx context.Context,
	businessID uint,
	staffID uint,
) (*models.Staff, error) {

	var st models.Staff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND business_id = ?", staffID, businessID).
		First(&st).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func (r *SchedulingGormRepository) ListActiveStaff(
	ctx context.Context,
	businessID uint,
) ([]models.Staff, error) {

	var staff []models.Staff
	if err := r.db.WithContext(ctx).
		Where("business_id = ? AND active = true", businessID).
		Order("id ASC").
		Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *SchedulingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	businessID uint,
	customer models.Customer,
) (*models.Customer, error) {

	phone := validators.NormalizePhone(customer.Phone)

	var existing models.Customer
	err := r.db.WithContext(ctx).
		Where("business_id = ? AND phone = ?", businessID, phone).
		First(&existing).Error

	if err == nil {
		return &existing, nil
	}

	customer.BusinessID = businessID
	customer.Phone = phone

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

// InsertAppointmentGroup fecha a janela entre "mostrei o slot livre" e
// "gravei a reserva": a varredura de conflito roda com lock de linha na
// mesma transação do insert, então dois clientes disputando o mesmo
// horário serializam aqui e o segundo recebe slot_conflict.
func (r *SchedulingGormRepository) InsertAppointmentGroup(
	ctx context.Context,
	rows []models.Appointment,
) error {

	if len(rows) == 0 {
		return httperr.ErrBusiness("empty_group")
	}

	head := rows[0]

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if head.StaffID != nil {
			var count int64
			if err := tx.
				Model(&models.Appointment{}).
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(
					"staff_id = ? AND appointment_date = ? AND status IN ? AND start_time < ? AND end_time > ?",
					*head.StaffID,
					head.AppointmentDate,
					[]string{string(scheduling.StatusScheduled), string(scheduling.StatusConfirmed)},
					head.EndTime,
					head.StartTime,
				).
				Count(&count).Error; err != nil {
				return err
			}

			if count > 0 {
				return httperr.ErrBusiness("slot_conflict")
			}
		}

		// todas as linhas do grupo, ou nenhuma
		if err := tx.Create(&rows).Error; err != nil {
			if httperr.IsExclusionConflict(err) {
				return httperr.ErrBusiness("slot_conflict")
			}
			return err
		}

		return nil
	})
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *SchedulingGormRepository) ListAppointments(
	ctx context.Context,
	businessID uint,
	filter scheduling.AppointmentFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Preload("Payments").
		Where("business_id = ?", businessID)

	if filter.StaffID != nil {
		q = q.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.Date != "" {
		q = q.Where("appointment_date = ?", filter.Date)
	}
	if filter.DateFrom != "" {
		q = q.Where("appointment_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("appointment_date <= ?", filter.DateTo)
	}
	if len(filter.StatusIn) > 0 {
		q = q.Where("status IN ?", statusStrings(filter.StatusIn))
	}

	var rows []models.Appointment
	if err := q.
		Order("appointment_date ASC, start_time ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *SchedulingGormRepository) ListStaffAppointmentsForDate(
	ctx context.Context,
	staffID uint,
	date string,
	statuses []scheduling.Status,
) ([]models.Appointment, error) {

	var rows []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "start_time", "end_time", "status").
		Where(
			"staff_id = ? AND appointment_date = ? AND status IN ?",
			staffID, date, statusStrings(statuses),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (r *SchedulingGormRepository) GetGroup(
	ctx context.Context,
	businessID uint,
	groupID string,
) ([]models.Appointment, error) {

	var rows []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Preload("Payments").
		Where("business_id = ? AND appointment_group_id = ?", businessID, groupID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	return rows, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *SchedulingGormRepository) UpdateGroupStatus(
	ctx context.Context,
	businessID uint,
	groupID string,
	status scheduling.Status,
	at time.Time,
) error {

	updates := map[string]any{
		"status": string(status),
	}

	switch status {
	case scheduling.StatusCompleted:
		updates["completed_at"] = at
	case scheduling.StatusCancelled, scheduling.StatusNoShow:
		updates["cancelled_at"] = at
	case scheduling.StatusConfirmed:
		// desfazer conclusão limpa o carimbo
		updates["completed_at"] = nil
	}

	result := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("business_id = ? AND appointment_group_id = ?", businessID, groupID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return httperr.ErrBusiness("appointment_not_found")
	}

	return nil
}

// --------------------------------------------------
// Payment
// --------------------------------------------------

func (r *SchedulingGormRepository) CreatePayment(
	ctx context.Context,
	payment *models.Payment,
) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *SchedulingGormRepository) ListGroupPayments(
	ctx context.Context,
	businessID uint,
	groupID string,
) ([]models.Payment, error) {

	var payments []models.Payment
	if err := r.db.WithContext(ctx).
		Joins("JOIN appointments ON appointments.id = payments.appointment_id").
		Where(
			"appointments.business_id = ? AND appointments.appointment_group_id = ?",
			businessID, groupID,
		).
		Find(&payments).Error; err != nil {
		return nil, err
	}

	return payments, nil
}

func statusStrings(in []scheduling.Status) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

// Compile-time check
var _ scheduling.Repository = (*SchedulingGormRepository)(nil)
