package booking

import (
	"context"
	"log"
	"time"

	"github.com/salonkit/salon-scheduler/internal/audit"
	"github.com/salonkit/salon-scheduler/internal/domain/scheduling"
	"github.com/salonkit/salon-scheduler/internal/httperr"
	"github.com/salonkit/salon-scheduler/internal/models"
	"github.com/salonkit/salon-scheduler/internal/payments"
	"github.com/salonkit/salon-scheduler/internal/tenant"
)

type RecordPaymentInput struct {
	GroupID string
	Method  string // cash | card | credit

	// Zero → usa o total do grupo
	Amount float64

	// Obrigatório para crédito/fiado
	ExpectedPaymentDate *time.Time

	// Opcional: registra contra uma linha específica em vez da
	// primeira linha do grupo
	AppointmentID *uint
}

type RecordPayment struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
	links payments.LinkGenerator
}

func NewRecordPayment(
	repo scheduling.Repository,
	audit *audit.Dispatcher,
	links payments.LinkGenerator,
) *RecordPayment {
	return &RecordPayment{
		repo:  repo,
		audit: audit,
		links: links,
	}
}

// Execute registra o pagamento de um grupo concluído. Grupo concluído
// sem pagamento é estado válido; este fluxo pode ser reaberto depois
// sem mudar o status.
func (uc *RecordPayment) Execute(
	ctx context.Context,
	tn tenant.Context,
	userID *uint,
	in RecordPaymentInput,
) (*models.Payment, error) {

	switch in.Method {
	case models.PaymentMethodCash, models.PaymentMethodCard, models.PaymentMethodCredit:
	default:
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	if in.Method == models.PaymentMethodCredit && in.ExpectedPaymentDate == nil {
		return nil, httperr.ErrBusiness("missing_expected_payment_date")
	}

	rows, err := uc.repo.GetGroup(ctx, tn.BusinessID, in.GroupID)
	if err != nil {
		return nil, err
	}

	if scheduling.Status(rows[0].Status) != scheduling.StatusCompleted {
		return nil, httperr.ErrBusiness("group_not_completed")
	}

	// por padrão o pagamento do grupo ancora na primeira linha
	target := rows[0]
	if in.AppointmentID != nil {
		found := false
		for _, row := range rows {
			if row.ID == *in.AppointmentID {
				target = row
				found = true
				break
			}
		}
		if !found {
			return nil, httperr.ErrBusiness("appointment_not_found")
		}
	}

	amount := in.Amount
	if amount <= 0 {
		amount = 0
		for _, row := range rows {
			amount += row.TotalPrice
		}
	}

	status := models.PaymentStatusCompleted
	if in.Method == models.PaymentMethodCredit {
		status = models.PaymentStatusPending
	}

	payment := &models.Payment{
		BusinessID:          tn.BusinessID,
		AppointmentID:       target.ID,
		Amount:              amount,
		Method:              in.Method,
		Status:              status,
		ExpectedPaymentDate: in.ExpectedPaymentDate,
	}

	// link de cartão é cortesia: falha do gateway não impede o registro
	if in.Method == models.PaymentMethodCard && uc.links != nil {
		link, err := uc.links.CreatePaymentLink(ctx, in.GroupID, "Atendimento "+target.AppointmentDate, amount)
		if err != nil {
			log.Printf("payment link for group %s failed: %v", in.GroupID, err)
		} else {
			payment.ProviderRef = link
			payment.Status = models.PaymentStatusPending
		}
	}

	if err := uc.repo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: tn.BusinessID,
			UserID:     userID,
			Action:     "payment_recorded",
			Entity:     "payment",
			EntityID:   &payment.ID,
			Metadata: map[string]any{
				"group_id": in.GroupID,
				"method":   in.Method,
				"amount":   amount,
			},
		})
	}

	return payment, nil
}
