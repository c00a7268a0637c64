package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

// LinkGenerator cria um link de pagamento para cobranças no cartão.
// Sem gateway configurado o pagamento é registrado sem link.
type LinkGenerator interface {
	CreatePaymentLink(ctx context.Context, groupID string, description string, amount float64) (string, error)
}

type MercadoPago struct {
	prefs preference.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		prefs: preference.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) CreatePaymentLink(
	ctx context.Context,
	groupID string,
	description string,
	amount float64,
) (string, error) {

	req := preference.Request{
		ExternalReference: groupID,
		Items: []preference.ItemRequest{
			{
				Title:     description,
				Quantity:  1,
				UnitPrice: amount,
			},
		},
	}

	resp, err := m.prefs.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("mercadopago preference: %w", err)
	}

	return resp.InitPoint, nil
}
