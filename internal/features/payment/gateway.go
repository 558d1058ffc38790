package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/braintree-go/braintree-go"
	"github.com/craftandcart/storefront/internal/config"
	"github.com/shopspring/decimal"
)

// GatewayError wraps a failure reported by the external payment processor.
// It is propagated with the processor's raw message; no token or sale
// result is ever synthesized locally.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// BraintreeGateway talks to the Braintree processor. Sales are submitted
// for immediate settlement.
type BraintreeGateway struct {
	bt *braintree.Braintree
}

func NewBraintreeGateway(cfg config.BraintreeConfig) *BraintreeGateway {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	return &BraintreeGateway{
		bt: braintree.New(
			env,
			cfg.MerchantID,
			cfg.PublicKey,
			cfg.PrivateKey,
		),
	}
}

func (g *BraintreeGateway) GenerateClientToken(ctx context.Context) (string, error) {
	token, err := g.bt.ClientToken().Generate(ctx)
	if err != nil {
		return "", &GatewayError{Err: err}
	}

	return token, nil
}

// SubmitSale charges amount against the nonce with immediate settlement
// and returns the processor's transaction record. A timeout is a failure;
// success is never inferred from a hung call.
func (g *BraintreeGateway) SubmitSale(ctx context.Context, amount decimal.Decimal, nonce string) (json.RawMessage, error) {
	cents := amount.Round(2).Shift(2).IntPart()

	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             braintree.NewDecimal(cents, 2),
		PaymentMethodNonce: nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		return nil, &GatewayError{Err: err}
	}

	record, err := json.Marshal(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction record: %w", err)
	}

	return record, nil
}
