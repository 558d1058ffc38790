package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The checkout intent is a write-ahead record keyed by the single-use
// nonce. It is written before the processor is called, so a settlement
// whose order write never landed can always be finished by a retry
// instead of charging the buyer a second time.
type intentState string

const (
	intentPending   intentState = "pending"
	intentSettled   intentState = "settled"
	intentCompleted intentState = "completed"
	intentFailed    intentState = "failed"
)

type checkoutIntent struct {
	Nonce     string
	BuyerID   uuid.UUID
	Cart      []CartItem
	Amount    decimal.Decimal
	State     intentState
	Payment   json.RawMessage
	OrderID   uuid.UUID // zero until completed
	CreatedAt time.Time
}

type IntentStore struct {
	db *sql.DB
}

func NewIntentStore(db *sql.DB) *IntentStore {
	return &IntentStore{
		db: db,
	}
}

// insertPending claims the nonce. A false return means another submission
// already holds it.
func (s *IntentStore) insertPending(ctx context.Context, intent *checkoutIntent) (bool, error) {
	cart, err := json.Marshal(intent.Cart)
	if err != nil {
		return false, fmt.Errorf(
			"failed to marshal cart in intent store: %w",
			err,
		)
	}

	query := `INSERT INTO checkout_intents(nonce, buyer_id, cart, amount, state, created_at)
		VALUES($1, $2, $3, $4, $5, $6)
		ON CONFLICT (nonce) DO NOTHING`

	res, err := s.db.ExecContext(
		ctx,
		query,
		intent.Nonce,
		intent.BuyerID,
		cart,
		intent.Amount,
		intentPending,
		intent.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf(
			"failed to insert checkout intent in intent store: %w",
			err,
		)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf(
			"failed to read rows affected in intent store: %w",
			err,
		)
	}

	return affected > 0, nil
}

func (s *IntentStore) findByNonce(ctx context.Context, nonce string) (*checkoutIntent, error) {
	query := `SELECT nonce, buyer_id, cart, amount, state, payment, order_id, created_at
		FROM checkout_intents WHERE nonce = $1`

	var intent checkoutIntent
	var cart []byte
	var payment []byte
	var orderID uuid.NullUUID

	err := s.db.QueryRowContext(ctx, query, nonce).Scan(
		&intent.Nonce,
		&intent.BuyerID,
		&cart,
		&intent.Amount,
		&intent.State,
		&payment,
		&orderID,
		&intent.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf(
			"failed to scan checkout intent in intent store: %w",
			err,
		)
	}

	if err := json.Unmarshal(cart, &intent.Cart); err != nil {
		return nil, fmt.Errorf(
			"failed to unmarshal cart in intent store: %w",
			err,
		)
	}
	intent.Payment = json.RawMessage(payment)
	intent.OrderID = orderID.UUID

	return &intent, nil
}

func (s *IntentStore) markSettled(ctx context.Context, nonce string, payment json.RawMessage) error {
	query := `UPDATE checkout_intents SET state = $1, payment = $2, updated_at = now() WHERE nonce = $3`
	return s.exec(ctx, query, intentSettled, []byte(payment), nonce)
}

func (s *IntentStore) markCompleted(ctx context.Context, nonce string, orderID uuid.UUID) error {
	query := `UPDATE checkout_intents SET state = $1, order_id = $2, updated_at = now() WHERE nonce = $3`
	return s.exec(ctx, query, intentCompleted, orderID, nonce)
}

func (s *IntentStore) markFailed(ctx context.Context, nonce string) error {
	query := `UPDATE checkout_intents SET state = $1, updated_at = now() WHERE nonce = $2`
	return s.exec(ctx, query, intentFailed, nonce)
}

func (s *IntentStore) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf(
			"failed to update checkout intent in intent store: %w",
			err,
		)
	}
	return nil
}
