package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/telcoflow/backoffice/internal/domain"
)

// AggregatePayments computes one row per customer that has at least one
// subscription, summing payment amounts over all of that customer's
// subscriptions. The LEFT JOIN is anchored on subscriptions: a customer
// with subscriptions but no payments comes back with sum_payment = 0,
// while a customer with no subscriptions is absent entirely. The SUM runs
// on NUMERIC in the database and is scanned into decimal, so no float
// rounding accumulates before the serialization boundary.
func (s *PostgresStore) AggregatePayments(ctx context.Context) ([]domain.PaymentAmount, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT s.customer_id, COALESCE(SUM(p.amount), 0) AS sum_payment
		FROM subscriptions s
		LEFT JOIN payments p ON s.subscription_id = p.subscription_id
		GROUP BY s.customer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("aggregating payments: %w", err)
	}
	defer rows.Close()

	amounts := []domain.PaymentAmount{}
	for rows.Next() {
		var pa domain.PaymentAmount
		if err := rows.Scan(&pa.CustomerID, &pa.SumPayment); err != nil {
			return nil, fmt.Errorf("scanning aggregate row: %w", err)
		}
		amounts = append(amounts, pa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading aggregate rows: %w", err)
	}

	return amounts, nil
}

// UpsertPaymentAmounts merges aggregate rows into payment_amount with
// last-writer-wins semantics: a row for an existing customer_id replaces
// its sum_payment. The whole batch runs in one transaction, so a failing
// row rolls back everything instead of leaving a partial batch behind.
// Requires the unique_customer_id constraint migration.
func (s *PostgresStore) UpsertPaymentAmounts(ctx context.Context, amounts []domain.PaymentAmount) error {
	if len(amounts) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning upsert transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, pa := range amounts {
		_, err := tx.Exec(ctx, `
			INSERT INTO payment_amount (customer_id, sum_payment)
			VALUES ($1, $2)
			ON CONFLICT (customer_id) DO UPDATE
			SET sum_payment = EXCLUDED.sum_payment
		`, pa.CustomerID, pa.SumPayment)
		if err != nil {
			if isMissingConstraint(err) {
				return fmt.Errorf("payment_amount upsert for customer %d: %v: %w",
					pa.CustomerID, err, domain.ErrConflict)
			}
			return fmt.Errorf("upserting payment_amount for customer %d: %w", pa.CustomerID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing upsert transaction: %w", err)
	}

	return nil
}

// isMissingConstraint reports whether the upsert failed because no unique
// constraint matches the ON CONFLICT clause, which means the schema
// migration has not been applied yet.
func isMissingConstraint(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 42P10: invalid_column_reference (no matching unique constraint)
		return pgErr.Code == "42P10"
	}
	return false
}
