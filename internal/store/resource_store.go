package store

import (
	"context"
	"fmt"

	"github.com/telcoflow/backoffice/internal/domain"
)

// DefaultPerPage is applied when a caller does not set per_page.
const DefaultPerPage = 10

// offsetFor converts a 1-based page number and page size into a LIMIT/OFFSET
// pair, normalizing out-of-range inputs to the defaults.
func offsetFor(page, perPage int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return perPage, (page - 1) * perPage
}

func (s *PostgresStore) ListCustomers(ctx context.Context, page, perPage int) ([]domain.Customer, error) {
	limit, offset := offsetFor(page, perPage)

	rows, err := s.pool.Query(ctx, `
		SELECT customer_id, name, email, city, registration_date
		FROM customers LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying customers: %w", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.CustomerID, &c.Name, &c.Email, &c.City, &c.RegistrationDate); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading customers: %w", err)
	}

	return customers, nil
}

func (s *PostgresStore) ListSubscriptions(ctx context.Context, page, perPage int) ([]domain.Subscription, error) {
	limit, offset := offsetFor(page, perPage)

	rows, err := s.pool.Query(ctx, `
		SELECT subscription_id, customer_id, plan_type, monthly_fee, start_date, status
		FROM subscriptions LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying subscriptions: %w", err)
	}
	defer rows.Close()

	subscriptions := []domain.Subscription{}
	for rows.Next() {
		var sub domain.Subscription
		err := rows.Scan(&sub.SubscriptionID, &sub.CustomerID, &sub.PlanType,
			&sub.MonthlyFee, &sub.StartDate, &sub.Status)
		if err != nil {
			return nil, fmt.Errorf("scanning subscription: %w", err)
		}
		subscriptions = append(subscriptions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading subscriptions: %w", err)
	}

	return subscriptions, nil
}

func (s *PostgresStore) ListPayments(ctx context.Context, page, perPage int) ([]domain.Payment, error) {
	limit, offset := offsetFor(page, perPage)

	rows, err := s.pool.Query(ctx, `
		SELECT payment_id, subscription_id, amount, payment_date, payment_method
		FROM payments LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var p domain.Payment
		err := rows.Scan(&p.PaymentID, &p.SubscriptionID, &p.Amount,
			&p.PaymentDate, &p.PaymentMethod)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading payments: %w", err)
	}

	return payments, nil
}

func (s *PostgresStore) ListUsage(ctx context.Context, page, perPage int) ([]domain.Usage, error) {
	limit, offset := offsetFor(page, perPage)

	rows, err := s.pool.Query(ctx, `
		SELECT usage_id, subscription_id, call_minutes, data_usage, sms_count, usage_date
		FROM usage LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying usage: %w", err)
	}
	defer rows.Close()

	records := []domain.Usage{}
	for rows.Next() {
		var u domain.Usage
		err := rows.Scan(&u.UsageID, &u.SubscriptionID, &u.CallMinutes,
			&u.DataUsage, &u.SMSCount, &u.UsageDate)
		if err != nil {
			return nil, fmt.Errorf("scanning usage: %w", err)
		}
		records = append(records, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading usage: %w", err)
	}

	return records, nil
}

func (s *PostgresStore) ListPaymentAmounts(ctx context.Context, page, perPage int) ([]domain.PaymentAmount, error) {
	limit, offset := offsetFor(page, perPage)

	rows, err := s.pool.Query(ctx, `
		SELECT customer_id, sum_payment
		FROM payment_amount LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("querying payment_amount: %w", err)
	}
	defer rows.Close()

	amounts := []domain.PaymentAmount{}
	for rows.Next() {
		var pa domain.PaymentAmount
		if err := rows.Scan(&pa.CustomerID, &pa.SumPayment); err != nil {
			return nil, fmt.Errorf("scanning payment_amount: %w", err)
		}
		amounts = append(amounts, pa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading payment_amount: %w", err)
	}

	return amounts, nil
}
