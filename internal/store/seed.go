package store

import (
	"context"
	"fmt"
)

// SeedSampleData inserts a small fixed set of raw rows for local
// development: three customers, four subscriptions, payments on two of
// them, and a month of usage counters. Inserts are idempotent so the seed
// can run on every dev boot. Production raw tables are populated by the
// upstream system and never touched by this code path.
func (s *PostgresStore) SeedSampleData(ctx context.Context) error {
	statements := []string{
		`INSERT INTO customers (customer_id, name, email, city, registration_date) VALUES
			(1, 'Ayse Yilmaz', 'ayse@example.com', 'Istanbul', '2024-01-15'),
			(2, 'Mehmet Demir', 'mehmet@example.com', 'Ankara', '2024-03-02'),
			(3, 'Elif Kaya', 'elif@example.com', 'Izmir', '2024-06-20')
		ON CONFLICT (customer_id) DO NOTHING`,
		`INSERT INTO subscriptions (subscription_id, customer_id, plan_type, monthly_fee, start_date, status) VALUES
			(100, 1, 'prepaid', 19.90, '2024-01-15', 'active'),
			(101, 1, 'data-only', 9.90, '2024-02-01', 'active'),
			(102, 2, 'postpaid', 34.90, '2024-03-02', 'active'),
			(103, 3, 'prepaid', 19.90, '2024-06-20', 'cancelled')
		ON CONFLICT (subscription_id) DO NOTHING`,
		`INSERT INTO payments (payment_id, subscription_id, amount, payment_date, payment_method) VALUES
			(1000, 100, 19.90, '2024-02-01', 'card'),
			(1001, 100, 19.90, '2024-03-01', 'card'),
			(1002, 101, 9.90, '2024-03-01', 'transfer'),
			(1003, 102, 34.90, '2024-04-02', 'card'),
			(1004, NULL, 5.00, '2024-04-10', 'cash')
		ON CONFLICT (payment_id) DO NOTHING`,
		`INSERT INTO usage (usage_id, subscription_id, call_minutes, data_usage, sms_count, usage_date) VALUES
			(5000, 100, 120.5, 2.300, 14, '2024-03-01'),
			(5001, 101, 0, 8.750, 0, '2024-03-01'),
			(5002, 102, 310.0, 5.125, 42, '2024-03-01'),
			(5003, 103, 12.0, 0.200, 3, '2024-06-25')
		ON CONFLICT (usage_id) DO NOTHING`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("seeding sample data: %w", err)
		}
	}

	return nil
}
