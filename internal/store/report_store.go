package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// UsageAverage is one row of the ad-hoc usage report: mean metered
// counters per customer, across all of that customer's subscriptions.
type UsageAverage struct {
	CustomerID     int64
	AvgCallMinutes decimal.Decimal
	AvgDataUsage   decimal.Decimal
	AvgSMSCount    decimal.Decimal
}

// AverageUsage groups usage by customer via the subscription join and
// averages each counter. Ordered by customer_id so the CSV output is
// stable run to run.
func (s *PostgresStore) AverageUsage(ctx context.Context) ([]UsageAverage, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT
			s.customer_id,
			AVG(u.call_minutes) AS avg_call_minutes,
			AVG(u.data_usage) AS avg_data_usage,
			AVG(u.sms_count) AS avg_sms_count
		FROM subscriptions s
		JOIN usage u ON s.subscription_id = u.subscription_id
		GROUP BY s.customer_id
		ORDER BY s.customer_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying usage averages: %w", err)
	}
	defer rows.Close()

	averages := []UsageAverage{}
	for rows.Next() {
		var ua UsageAverage
		err := rows.Scan(&ua.CustomerID, &ua.AvgCallMinutes, &ua.AvgDataUsage, &ua.AvgSMSCount)
		if err != nil {
			return nil, fmt.Errorf("scanning usage average: %w", err)
		}
		averages = append(averages, ua)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading usage averages: %w", err)
	}

	return averages, nil
}
