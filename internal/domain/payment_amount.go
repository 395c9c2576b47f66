package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PaymentAmount is the derived per-customer aggregate: the sum of all
// payment amounts across that customer's subscriptions. It is the only
// table this service owns; every pipeline run fully recomputes it.
type PaymentAmount struct {
	CustomerID int64
	SumPayment decimal.Decimal
}

// MarshalJSON renders sum_payment as a bare JSON number. The aggregation
// itself runs on NUMERIC/decimal values; only here, at the serialization
// boundary, does the value become a float-shaped number.
func (p PaymentAmount) MarshalJSON() ([]byte, error) {
	type wire struct {
		CustomerID int64           `json:"customer_id"`
		SumPayment json.RawMessage `json:"sum_payment"`
	}
	return json.Marshal(wire{
		CustomerID: p.CustomerID,
		SumPayment: json.RawMessage(p.SumPayment.String()),
	})
}

// UnmarshalJSON accepts sum_payment as either a JSON number or a quoted
// decimal string.
func (p *PaymentAmount) UnmarshalJSON(data []byte) error {
	var wire struct {
		CustomerID int64           `json:"customer_id"`
		SumPayment decimal.Decimal `json:"sum_payment"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	p.CustomerID = wire.CustomerID
	p.SumPayment = wire.SumPayment
	return nil
}
