package domain

import (
	"time"
)

// Customer is a row from the externally owned customers table.
// This service only ever reads it.
type Customer struct {
	CustomerID       int64     `json:"customer_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	City             string    `json:"city"`
	RegistrationDate time.Time `json:"registration_date"`
}

// Subscription links a customer to a plan.
type Subscription struct {
	SubscriptionID int64     `json:"subscription_id"`
	CustomerID     int64     `json:"customer_id"`
	PlanType       string    `json:"plan_type"`
	MonthlyFee     float64   `json:"monthly_fee"`
	StartDate      time.Time `json:"start_date"`
	Status         string    `json:"status"`
}

// Payment is a single transaction row. SubscriptionID is nullable in the
// source data, so it is a pointer here.
type Payment struct {
	PaymentID      int64     `json:"payment_id"`
	SubscriptionID *int64    `json:"subscription_id"`
	Amount         float64   `json:"amount"`
	PaymentDate    time.Time `json:"payment_date"`
	PaymentMethod  string    `json:"payment_method"`
}

// Usage holds per-subscription metered counters.
type Usage struct {
	UsageID        int64     `json:"usage_id"`
	SubscriptionID int64     `json:"subscription_id"`
	CallMinutes    float64   `json:"call_minutes"`
	DataUsage      float64   `json:"data_usage"`
	SMSCount       int       `json:"sms_count"`
	UsageDate      time.Time `json:"usage_date"`
}
