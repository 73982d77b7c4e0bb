package domain

import "time"

// RedemptionTypeStore tags redemptions converted into store gift-card credit.
const RedemptionTypeStore = "store"

// Redemption is the persisted outcome of a successful points exchange.
// Address fields are a snapshot of the client's shipping address at
// redemption time; the record is never mutated after creation.
type Redemption struct {
	ID           int64     `json:"id"`
	ClientID     int64     `json:"clientId"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	IP           string    `json:"ip"`
	Points       float64   `json:"points"`
	Value        float64   `json:"value"`
	ExchangeRate float64   `json:"exchangeRate"`
	Address      string    `json:"address,omitempty"`
	Neighborhood string    `json:"neighborhood,omitempty"`
	City         string    `json:"city,omitempty"`
	ZipCode      string    `json:"zipCode,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
