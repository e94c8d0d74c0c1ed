package domain

import "time"

// EscrowAccount holds funds pledged to a campaign pending settlement.
// Exactly one exists per campaign; its balance equals pledged minus refunded.
type EscrowAccount struct {
	ID         string
	CampaignID string
	Balance    int64
	CreatedAt  time.Time
}
