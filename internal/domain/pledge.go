package domain

import "time"

type PledgeStatus string

const (
	PledgePending  PledgeStatus = "PENDING"
	PledgeRefunded PledgeStatus = "REFUNDED"
)

// Pledge is a donor's committed contribution to a campaign. It is created
// PENDING and moves to REFUNDED only when its campaign fails.
type Pledge struct {
	ID           string
	CampaignID   string
	DonorID      string
	Amount       int64
	Status       PledgeStatus
	DonorCountry string
	CreatedAt    time.Time
}
