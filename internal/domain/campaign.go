package domain

import "time"

type CampaignStatus string

const (
	CampaignActive     CampaignStatus = "ACTIVE"
	CampaignSuccessful CampaignStatus = "SUCCESSFUL"
	CampaignFailed     CampaignStatus = "FAILED"
)

// Terminal reports whether the status admits no further transitions.
func (s CampaignStatus) Terminal() bool {
	return s == CampaignSuccessful || s == CampaignFailed
}

// Campaign tracks funding progress toward a goal. FundedAmount is
// monotonically non-decreasing; refunds do not reduce it.
type Campaign struct {
	ID           string
	OwnerID      string
	Title        string
	Description  string
	GoalAmount   int64
	FundedAmount int64
	EndDate      time.Time
	Status       CampaignStatus
	CreatedAt    time.Time
}

// Expired reports whether the campaign's deadline has passed.
func (c *Campaign) Expired(now time.Time) bool {
	return c.EndDate.Before(now)
}

// GoalReached reports whether funding has met or exceeded the goal.
func (c *Campaign) GoalReached() bool {
	return c.FundedAmount >= c.GoalAmount
}
