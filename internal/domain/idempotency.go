package domain

import "time"

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "PROCESSING"
	IdempotencyCompleted  IdempotencyStatus = "COMPLETED"
)

// IdempotencyRecord deduplicates client-retried mutating requests. The key's
// uniqueness constraint is the only synchronization across duplicates.
type IdempotencyRecord struct {
	Key            string
	UserID         string
	Status         IdempotencyStatus
	Response       []byte
	LeaseExpiresAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BeginOutcome is the result of attempting to claim an idempotency key.
type BeginOutcome int

const (
	// BeginFresh means the key was claimed; the caller must run the
	// operation and call Complete in the same transaction.
	BeginFresh BeginOutcome = iota
	// BeginReplayed means a completed record exists; the caller must return
	// the cached response without re-executing any side effect.
	BeginReplayed
	// BeginInFlight means another execution holds the key and has not
	// completed; the caller must fail as retryable with no mutation.
	BeginInFlight
)

type BeginResult struct {
	Outcome  BeginOutcome
	Response []byte
}
