package domain

import (
	"context"
	"time"
)

// WalletLedger owns wallet balances and their append-only transaction
// history. Debit and Credit adjust the balance and write the matching ledger
// entry in the same transaction-scoped handle.
type WalletLedger interface {
	Create(ctx context.Context, userID string) (*Wallet, error)
	GetByUserID(ctx context.Context, userID string) (*Wallet, error)
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Wallet, error)
	Debit(ctx context.Context, walletID string, amount int64, ref ReferenceType, refID string) error
	Credit(ctx context.Context, walletID string, amount int64, ref ReferenceType, refID string) error
	ListTransactions(ctx context.Context, walletID string, limit int) ([]WalletTransaction, error)
}

// EscrowAccounts owns per-campaign held funds. Non-negativity is guaranteed
// by the orchestration, not by this component.
type EscrowAccounts interface {
	Create(ctx context.Context, campaignID string) error
	GetByCampaignID(ctx context.Context, campaignID string) (*EscrowAccount, error)
	Credit(ctx context.Context, campaignID string, amount int64) error
	Debit(ctx context.Context, campaignID string, amount int64) error
}

// CampaignStore owns campaign funding totals and lifecycle status.
type CampaignStore interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Campaign, error)
	List(ctx context.Context, limit int) ([]Campaign, error)
	// RecordFunding increments funded_amount and flips the status to
	// SUCCESSFUL in the same statement once the goal is crossed. It returns
	// ErrCampaignNotActive when the campaign is missing or terminal.
	RecordFunding(ctx context.Context, id string, amount int64) (*Campaign, error)
	ListExpiredActiveIDs(ctx context.Context, now time.Time) ([]string, error)
	// SettleExpired moves an ACTIVE campaign to the given terminal status.
	// It is a no-op on campaigns that are already terminal.
	SettleExpired(ctx context.Context, id string, status CampaignStatus) error
}

type PledgeStore interface {
	Create(ctx context.Context, p *Pledge) error
	ListPendingByCampaign(ctx context.Context, campaignID string) ([]Pledge, error)
	MarkRefunded(ctx context.Context, pledgeID string) error
}

// IdempotencyGuard deduplicates retried requests. Begin claims the key or
// reports the prior outcome; Complete attaches the final response inside the
// same transaction as the operation's other effects. A PROCESSING claim can
// be re-attempted once its lease expires.
type IdempotencyGuard interface {
	Begin(ctx context.Context, key, userID string, lease time.Duration) (BeginResult, error)
	Complete(ctx context.Context, key string, response []byte) error
}

type UserStore interface {
	Create(ctx context.Context, u *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
}

// TxRepos bundles the transaction-scoped repositories handed to a unit of
// work callback. Everything done through one TxRepos commits or rolls back
// together.
type TxRepos struct {
	Users       UserStore
	Wallets     WalletLedger
	Escrow      EscrowAccounts
	Campaigns   CampaignStore
	Pledges     PledgeStore
	Idempotency IdempotencyGuard
}

// UnitOfWork runs fn inside a single storage transaction.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(TxRepos) error) error
}
