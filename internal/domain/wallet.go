package domain

import "time"

// Wallet holds a donor's spendable balance. Balances only change through
// WalletLedger debits and credits, each paired with a ledger entry.
type Wallet struct {
	ID        string
	UserID    string
	Balance   int64
	CreatedAt time.Time
}

type TransactionType string

const (
	TransactionDebit  TransactionType = "DEBIT"
	TransactionCredit TransactionType = "CREDIT"
)

type ReferenceType string

const (
	ReferencePledge ReferenceType = "PLEDGE"
	ReferenceRefund ReferenceType = "REFUND"
)

// WalletTransaction is an immutable audit record of a single balance change.
type WalletTransaction struct {
	ID            string
	WalletID      string
	Type          TransactionType
	Amount        int64
	Status        string
	ReferenceType ReferenceType
	ReferenceID   string
	CreatedAt     time.Time
}
