package engine

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"globalfund/internal/domain"
)

// fakeUnitOfWork runs the callback directly; transactional semantics are the
// pgx adapter's concern.
type fakeUnitOfWork struct {
	repos domain.TxRepos
	err   error
	calls int
}

func (f *fakeUnitOfWork) Within(_ context.Context, fn func(domain.TxRepos) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(f.repos)
}

type MockWalletLedger struct {
	mock.Mock
}

func (m *MockWalletLedger) Create(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletLedger) GetByUserID(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletLedger) GetByUserIDForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletLedger) Debit(ctx context.Context, walletID string, amount int64, ref domain.ReferenceType, refID string) error {
	return m.Called(ctx, walletID, amount, ref, refID).Error(0)
}

func (m *MockWalletLedger) Credit(ctx context.Context, walletID string, amount int64, ref domain.ReferenceType, refID string) error {
	return m.Called(ctx, walletID, amount, ref, refID).Error(0)
}

func (m *MockWalletLedger) ListTransactions(ctx context.Context, walletID string, limit int) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, walletID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}

type MockEscrowAccounts struct {
	mock.Mock
}

func (m *MockEscrowAccounts) Create(ctx context.Context, campaignID string) error {
	return m.Called(ctx, campaignID).Error(0)
}

func (m *MockEscrowAccounts) GetByCampaignID(ctx context.Context, campaignID string) (*domain.EscrowAccount, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EscrowAccount), args.Error(1)
}

func (m *MockEscrowAccounts) Credit(ctx context.Context, campaignID string, amount int64) error {
	return m.Called(ctx, campaignID, amount).Error(0)
}

func (m *MockEscrowAccounts) Debit(ctx context.Context, campaignID string, amount int64) error {
	return m.Called(ctx, campaignID, amount).Error(0)
}

type MockCampaignStore struct {
	mock.Mock
}

func (m *MockCampaignStore) Create(ctx context.Context, c *domain.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignStore) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignStore) GetByIDForUpdate(ctx context.Context, id string) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignStore) List(ctx context.Context, limit int) ([]domain.Campaign, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Campaign), args.Error(1)
}

func (m *MockCampaignStore) RecordFunding(ctx context.Context, id string, amount int64) (*domain.Campaign, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignStore) ListExpiredActiveIDs(ctx context.Context, now time.Time) ([]string, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCampaignStore) SettleExpired(ctx context.Context, id string, status domain.CampaignStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockPledgeStore struct {
	mock.Mock
}

func (m *MockPledgeStore) Create(ctx context.Context, p *domain.Pledge) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPledgeStore) ListPendingByCampaign(ctx context.Context, campaignID string) ([]domain.Pledge, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Pledge), args.Error(1)
}

func (m *MockPledgeStore) MarkRefunded(ctx context.Context, pledgeID string) error {
	return m.Called(ctx, pledgeID).Error(0)
}

type MockIdempotencyGuard struct {
	mock.Mock
}

func (m *MockIdempotencyGuard) Begin(ctx context.Context, key, userID string, lease time.Duration) (domain.BeginResult, error) {
	args := m.Called(ctx, key, userID, lease)
	return args.Get(0).(domain.BeginResult), args.Error(1)
}

func (m *MockIdempotencyGuard) Complete(ctx context.Context, key string, response []byte) error {
	return m.Called(ctx, key, response).Error(0)
}
