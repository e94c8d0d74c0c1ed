package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"globalfund/internal/domain"
)

type pledgeFixture struct {
	wallets     *MockWalletLedger
	escrow      *MockEscrowAccounts
	campaigns   *MockCampaignStore
	pledges     *MockPledgeStore
	idempotency *MockIdempotencyGuard
	uow         *fakeUnitOfWork
	engine      *PledgeEngine
}

func newPledgeFixture() *pledgeFixture {
	f := &pledgeFixture{
		wallets:     new(MockWalletLedger),
		escrow:      new(MockEscrowAccounts),
		campaigns:   new(MockCampaignStore),
		pledges:     new(MockPledgeStore),
		idempotency: new(MockIdempotencyGuard),
	}
	f.uow = &fakeUnitOfWork{repos: domain.TxRepos{
		Wallets:     f.wallets,
		Escrow:      f.escrow,
		Campaigns:   f.campaigns,
		Pledges:     f.pledges,
		Idempotency: f.idempotency,
	}}
	f.engine = NewPledgeEngine(f.uow, zerolog.Nop(), 30*time.Second)
	return f
}

func validInput() PledgeInput {
	return PledgeInput{
		UserID:         "user-1",
		CampaignID:     "camp-1",
		Amount:         40,
		IdempotencyKey: "key-1",
	}
}

func TestPledgeSuccess(t *testing.T) {
	f := newPledgeFixture()
	in := validInput()

	f.idempotency.On("Begin", mock.Anything, "key-1", "user-1", 30*time.Second).
		Return(domain.BeginResult{Outcome: domain.BeginFresh}, nil)
	f.wallets.On("GetByUserIDForUpdate", mock.Anything, "user-1").
		Return(&domain.Wallet{ID: "wallet-1", UserID: "user-1", Balance: 100}, nil)
	f.campaigns.On("GetByIDForUpdate", mock.Anything, "camp-1").
		Return(&domain.Campaign{ID: "camp-1", Status: domain.CampaignActive, GoalAmount: 1000}, nil)
	f.wallets.On("Debit", mock.Anything, "wallet-1", int64(40), domain.ReferencePledge, "camp-1").
		Return(nil)
	f.escrow.On("Credit", mock.Anything, "camp-1", int64(40)).Return(nil)
	f.campaigns.On("RecordFunding", mock.Anything, "camp-1", int64(40)).
		Return(&domain.Campaign{ID: "camp-1", Status: domain.CampaignActive, GoalAmount: 1000, FundedAmount: 40}, nil)
	f.pledges.On("Create", mock.Anything, mock.AnythingOfType("*domain.Pledge")).
		Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Pledge)
			p.ID = "pledge-1"
		}).
		Return(nil)
	f.idempotency.On("Complete", mock.Anything, "key-1", mock.Anything).Return(nil)

	res, err := f.engine.Pledge(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.Equal(t, "Pledge successful", res.Receipt.Message)
	assert.Equal(t, "pledge-1", res.Receipt.PledgeID)

	f.wallets.AssertExpectations(t)
	f.escrow.AssertExpectations(t)
	f.campaigns.AssertExpectations(t)
	f.pledges.AssertExpectations(t)
	f.idempotency.AssertExpectations(t)
}

func TestPledgeGoalCrossingFlipsCampaign(t *testing.T) {
	f := newPledgeFixture()
	in := validInput()
	in.Amount = 50

	f.idempotency.On("Begin", mock.Anything, "key-1", "user-1", mock.Anything).
		Return(domain.BeginResult{Outcome: domain.BeginFresh}, nil)
	f.wallets.On("GetByUserIDForUpdate", mock.Anything, "user-1").
		Return(&domain.Wallet{ID: "wallet-1", Balance: 100}, nil)
	f.campaigns.On("GetByIDForUpdate", mock.Anything, "camp-1").
		Return(&domain.Campaign{ID: "camp-1", Status: domain.CampaignActive, GoalAmount: 1000, FundedAmount: 960}, nil)
	f.wallets.On("Debit", mock.Anything, "wallet-1", int64(50), domain.ReferencePledge, "camp-1").Return(nil)
	f.escrow.On("Credit", mock.Anything, "camp-1", int64(50)).Return(nil)
	f.campaigns.On("RecordFunding", mock.Anything, "camp-1", int64(50)).
		Return(&domain.Campaign{ID: "camp-1", Status: domain.CampaignSuccessful, GoalAmount: 1000, FundedAmount: 1010}, nil)
	f.pledges.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.idempotency.On("Complete", mock.Anything, "key-1", mock.Anything).Return(nil)

	res, err := f.engine.Pledge(context.Background(), in)
	require.NoError(t, err)
	assert.False(t, res.Replayed)
	f.campaigns.AssertExpectations(t)
}

func TestPledgeReplayReturnsCachedResponse(t *testing.T) {
	f := newPledgeFixture()
	cached, err := json.Marshal(PledgeReceipt{Message: "Pledge successful", PledgeID: "pledge-1"})
	require.NoError(t, err)

	f.idempotency.On("Begin", mock.Anything, "key-1", "user-1", mock.Anything).
		Return(domain.BeginResult{Outcome: domain.BeginReplayed, Response: cached}, nil)

	res, err := f.engine.Pledge(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, res.Replayed)
	assert.Equal(t, "Pledge successful", res.Receipt.Message)
	assert.Equal(t, "pledge-1", res.Receipt.PledgeID)

	f.wallets.AssertNotCalled(t, "GetByUserIDForUpdate", mock.Anything, mock.Anything)
	f.wallets.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.pledges.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPledgeDuplicateInFlight(t *testing.T) {
	f := newPledgeFixture()
	f.idempotency.On("Begin", mock.Anything, "key-1", "user-1", mock.Anything).
		Return(domain.BeginResult{Outcome: domain.BeginInFlight}, nil)

	_, err := f.engine.Pledge(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrDuplicateInFlight)
	f.wallets.AssertNotCalled(t, "GetByUserIDForUpdate", mock.Anything, mock.Anything)
}

func TestPledgeInsufficientBalance(t *testing.T) {
	f := newPledgeFixture()
	in := validInput()
	in.Amount = 50

	f.idempotency.On("Begin", mock.Anything, "key-1", "user-1", mock.Anything).
		Return(domain.BeginResult{Outcome: domain.BeginFresh}, nil)
	f.wallets.On("GetByUserIDForUpdate", mock.Anything, "user-1").
		Return(&domain.Wallet{ID: "wallet-1", Balance: 10}, nil)

	_, err := f.engine.Pledge(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	f.wallets.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.campaigns.AssertNotCalled(t, "GetByIDForUpdate", mock.Anything, mock.Anything)
}

func TestPledgeWalletNotFound(t *testing.T) {
	f := newPledgeFixture()
	f.idempotency.On("Begin", mock.Anything, "key-1", "user-1", mock.Anything).
		Return(domain.BeginResult{Outcome: domain.BeginFresh}, nil)
	f.wallets.On("GetByUserIDForUpdate", mock.Anything, "user-1").
		Return(nil, domain.ErrWalletNotFound)

	_, err := f.engine.Pledge(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}

func TestPledgeCampaignNotActive(t *testing.T) {
	f := newPledgeFixture()
	f.idempotency.On("Begin", mock.Anything, "key-1", "user-1", mock.Anything).
		Return(domain.BeginResult{Outcome: domain.BeginFresh}, nil)
	f.wallets.On("GetByUserIDForUpdate", mock.Anything, "user-1").
		Return(&domain.Wallet{ID: "wallet-1", Balance: 100}, nil)
	f.campaigns.On("GetByIDForUpdate", mock.Anything, "camp-1").
		Return(&domain.Campaign{ID: "camp-1", Status: domain.CampaignFailed}, nil)

	_, err := f.engine.Pledge(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrCampaignNotActive)
	f.wallets.AssertNotCalled(t, "Debit", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPledgeMissingCampaignReportsNotActive(t *testing.T) {
	f := newPledgeFixture()
	f.idempotency.On("Begin", mock.Anything, "key-1", "user-1", mock.Anything).
		Return(domain.BeginResult{Outcome: domain.BeginFresh}, nil)
	f.wallets.On("GetByUserIDForUpdate", mock.Anything, "user-1").
		Return(&domain.Wallet{ID: "wallet-1", Balance: 100}, nil)
	f.campaigns.On("GetByIDForUpdate", mock.Anything, "camp-1").
		Return(nil, domain.ErrNotFound)

	_, err := f.engine.Pledge(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrCampaignNotActive)
}

func TestPledgeValidationRejectsBeforeStorage(t *testing.T) {
	f := newPledgeFixture()

	cases := []struct {
		name   string
		mutate func(*PledgeInput)
	}{
		{"zero amount", func(in *PledgeInput) { in.Amount = 0 }},
		{"negative amount", func(in *PledgeInput) { in.Amount = -5 }},
		{"missing campaign", func(in *PledgeInput) { in.CampaignID = "" }},
		{"missing key", func(in *PledgeInput) { in.IdempotencyKey = " " }},
		{"missing user", func(in *PledgeInput) { in.UserID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := f.engine.Pledge(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Zero(t, f.uow.calls, "validation failures must not open a transaction")
}
