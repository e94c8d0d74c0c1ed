package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"globalfund/internal/domain"
	"globalfund/internal/engine"
	"globalfund/internal/middleware"
)

type pledgeRequest struct {
	CampaignID string `json:"campaignId"`
	Amount     int64  `json:"amount"`
}

// PledgesCreate handles POST /api/pledges. The Idempotency-Key header is
// required; replaying it returns the cached response with no new effects.
func (a *App) PledgesCreate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key == "" {
		a.error(w, http.StatusBadRequest, "idempotency_key_required", "Idempotency-Key header required")
		return
	}

	var req pledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.CampaignID) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "campaignId required")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}

	res, err := a.Pledges.Pledge(r.Context(), engine.PledgeInput{
		UserID:         userID,
		CampaignID:     req.CampaignID,
		Amount:         req.Amount,
		IdempotencyKey: key,
		DonorCountry:   middleware.CountryFromContext(r.Context()),
	})
	if err != nil {
		a.pledgeError(w, err)
		return
	}
	a.json(w, http.StatusOK, res.Receipt)
}

func (a *App) pledgeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "bad_request", "invalid input")
	case errors.Is(err, domain.ErrWalletNotFound):
		a.error(w, http.StatusBadRequest, "wallet_not_found", "wallet not found")
	case errors.Is(err, domain.ErrInsufficientBalance):
		a.error(w, http.StatusBadRequest, "insufficient_balance", "insufficient wallet balance")
	case errors.Is(err, domain.ErrCampaignNotActive):
		a.error(w, http.StatusBadRequest, "campaign_not_active", "campaign not active")
	case errors.Is(err, domain.ErrDuplicateInFlight):
		a.error(w, http.StatusConflict, "duplicate_in_flight", "request already in progress, retry later")
	default:
		a.Logger.Error().Err(err).Msg("pledge failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to process pledge")
	}
}
