package handlers

import (
	"errors"
	"net/http"

	"globalfund/internal/domain"
	"globalfund/internal/middleware"
)

const walletHistoryLimit = 20

// WalletShow returns the authenticated donor's balance and recent ledger
// entries.
func (a *App) WalletShow(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var wallet *domain.Wallet
	var history []domain.WalletTransaction
	err := a.UoW.Within(r.Context(), func(repos domain.TxRepos) error {
		var err error
		if wallet, err = repos.Wallets.GetByUserID(r.Context(), userID); err != nil {
			return err
		}
		history, err = repos.Wallets.ListTransactions(r.Context(), wallet.ID, walletHistoryLimit)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			a.error(w, http.StatusNotFound, "wallet_not_found", "wallet not found")
			return
		}
		a.Logger.Error().Err(err).Msg("wallet show failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load wallet")
		return
	}

	items := make([]map[string]any, 0, len(history))
	for _, t := range history {
		items = append(items, map[string]any{
			"id":            t.ID,
			"type":          string(t.Type),
			"amount":        t.Amount,
			"status":        t.Status,
			"referenceType": string(t.ReferenceType),
			"referenceId":   t.ReferenceID,
			"createdAt":     t.CreatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{
		"balance":      wallet.Balance,
		"transactions": items,
	})
}
