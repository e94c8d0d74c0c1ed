package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"globalfund/internal/domain"
	"globalfund/internal/middleware"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a user and their empty wallet in one transaction.
func (a *App) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.Logger.Error().Err(err).Msg("password hash failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}

	user := &domain.User{Name: req.Name, Email: req.Email, PasswordHash: string(hash)}
	err = a.UoW.Within(r.Context(), func(repos domain.TxRepos) error {
		if err := repos.Users.Create(r.Context(), user); err != nil {
			return err
		}
		_, err := repos.Wallets.Create(r.Context(), user.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			a.error(w, http.StatusBadRequest, "email_taken", "email already registered")
			return
		}
		a.Logger.Error().Err(err).Msg("register failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to register")
		return
	}

	a.json(w, http.StatusCreated, map[string]string{
		"message": "user created successfully",
		"userId":  user.ID,
	})
}

// Login verifies credentials and issues a bearer token.
func (a *App) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "email and password are required")
		return
	}

	var user *domain.User
	err := a.UoW.Within(r.Context(), func(repos domain.TxRepos) error {
		var err error
		user, err = repos.Users.GetByEmail(r.Context(), req.Email)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusBadRequest, "invalid_credentials", "invalid credentials")
			return
		}
		a.Logger.Error().Err(err).Msg("login failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		a.error(w, http.StatusBadRequest, "invalid_credentials", "invalid credentials")
		return
	}

	token, err := middleware.SignJWT(a.Cfg.JWTSecret, middleware.TokenClaims{
		Sub:    user.ID,
		Exp:    time.Now().Add(a.Cfg.TokenTTL).Unix(),
		Issuer: a.Cfg.JWTIssuer,
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("token signing failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to log in")
		return
	}

	a.json(w, http.StatusOK, map[string]string{"token": token})
}

// Me returns the authenticated user with their wallet balance.
func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	var user *domain.User
	var wallet *domain.Wallet
	err := a.UoW.Within(r.Context(), func(repos domain.TxRepos) error {
		var err error
		if user, err = repos.Users.GetByID(r.Context(), userID); err != nil {
			return err
		}
		wallet, err = repos.Wallets.GetByUserID(r.Context(), userID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrWalletNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		a.Logger.Error().Err(err).Msg("me failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load profile")
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"id":      user.ID,
		"name":    user.Name,
		"email":   user.Email,
		"balance": wallet.Balance,
	})
}
