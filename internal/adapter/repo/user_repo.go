package repo

import (
	"context"
	"fmt"

	"globalfund/internal/domain"
	"globalfund/internal/infra"
	"globalfund/internal/sqlinline"
)

// Users implements domain.UserStore.
type Users struct {
	q infra.SQLExecutor
}

func NewUsers(q infra.SQLExecutor) *Users {
	return &Users{q: q}
}

// Create inserts the user. The insert is conditional on the email being free,
// so a taken email surfaces as ErrEmailTaken rather than a constraint error.
func (r *Users) Create(ctx context.Context, u *domain.User) error {
	row := r.q.QueryRow(ctx, sqlinline.QInsertUser, u.Name, u.Email, u.PasswordHash)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Users) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.get(ctx, sqlinline.QSelectUserByEmail, email)
}

func (r *Users) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.get(ctx, sqlinline.QSelectUserByID, id)
}

func (r *Users) get(ctx context.Context, query, arg string) (*domain.User, error) {
	var u domain.User
	row := r.q.QueryRow(ctx, query, arg)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &u, nil
}

var _ domain.UserStore = (*Users)(nil)
