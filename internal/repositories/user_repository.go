package repositories

import (
	"context"
	"errors"
	"fmt"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/store"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	Store store.TableStore
}

func NewUserRepository(s store.TableStore) *UserRepository {
	return &UserRepository{Store: s}
}

func rowToUser(t *store.Table, row []string) *models.User {
	return &models.User{
		UserID:       t.Get(row, "user_id"),
		Name:         t.Get(row, "name"),
		Role:         t.Get(row, "role"),
		Mobile:       t.Get(row, "mobile"),
		PasswordHash: t.Get(row, "password_hash"),
		Active:       parseActive(t.Get(row, "active")),
		TOTPEnabled:  t.Get(row, "totp_secret") != "",
	}
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	t, err := r.Store.Load(ctx, store.EntityUsers)
	if err != nil {
		return nil, err
	}
	users := make([]*models.User, 0, len(t.Rows))
	for _, row := range t.Rows {
		users = append(users, rowToUser(t, row))
	}
	return users, nil
}

func (r *UserRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	t, err := r.Store.Load(ctx, store.EntityUsers)
	if err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if t.Get(row, "user_id") == userID {
			return rowToUser(t, row), nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*models.User, error) {
	t, err := r.Store.Load(ctx, store.EntityUsers)
	if err != nil {
		return nil, err
	}
	for _, row := range t.Rows {
		if t.Get(row, "mobile") == mobile {
			return rowToUser(t, row), nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends a new user. The mobile number is the login id and must be
// unique across the table.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if u.UserID == "" || u.Name == "" || u.Mobile == "" {
		return errors.New("user_id, name and mobile are required")
	}
	if !models.ValidRole(u.Role) {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return r.Store.Update(ctx, store.EntityUsers, func(t *store.Table) error {
		for _, row := range t.Rows {
			if t.Get(row, "mobile") == u.Mobile {
				return fmt.Errorf("user with mobile %s already exists", u.Mobile)
			}
			if t.Get(row, "user_id") == u.UserID {
				return fmt.Errorf("user %s already exists", u.UserID)
			}
		}
		t.Append(map[string]string{
			"user_id":       u.UserID,
			"name":          u.Name,
			"role":          u.Role,
			"mobile":        u.Mobile,
			"password_hash": u.PasswordHash,
			"active":        formatActive(u.Active),
		})
		return nil
	})
}

// Update rewrites the user's row in place. The stored TOTP secret is
// preserved; use SetTOTPSecret to change it.
func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	if !models.ValidRole(u.Role) {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return r.Store.Update(ctx, store.EntityUsers, func(t *store.Table) error {
		for _, row := range t.Rows {
			if t.Get(row, "user_id") != u.UserID {
				continue
			}
			set := func(name, val string) {
				if c := t.Col(name); c >= 0 && c < len(row) {
					row[c] = val
				}
			}
			set("name", u.Name)
			set("role", u.Role)
			set("mobile", u.Mobile)
			set("password_hash", u.PasswordHash)
			set("active", formatActive(u.Active))
			return nil
		}
		return ErrUserNotFound
	})
}

// SetActive flips the soft-delete flag. Users are never hard-deleted.
func (r *UserRepository) SetActive(ctx context.Context, userID string, active bool) error {
	return r.setField(ctx, userID, "active", formatActive(active))
}

func (r *UserRepository) SetTOTPSecret(ctx context.Context, userID, secret string) error {
	return r.setField(ctx, userID, "totp_secret", secret)
}

func (r *UserRepository) GetTOTPSecret(ctx context.Context, userID string) (string, error) {
	t, err := r.Store.Load(ctx, store.EntityUsers)
	if err != nil {
		return "", err
	}
	for _, row := range t.Rows {
		if t.Get(row, "user_id") == userID {
			return t.Get(row, "totp_secret"), nil
		}
	}
	return "", ErrUserNotFound
}

func (r *UserRepository) setField(ctx context.Context, userID, field, value string) error {
	return r.Store.Update(ctx, store.EntityUsers, func(t *store.Table) error {
		col := t.Col(field)
		if col < 0 {
			return fmt.Errorf("users table missing %s column", field)
		}
		for _, row := range t.Rows {
			if t.Get(row, "user_id") == userID {
				row[col] = value
				return nil
			}
		}
		return ErrUserNotFound
	})
}
