package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

// UserRepo encapsulates all database queries for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,username,email,password_hash,is_admin,created_at,updated_at"

// UserPatch carries the optional fields of a partial user update. Nil means
// "leave unchanged". The admin flag is deliberately absent: it is immutable
// through the update path.
type UserPatch struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Create hashes the password and inserts the user, returning the stored
// record. MySQL duplicate-key errors (1062) are mapped onto the username or
// email sentinel depending on which key was violated.
func (r *UserRepo) Create(ctx context.Context, username, email, password string, isAdmin bool, cost int) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, email, password_hash, is_admin) VALUES (?,?,?,?)",
		username, email, hash, isAdmin)
	if err != nil {
		return nil, mapUserDupErr(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getWhere(ctx, "username=?", username)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getWhere(ctx, "id=?", id)
}

func (r *UserRepo) getWhere(ctx context.Context, cond string, arg any) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE "+cond+" LIMIT 1", arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Update applies a partial patch to the user record. A provided password is
// re-hashed; username and email keep their uniqueness guarantees via the
// same 1062 mapping as Create. ErrUserNotFound is returned when the id does
// not resolve.
func (r *UserRepo) Update(ctx context.Context, id uint64, patch UserPatch, cost int) (*model.User, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Username != nil {
		sets = append(sets, "username=?")
		args = append(args, strings.TrimSpace(*patch.Username))
	}
	if patch.Email != nil {
		sets = append(sets, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(*patch.Email)))
	}
	if patch.Password != nil {
		hash, err := utils.HashPassword(*patch.Password, cost)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "password_hash=?")
		args = append(args, hash)
	}
	if len(sets) > 0 {
		args = append(args, id)
		res, err := r.DB.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
		if err != nil {
			return nil, mapUserDupErr(err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Zero rows can also mean an identical patch; disambiguate below.
			if _, err := r.GetByID(ctx, id); err != nil {
				return nil, err
			}
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes the user. ErrUserNotFound is returned when nothing was
// deleted.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ListAll returns every user ordered by id. Admin-only at the HTTP layer.
func (r *UserRepo) ListAll(ctx context.Context) ([]*model.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userCols+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.User, 0)
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// mapUserDupErr turns a MySQL 1062 duplicate-key error into the matching
// sentinel. The key name distinguishes which constraint fired.
func mapUserDupErr(err error) error {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "1062") {
		return err
	}
	if strings.Contains(msg, "uq_users_email") {
		return ErrEmailExists
	}
	return ErrUsernameExists
}
