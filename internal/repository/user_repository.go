package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/mendoza-apartments/booking-api/internal/model"
	"github.com/mendoza-apartments/booking-api/internal/utils"
)

// RoleAdmin is the only role in use; the public site is unauthenticated.
const RoleAdmin = "ADMIN"

// ErrEmailExists is returned when creating a user with a taken email.
var ErrEmailExists = errors.New("email already exists")

// UserRepo persists admin accounts in the `users` table.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts an admin user and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, role) VALUES (?,?,?)",
		email, hash, RoleAdmin)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,password_hash,role,is_active,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// EnsureAdmin seeds the dashboard account from the environment on startup.
// It is a no-op when the email already exists.  There is no public
// registration endpoint, so this is the only way accounts come into being.
func (r *UserRepo) EnsureAdmin(ctx context.Context, email, password string, cost int) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := r.GetByEmail(ctx, email); err == nil {
		return nil
	} else if err != sql.ErrNoRows {
		return err
	}
	id, err := r.Create(ctx, email, password, cost)
	if err != nil {
		if err == ErrEmailExists {
			return nil
		}
		return err
	}
	log.Printf("seeded admin account %s (id=%d)", email, id)
	return nil
}
