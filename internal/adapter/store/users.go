package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (username, email, password, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, COALESCE(username, ''), email, password, role, created_at`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, u.Username, u.Email, u.PasswordHash, u.Role).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, port.ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// FindUserByID retrieves a user by id.
func (s *Store) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, COALESCE(username, ''), email, password, role, created_at
	          FROM users WHERE id = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// FindUserByEmail retrieves a user by email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, COALESCE(username, ''), email, password, role, created_at
	          FROM users WHERE email = $1`

	var user domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// CountUsersByRole counts users holding a role.
func (s *Store) CountUsersByRole(ctx context.Context, role string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count users by role: %w", err)
	}
	return n, nil
}

// UserExists reports whether a user with the username or email exists.
func (s *Store) UserExists(ctx context.Context, username, email string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE username = $1 OR email = $2 LIMIT 1`,
		username, email,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", err)
	}
	return true, nil
}
