package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// CreateComment inserts a comment and returns it with the author name.
func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO comments (post_id, user_id, comment) VALUES ($1, $2, $3) RETURNING id`,
		c.PostID, c.UserID, c.Comment,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return s.FindCommentByID(ctx, id)
}

// FindCommentByID returns a comment with its author display name.
func (s *Store) FindCommentByID(ctx context.Context, id int64) (*domain.Comment, error) {
	query := `SELECT c.id, c.post_id, c.user_id, c.comment, c.created_at, c.updated_at,
	          COALESCE(u.username, ''), u.email
	          FROM comments c JOIN users u ON u.id = c.user_id
	          WHERE c.id = $1`

	var (
		c               domain.Comment
		username, email string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.PostID, &c.UserID, &c.Comment, &c.CreatedAt, &c.UpdatedAt, &username, &email,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	owner := domain.PostOwner{Username: username, Email: email}
	c.AuthorName = owner.DisplayName()
	return &c, nil
}

// ListCommentsByPost returns a post's comments, oldest first.
func (s *Store) ListCommentsByPost(ctx context.Context, postID int64) ([]domain.Comment, error) {
	query := `SELECT c.id, c.post_id, c.user_id, c.comment, c.created_at, c.updated_at,
	          COALESCE(u.username, ''), u.email
	          FROM comments c JOIN users u ON u.id = c.user_id
	          WHERE c.post_id = $1 ORDER BY c.created_at, c.id`

	rows, err := s.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var (
			c               domain.Comment
			username, email string
		)
		if err := rows.Scan(&c.ID, &c.PostID, &c.UserID, &c.Comment, &c.CreatedAt, &c.UpdatedAt, &username, &email); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		owner := domain.PostOwner{Username: username, Email: email}
		c.AuthorName = owner.DisplayName()
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// HasRecentDuplicateComment reports whether the user posted the exact same
// comment on the post within the last minute. Timestamps are compared in Go
// to stay portable across database engines.
func (s *Store) HasRecentDuplicateComment(ctx context.Context, postID, userID int64, comment string) (bool, error) {
	query := `SELECT created_at FROM comments
	          WHERE post_id = $1 AND user_id = $2 AND comment = $3
	          ORDER BY created_at DESC, id DESC LIMIT 1`

	var last time.Time
	err := s.db.QueryRowContext(ctx, query, postID, userID, comment).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check duplicate comment: %w", err)
	}
	return time.Since(last) < time.Minute, nil
}

// UpdateComment changes a comment's body.
func (s *Store) UpdateComment(ctx context.Context, id int64, comment string) (*domain.Comment, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE comments SET comment = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		comment, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, port.ErrCommentNotFound
	}
	return s.FindCommentByID(ctx, id)
}

// DeleteComment removes a comment.
func (s *Store) DeleteComment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return port.ErrCommentNotFound
	}
	return nil
}
