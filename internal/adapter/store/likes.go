package store

import (
	"context"
	"fmt"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// CreateLike inserts a like; the unique (post_id, user_id) constraint
// rejects duplicates.
func (s *Store) CreateLike(ctx context.Context, postID, userID int64) (*domain.Like, error) {
	var like domain.Like
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2)
		 RETURNING id, post_id, user_id, created_at`,
		postID, userID,
	).Scan(&like.ID, &like.PostID, &like.UserID, &like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, port.ErrDuplicate
		}
		return nil, fmt.Errorf("create like: %w", err)
	}
	return &like, nil
}

// DeleteLike removes a user's like from a post.
func (s *Store) DeleteLike(ctx context.Context, postID, userID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return port.ErrLikeNotFound
	}
	return nil
}

// CountLikes returns a post's like total.
func (s *Store) CountLikes(ctx context.Context, postID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

// ListRecentLikes returns a post's most recent likes with liker names.
func (s *Store) ListRecentLikes(ctx context.Context, postID int64, limit int) ([]domain.Like, error) {
	query := `SELECT pl.id, pl.post_id, pl.user_id, pl.created_at,
	          COALESCE(u.username, ''), u.email
	          FROM post_likes pl JOIN users u ON u.id = pl.user_id
	          WHERE pl.post_id = $1 ORDER BY pl.created_at DESC, pl.id DESC LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, postID, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent likes: %w", err)
	}
	defer rows.Close()

	var likes []domain.Like
	for rows.Next() {
		var (
			l               domain.Like
			username, email string
		)
		if err := rows.Scan(&l.ID, &l.PostID, &l.UserID, &l.CreatedAt, &username, &email); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		owner := domain.PostOwner{Username: username, Email: email}
		l.UserName = owner.DisplayName()
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
