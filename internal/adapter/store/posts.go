package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

const postColumns = `p.id, p.author_id, p.category_id, p.title, p.content, p.status,
	COALESCE(p.image_url, ''), p.created_at, p.updated_at,
	COALESCE(u.username, ''), u.email,
	COALESCE(c.name, ''),
	(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id),
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id)`

const postJoins = `FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN categories c ON c.id = p.category_id`

func scanPost(row interface{ Scan(...any) error }) (*domain.Post, error) {
	var (
		p              domain.Post
		authorUsername string
		authorEmail    string
	)
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.CategoryID, &p.Title, &p.Content, &p.Status,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		&authorUsername, &authorEmail,
		&p.CategoryName,
		&p.LikeCount, &p.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	owner := domain.PostOwner{Username: authorUsername, Email: authorEmail}
	p.AuthorName = owner.DisplayName()
	return &p, nil
}

// CreatePost inserts a new post and returns it with joined fields.
func (s *Store) CreatePost(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO posts (author_id, category_id, title, content, status, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.AuthorID, p.CategoryID, p.Title, p.Content, p.Status, p.ImageURL,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindPostByID(ctx, id)
}

// FindPostByID returns a post with author name, category and counts.
func (s *Store) FindPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	query := `SELECT ` + postColumns + ` ` + postJoins + ` WHERE p.id = $1`
	p, err := scanPost(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// ListPosts returns all posts, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` ` + postJoins + ` ORDER BY p.created_at DESC, p.id DESC`
	return s.listPosts(ctx, query)
}

// ListPostsByCategory returns a category's published posts, newest first.
func (s *Store) ListPostsByCategory(ctx context.Context, categoryID int64) ([]domain.Post, error) {
	query := `SELECT ` + postColumns + ` ` + postJoins +
		` WHERE p.category_id = $1 AND p.status = 'published' ORDER BY p.created_at DESC, p.id DESC`
	return s.listPosts(ctx, query, categoryID)
}

func (s *Store) listPosts(ctx context.Context, query string, args ...any) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// UpdatePost applies title/content/category/status changes.
func (s *Store) UpdatePost(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts SET title = $1, content = $2, category_id = $3, status = $4,
		 updated_at = CURRENT_TIMESTAMP WHERE id = $5`,
		p.Title, p.Content, p.CategoryID, p.Status, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, port.ErrPostNotFound
	}
	return s.FindPostByID(ctx, p.ID)
}

// DeletePost removes a post; comments and likes cascade.
func (s *Store) DeletePost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return port.ErrPostNotFound
	}
	return nil
}

// FindPostAuthor returns the stored author id of a post.
func (s *Store) FindPostAuthor(ctx context.Context, postID int64) (int64, error) {
	var authorID int64
	err := s.db.QueryRowContext(ctx, `SELECT author_id FROM posts WHERE id = $1`, postID).Scan(&authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, port.ErrPostNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get post author: %w", err)
	}
	return authorID, nil
}

// PostExists reports whether a post exists.
func (s *Store) PostExists(ctx context.Context, postID int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM posts WHERE id = $1`, postID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return true, nil
}

// FindPostOwner returns the owner of a post for authorization messages.
func (s *Store) FindPostOwner(ctx context.Context, postID int64) (*domain.PostOwner, error) {
	query := `SELECT u.id, COALESCE(u.username, ''), u.email, u.role
	          FROM posts p JOIN users u ON u.id = p.author_id
	          WHERE p.id = $1`

	var o domain.PostOwner
	err := s.db.QueryRowContext(ctx, query, postID).Scan(&o.ID, &o.Username, &o.Email, &o.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post owner: %w", err)
	}
	return &o, nil
}
