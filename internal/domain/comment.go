package domain

import "time"

// Comment is a user comment on a published post.
type Comment struct {
	ID        int64     `json:"id"         db:"id"`
	PostID    int64     `json:"post_id"    db:"post_id"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	Comment   string    `json:"comment"    db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	AuthorName string `json:"author_name,omitempty"`
}

// Like records one user liking one post. The (PostID, UserID) pair is
// unique at the schema level.
type Like struct {
	ID        int64     `json:"id"         db:"id"`
	PostID    int64     `json:"post_id"    db:"post_id"`
	UserID    int64     `json:"user_id"    db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	UserName string `json:"user_name,omitempty"`
}
