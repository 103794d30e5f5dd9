package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// bannedWords triggers a content rejection on case-insensitive substring match.
var bannedWords = []string{"spam", "viagra", "casino"}

// CommentService handles comments on posts.
type CommentService struct {
	comments port.CommentStore
	posts    port.PostStore
}

// NewCommentService constructs a CommentService.
func NewCommentService(comments port.CommentStore, posts port.PostStore) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

func validateCommentBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", &ValidationError{Msg: "Comment cannot be empty"}
	}
	if len(body) > 1000 {
		return "", &ValidationError{Msg: "Comment must not exceed 1000 characters"}
	}
	lower := strings.ToLower(body)
	for _, w := range bannedWords {
		if strings.Contains(lower, w) {
			return "", &ValidationError{Msg: "Comment contains inappropriate content"}
		}
	}
	return body, nil
}

// Add creates a comment on a published post. A duplicate comment by the
// same user on the same post within one minute is rejected as spam.
func (s *CommentService) Add(ctx context.Context, postID, userID int64, body string) (*domain.Comment, error) {
	body, err := validateCommentBody(body)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.PostStatusPublished {
		return nil, port.ErrRoleDenied
	}

	dup, err := s.comments.HasRecentDuplicateComment(ctx, postID, userID, body)
	if err != nil {
		return nil, fmt.Errorf("check duplicate comment: %w", err)
	}
	if dup {
		return nil, port.ErrDuplicate
	}

	c, err := s.comments.CreateComment(ctx, &domain.Comment{
		PostID:  postID,
		UserID:  userID,
		Comment: body,
	})
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	slog.Info("comment added", "comment_id", c.ID, "post_id", postID, "user_id", userID)
	return c, nil
}

// List returns a post's comments with author display names.
func (s *CommentService) List(ctx context.Context, postID int64) ([]domain.Comment, error) {
	if exists, err := s.posts.PostExists(ctx, postID); err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	} else if !exists {
		return nil, port.ErrPostNotFound
	}
	return s.comments.ListCommentsByPost(ctx, postID)
}

// Update changes a comment's body. Only its author or an admin may edit.
func (s *CommentService) Update(ctx context.Context, commentID int64, user *domain.AuthUser, body string) (*domain.Comment, error) {
	body, err := validateCommentBody(body)
	if err != nil {
		return nil, err
	}

	existing, err := s.comments.FindCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != user.ID && !user.IsAdmin() {
		return nil, port.ErrOwnershipDenied
	}
	return s.comments.UpdateComment(ctx, commentID, body)
}

// Delete removes a comment. Its author, the post's author, or an admin may
// delete it.
func (s *CommentService) Delete(ctx context.Context, commentID int64, user *domain.AuthUser) error {
	existing, err := s.comments.FindCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if existing.UserID != user.ID && !user.IsAdmin() {
		authorID, err := s.posts.FindPostAuthor(ctx, existing.PostID)
		if err != nil || authorID != user.ID {
			return port.ErrOwnershipDenied
		}
	}
	if err := s.comments.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	slog.Info("comment deleted", "comment_id", commentID, "by_user", user.ID)
	return nil
}
