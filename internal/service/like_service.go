package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

// LikeService handles post likes.
type LikeService struct {
	likes         port.LikeStore
	posts         port.PostStore
	allowSelfLike bool
}

// NewLikeService constructs a LikeService.
func NewLikeService(likes port.LikeStore, posts port.PostStore, allowSelfLike bool) *LikeService {
	return &LikeService{likes: likes, posts: posts, allowSelfLike: allowSelfLike}
}

// LikeResult is the outcome of a successful like.
type LikeResult struct {
	Like       *domain.Like `json:"like"`
	TotalLikes int          `json:"total_likes"`
}

// Like records user's like on a post. Unpublished posts are likeable only
// by their author or an admin; self-likes are rejected unless enabled.
func (s *LikeService) Like(ctx context.Context, postID int64, user *domain.AuthUser) (*LikeResult, error) {
	post, err := s.posts.FindPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status != domain.PostStatusPublished && post.AuthorID != user.ID && !user.IsAdmin() {
		return nil, port.ErrRoleDenied
	}
	if !s.allowSelfLike && post.AuthorID == user.ID {
		return nil, port.ErrOwnershipDenied
	}

	like, err := s.likes.CreateLike(ctx, postID, user.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.likes.CountLikes(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	slog.Info("post liked", "post_id", postID, "user_id", user.ID, "total", total)
	return &LikeResult{Like: like, TotalLikes: total}, nil
}

// Unlike removes a user's like from a post.
func (s *LikeService) Unlike(ctx context.Context, postID, userID int64) (int, error) {
	if exists, err := s.posts.PostExists(ctx, postID); err != nil {
		return 0, fmt.Errorf("check post exists: %w", err)
	} else if !exists {
		return 0, port.ErrPostNotFound
	}
	if err := s.likes.DeleteLike(ctx, postID, userID); err != nil {
		return 0, err
	}
	return s.likes.CountLikes(ctx, postID)
}

// LikesSummary is a post's like count plus its most recent likers.
type LikesSummary struct {
	TotalLikes int           `json:"total_likes"`
	Recent     []domain.Like `json:"recent"`
}

// Summary returns a post's like count and recent likers.
func (s *LikeService) Summary(ctx context.Context, postID int64) (*LikesSummary, error) {
	if exists, err := s.posts.PostExists(ctx, postID); err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	} else if !exists {
		return nil, port.ErrPostNotFound
	}
	total, err := s.likes.CountLikes(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	recent, err := s.likes.ListRecentLikes(ctx, postID, 10)
	if err != nil {
		return nil, fmt.Errorf("list recent likes: %w", err)
	}
	return &LikesSummary{TotalLikes: total, Recent: recent}, nil
}
