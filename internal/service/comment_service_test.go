package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillblog/quill/internal/domain"
	"github.com/quillblog/quill/internal/port"
)

func publishedPost(authorID int64) *domain.Post {
	return &domain.Post{Title: "hello", AuthorID: authorID, Status: domain.PostStatusPublished}
}

func TestCommentAdd_Validation(t *testing.T) {
	svc := NewCommentService(newFakeComments(), newFakePosts(publishedPost(1)))
	ctx := context.Background()

	tests := []struct {
		name string
		body string
	}{
		{"empty", "   "},
		{"too long", strings.Repeat("x", 1001)},
		{"banned word", "great post, buy VIAGRA now"},
		{"banned word embedded", "this is spammy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, 1, 2, tt.body)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestCommentAdd_PostNotFound(t *testing.T) {
	svc := NewCommentService(newFakeComments(), newFakePosts())

	_, err := svc.Add(context.Background(), 42, 2, "nice read")
	assert.ErrorIs(t, err, port.ErrPostNotFound)
}

func TestCommentAdd_UnpublishedPost(t *testing.T) {
	posts := newFakePosts(&domain.Post{Title: "wip", AuthorID: 1, Status: domain.PostStatusDraft})
	svc := NewCommentService(newFakeComments(), posts)

	_, err := svc.Add(context.Background(), 1, 2, "nice read")
	assert.ErrorIs(t, err, port.ErrRoleDenied)
}

func TestCommentAdd_DuplicateWithinWindow(t *testing.T) {
	svc := NewCommentService(newFakeComments(), newFakePosts(publishedPost(1)))
	ctx := context.Background()

	first, err := svc.Add(ctx, 1, 2, "nice read")
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = svc.Add(ctx, 1, 2, "nice read")
	assert.ErrorIs(t, err, port.ErrDuplicate)

	// a different body is not a duplicate
	_, err = svc.Add(ctx, 1, 2, "another thought")
	assert.NoError(t, err)

	// neither is the same body from another user
	_, err = svc.Add(ctx, 1, 3, "nice read")
	assert.NoError(t, err)
}

func TestCommentUpdate_Ownership(t *testing.T) {
	svc := NewCommentService(newFakeComments(), newFakePosts(publishedPost(1)))
	ctx := context.Background()

	c, err := svc.Add(ctx, 1, 2, "original")
	require.NoError(t, err)

	author := &domain.AuthUser{ID: 2, Role: domain.RoleUser}
	stranger := &domain.AuthUser{ID: 3, Role: domain.RoleUser}
	admin := &domain.AuthUser{ID: 9, Role: domain.RoleAdmin}

	_, err = svc.Update(ctx, c.ID, stranger, "hijacked")
	assert.ErrorIs(t, err, port.ErrOwnershipDenied)

	got, err := svc.Update(ctx, c.ID, author, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Comment)

	got, err = svc.Update(ctx, c.ID, admin, "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", got.Comment)
}

func TestCommentDelete_PostAuthorMayModerate(t *testing.T) {
	svc := NewCommentService(newFakeComments(), newFakePosts(publishedPost(5)))
	ctx := context.Background()

	c, err := svc.Add(ctx, 1, 2, "off topic")
	require.NoError(t, err)

	stranger := &domain.AuthUser{ID: 3, Role: domain.RoleUser}
	assert.ErrorIs(t, svc.Delete(ctx, c.ID, stranger), port.ErrOwnershipDenied)

	postAuthor := &domain.AuthUser{ID: 5, Role: domain.RoleAuthor}
	require.NoError(t, svc.Delete(ctx, c.ID, postAuthor))

	_, err = svc.List(ctx, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, c.ID, postAuthor), port.ErrCommentNotFound)
}
