package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/designhub/backend/internal/apperror"
	"github.com/pageza/designhub/backend/internal/database"
	"github.com/pageza/designhub/backend/internal/models"
	"github.com/pageza/designhub/backend/internal/testhelpers"
	"github.com/pageza/designhub/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostUsesAuthorProfile(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFeedService(db, database.NewUserStore(db))
	author := testhelpers.CreateTestUser(t, db, "Sarah Chen")
	require.NoError(t, db.Model(author).Update("role", "UI/UX Designer").Error)

	image := " https://images.example.com/dashboard.png "
	post, err := svc.CreatePost(context.Background(), author.ID, &types.CreatePostRequest{
		Content: "  Just finished a dashboard redesign  ",
		Image:   &image,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sarah Chen", post.Author)
	assert.Equal(t, "UI/UX Designer", post.Role)
	assert.Equal(t, "Just finished a dashboard redesign", post.Content)
	require.NotNil(t, post.Image)
	assert.Equal(t, "https://images.example.com/dashboard.png", *post.Image)
	assert.Zero(t, post.Likes)
	assert.False(t, post.IsLiked)
}

func TestCreatePostValidation(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFeedService(db, database.NewUserStore(db))
	author := testhelpers.CreateTestUser(t, db, "A")
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, author.ID, &types.CreatePostRequest{Content: "   "})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidContent))

	bad := "not a url"
	_, err = svc.CreatePost(ctx, author.ID, &types.CreatePostRequest{Content: "hi", Image: &bad})
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidURL))

	_, err = svc.CreatePost(ctx, uuid.New(), &types.CreatePostRequest{Content: "hi"})
	assert.True(t, apperror.HasCode(err, apperror.CodeUserNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestListPostsNewestFirstWithLikes(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFeedService(db, database.NewUserStore(db))
	viewer := testhelpers.CreateTestUser(t, db, "Viewer")
	author := testhelpers.CreateTestUser(t, db, "Author")
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	older := &models.Post{AuthorID: author.ID, Author: author.Name, Content: "older", CreatedAt: base}
	newer := &models.Post{AuthorID: author.ID, Author: author.Name, Content: "newer", CreatedAt: base.Add(time.Minute)}
	require.NoError(t, db.Create(older).Error)
	require.NoError(t, db.Create(newer).Error)

	_, err := svc.ToggleLike(ctx, viewer.ID, older.ID)
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx, viewer.ID)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Content)
	assert.False(t, posts[0].IsLiked)
	assert.Equal(t, "older", posts[1].Content)
	assert.True(t, posts[1].IsLiked)
	assert.Equal(t, 1, posts[1].Likes)

	others, err := svc.ListPosts(ctx, author.ID)
	require.NoError(t, err)
	assert.False(t, others[1].IsLiked)
}

func TestToggleLike(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	svc := NewFeedService(db, database.NewUserStore(db))
	user := testhelpers.CreateTestUser(t, db, "Liker")
	ctx := context.Background()

	post := &models.Post{AuthorID: user.ID, Author: user.Name, Content: "hello", Likes: 24}
	require.NoError(t, db.Create(post).Error)

	liked, err := svc.ToggleLike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, &types.LikeResponse{Likes: 25, IsLiked: true}, liked)

	unliked, err := svc.ToggleLike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, &types.LikeResponse{Likes: 24, IsLiked: false}, unliked)

	_, err = svc.ToggleLike(ctx, user.ID, uuid.New())
	assert.True(t, apperror.HasCode(err, apperror.CodePostNotFound))
}
