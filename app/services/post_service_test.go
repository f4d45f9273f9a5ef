package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"blogicum/app/models"
	"blogicum/app/repositories"
	"blogicum/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// newPostFixture builds a service over an in-memory store seeded with two
// users and a published plus an unpublished category.
func newPostFixture(t *testing.T) (*PostService, *mock.Store) {
	t.Helper()
	store := mock.NewStore()
	store.Now = func() time.Time { return testNow }
	ctx := context.Background()

	require.NoError(t, store.Users().Create(ctx, &models.User{Username: "alice"}))
	require.NoError(t, store.Users().Create(ctx, &models.User{Username: "bob"}))
	require.NoError(t, store.Categories().Create(ctx, &models.Category{
		Title: "Travel", Slug: "travel", IsPublished: true,
	}))
	require.NoError(t, store.Categories().Create(ctx, &models.Category{
		Title: "Hidden", Slug: "hidden", IsPublished: false,
	}))

	svc := NewPostService(store.Posts(), store.Comments(), store.Categories(), store.Locations(), store.Users())
	return svc, store
}

func seedPost(t *testing.T, store *mock.Store, title string, authorID, categoryID int, published bool, pubDate time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        "some text",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    authorID,
		CategoryID:  categoryID,
	}
	require.NoError(t, store.Posts().Create(context.Background(), post))
	return post
}

func TestListPublishedVisibility(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	visible := seedPost(t, store, "visible", 1, 1, true, testNow.Add(-time.Hour))
	seedPost(t, store, "draft", 1, 1, false, testNow.Add(-time.Hour))
	seedPost(t, store, "scheduled", 1, 1, true, testNow.Add(time.Hour))
	seedPost(t, store, "hidden category", 1, 2, true, testNow.Add(-time.Hour))

	page, err := svc.ListPublished(ctx, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, visible.ID, page.Posts[0].ID)
	assert.Equal(t, "alice", page.Posts[0].Author.Username)
	assert.Equal(t, "Travel", page.Posts[0].Category.Title)
}

func TestListPublishedOrdering(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	older := seedPost(t, store, "older", 1, 1, true, testNow.Add(-2*time.Hour))
	newer := seedPost(t, store, "newer", 1, 1, true, testNow.Add(-time.Hour))

	page, err := svc.ListPublished(ctx, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, newer.ID, page.Posts[0].ID)
	assert.Equal(t, older.ID, page.Posts[1].ID)
}

func TestListPublishedCommentCount(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	post := seedPost(t, store, "commented", 1, 1, true, testNow.Add(-time.Hour))
	for i := 0; i < 3; i++ {
		require.NoError(t, store.Comments().Create(ctx, &models.Comment{
			Text: "hi", PostID: post.ID, AuthorID: 2,
		}))
	}

	page, err := svc.ListPublished(ctx, "")
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, 3, page.Posts[0].CommentCount)
}

func TestListPublishedPagination(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		seedPost(t, store, fmt.Sprintf("post %d", i), 1, 1, true, testNow.Add(-time.Duration(i+1)*time.Minute))
	}

	t.Run("first page is full", func(t *testing.T) {
		page, err := svc.ListPublished(ctx, "1")
		require.NoError(t, err)
		assert.Len(t, page.Posts, 10)
		assert.Equal(t, 2, page.Page.TotalPages)
		assert.True(t, page.Page.HasNext)
	})

	t.Run("second page holds the rest", func(t *testing.T) {
		page, err := svc.ListPublished(ctx, "2")
		require.NoError(t, err)
		assert.Len(t, page.Posts, 5)
		assert.False(t, page.Page.HasNext)
	})

	t.Run("out of range clamps to last page", func(t *testing.T) {
		page, err := svc.ListPublished(ctx, "99")
		require.NoError(t, err)
		assert.Equal(t, 2, page.Page.Number)
		assert.Len(t, page.Posts, 5)
	})

	t.Run("garbage falls back to first page", func(t *testing.T) {
		page, err := svc.ListPublished(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page.Number)
	})
}

func TestListByCategory(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	inTravel := seedPost(t, store, "travel post", 1, 1, true, testNow.Add(-time.Hour))
	seedPost(t, store, "hidden post", 1, 2, true, testNow.Add(-time.Hour))

	t.Run("published category lists its visible posts", func(t *testing.T) {
		category, page, err := svc.ListByCategory(ctx, "travel", "")
		require.NoError(t, err)
		assert.Equal(t, "Travel", category.Title)
		require.Len(t, page.Posts, 1)
		assert.Equal(t, inTravel.ID, page.Posts[0].ID)
	})

	t.Run("unpublished category is not found", func(t *testing.T) {
		_, _, err := svc.ListByCategory(ctx, "hidden", "")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})

	t.Run("unknown slug is not found", func(t *testing.T) {
		_, _, err := svc.ListByCategory(ctx, "nope", "")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestListByAuthor(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	seedPost(t, store, "published", 1, 1, true, testNow.Add(-time.Hour))
	seedPost(t, store, "draft", 1, 1, false, testNow.Add(-time.Hour))
	seedPost(t, store, "scheduled", 1, 1, true, testNow.Add(time.Hour))

	t.Run("owner sees everything", func(t *testing.T) {
		owner, page, err := svc.ListByAuthor(ctx, "alice", 1, "")
		require.NoError(t, err)
		assert.Equal(t, "alice", owner.Username)
		assert.Len(t, page.Posts, 3)
	})

	t.Run("other viewers see only visible posts", func(t *testing.T) {
		_, page, err := svc.ListByAuthor(ctx, "alice", 2, "")
		require.NoError(t, err)
		assert.Len(t, page.Posts, 1)
	})

	t.Run("anonymous viewers see only visible posts", func(t *testing.T) {
		_, page, err := svc.ListByAuthor(ctx, "alice", 0, "")
		require.NoError(t, err)
		assert.Len(t, page.Posts, 1)
	})

	t.Run("unknown username is not found", func(t *testing.T) {
		_, _, err := svc.ListByAuthor(ctx, "ghost", 1, "")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestGetVisiblePost(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	visible := seedPost(t, store, "visible", 1, 1, true, testNow.Add(-time.Hour))
	draft := seedPost(t, store, "draft", 1, 1, false, testNow.Add(-time.Hour))
	scheduled := seedPost(t, store, "scheduled", 1, 1, true, testNow.Add(time.Hour))
	hiddenCat := seedPost(t, store, "hidden category", 1, 2, true, testNow.Add(-time.Hour))

	t.Run("anyone sees a visible post", func(t *testing.T) {
		post, err := svc.GetVisiblePost(ctx, visible.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, "visible", post.Title)
	})

	t.Run("author previews their own hidden posts", func(t *testing.T) {
		for _, id := range []int{draft.ID, scheduled.ID, hiddenCat.ID} {
			_, err := svc.GetVisiblePost(ctx, id, 1)
			assert.NoError(t, err)
		}
	})

	t.Run("others get not found for hidden posts", func(t *testing.T) {
		for _, id := range []int{draft.ID, scheduled.ID, hiddenCat.ID} {
			_, err := svc.GetVisiblePost(ctx, id, 2)
			assert.ErrorIs(t, err, repositories.ErrNotFound)
		}
	})

	t.Run("comments come attached in creation order", func(t *testing.T) {
		first := &models.Comment{Text: "first", PostID: visible.ID, AuthorID: 2}
		require.NoError(t, store.Comments().Create(ctx, first))
		second := &models.Comment{Text: "second", PostID: visible.ID, AuthorID: 1}
		require.NoError(t, store.Comments().Create(ctx, second))

		post, err := svc.GetVisiblePost(ctx, visible.ID, 0)
		require.NoError(t, err)
		require.Len(t, post.Comments, 2)
		assert.Equal(t, "first", post.Comments[0].Text)
		assert.Equal(t, "second", post.Comments[1].Text)
		assert.Equal(t, "bob", post.Comments[0].Author.Username)
	})
}

func TestCreatePostForcesAuthor(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	post := &models.Post{
		Title:       "mine",
		Text:        "text",
		PubDate:     testNow,
		IsPublished: true,
		CategoryID:  1,
		AuthorID:    2, // whatever the submission claimed
	}
	require.NoError(t, svc.CreatePost(ctx, post, 1))

	stored, err := store.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.AuthorID)
}

func TestCreatePostValidation(t *testing.T) {
	svc, _ := newPostFixture(t)

	post := &models.Post{Text: "no title", PubDate: testNow, CategoryID: 1}
	err := svc.CreatePost(context.Background(), post, 1)
	assert.Error(t, err)
}

func TestDeletePostCascadesComments(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	post := seedPost(t, store, "doomed", 1, 1, true, testNow.Add(-time.Hour))
	require.NoError(t, store.Comments().Create(ctx, &models.Comment{Text: "hi", PostID: post.ID, AuthorID: 2}))

	require.NoError(t, svc.DeletePost(ctx, post.ID))

	_, err := store.Posts().GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	comments, err := store.Comments().ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestFormChoices(t *testing.T) {
	svc, store := newPostFixture(t)
	ctx := context.Background()

	require.NoError(t, store.Locations().Create(ctx, &models.Location{Name: "Beach", IsPublished: true}))
	require.NoError(t, store.Locations().Create(ctx, &models.Location{Name: "Secret", IsPublished: false}))

	categories, locations, err := svc.FormChoices(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Travel", categories[0].Title)
	require.Len(t, locations, 1)
	assert.Equal(t, "Beach", locations[0].Name)
}
