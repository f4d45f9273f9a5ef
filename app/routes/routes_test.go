package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"blogicum/app/controllers"
	"blogicum/app/forms"
	"blogicum/app/models"
	"blogicum/app/repositories/mock"
	"blogicum/app/services"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp runs the full handler stack over the in-memory store.
type testApp struct {
	store  *mock.Store
	server *httptest.Server
	client *http.Client
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := mock.NewStore()
	require.NoError(t, store.Categories().Create(context.Background(), &models.Category{
		Title: "Travel", Slug: "travel", IsPublished: true,
	}))

	sessions := scs.New()

	postService := services.NewPostService(store.Posts(), store.Comments(), store.Categories(), store.Locations(), store.Users())
	commentService := services.NewCommentService(store.Comments(), store.Posts())
	userService := services.NewUserService(store.Users())

	templates := controllers.LoadTemplates("../..")
	mediaDir := t.TempDir()
	postController := controllers.NewPostController(postService, sessions, templates, mediaDir)
	commentController := controllers.NewCommentController(commentService, sessions, templates)
	userController := controllers.NewUserController(userService, sessions, templates)

	router := Setup(postController, commentController, userController, sessions, mediaDir)
	server := httptest.NewServer(sessions.LoadAndSave(router))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		// Redirects are asserted, not followed.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	return &testApp{store: store, server: server, client: client}
}

func (a *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := a.client.Get(a.server.URL + path)
	require.NoError(t, err)
	return resp
}

func (a *testApp) postForm(t *testing.T, path string, values url.Values) *http.Response {
	t.Helper()
	resp, err := a.client.PostForm(a.server.URL+path, values)
	require.NoError(t, err)
	return resp
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// signUp registers and logs in a user, returning their ID.
func (a *testApp) signUp(t *testing.T, username string) int {
	t.Helper()

	resp := a.postForm(t, "/auth/registration/", url.Values{
		"username": {username},
		"password": {"s3cretpass"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/auth/login/", resp.Header.Get("Location"))

	resp = a.postForm(t, "/auth/login/", url.Values{
		"username": {username},
		"password": {"s3cretpass"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/profile/"+username+"/", resp.Header.Get("Location"))

	user, err := a.store.Users().GetByUsername(context.Background(), username)
	require.NoError(t, err)
	return user.ID
}

func (a *testApp) logout(t *testing.T) {
	t.Helper()
	resp := a.postForm(t, "/auth/logout/", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func (a *testApp) seedPost(t *testing.T, authorID int, title string, published bool, pubDate time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:       title,
		Text:        "some text",
		PubDate:     pubDate,
		IsPublished: published,
		AuthorID:    authorID,
		CategoryID:  1,
	}
	require.NoError(t, a.store.Posts().Create(context.Background(), post))
	return post
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice")

	resp := app.get(t, "/profile/alice/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "alice")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice")
	app.logout(t)

	resp := app.postForm(t, "/auth/login/", url.Values{
		"username": {"alice"},
		"password": {"wrongpass"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "Invalid username or password")
}

func TestAnonymousRedirectedToLogin(t *testing.T) {
	app := newTestApp(t)
	id := app.seedPost(t, app.signUp(t, "alice"), "a post", true, time.Now().Add(-time.Hour)).ID
	app.logout(t)

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/posts/create/"},
		{"GET", "/posts/" + strconv.Itoa(id) + "/edit/"},
		{"GET", "/posts/" + strconv.Itoa(id) + "/delete/"},
		{"POST", "/posts/" + strconv.Itoa(id) + "/comment/"},
		{"GET", "/posts/" + strconv.Itoa(id) + "/comment/"},
		{"GET", "/profile/edit/"},
	}
	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			var resp *http.Response
			if p.method == "POST" {
				resp = app.postForm(t, p.path, url.Values{"text": {"hi"}})
			} else {
				resp = app.get(t, p.path)
			}
			resp.Body.Close()
			assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
			assert.Equal(t, "/auth/login/", resp.Header.Get("Location"))
		})
	}
}

func TestCreatePost(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.signUp(t, "alice")

	resp := app.postForm(t, "/posts/create/", url.Values{
		"title":        {"My trip"},
		"text":         {"It was great."},
		"pub_date":     {time.Now().Add(-time.Hour).Format(forms.PubDateLayout)},
		"category":     {"1"},
		"is_published": {"true"},
		// A forged author field must be ignored.
		"author": {"999"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/alice/", resp.Header.Get("Location"))

	resp = app.get(t, "/")
	assert.Contains(t, body(t, resp), "My trip")

	stored, err := app.store.Posts().GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, aliceID, stored.AuthorID)
}

func TestCreatePostInvalidReRenders(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice")

	resp := app.postForm(t, "/posts/create/", url.Values{
		"text":     {"no title"},
		"pub_date": {time.Now().Format(forms.PubDateLayout)},
		"category": {"1"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "This field is required.")
}

func TestHiddenPostVisibility(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.signUp(t, "alice")
	draft := app.seedPost(t, aliceID, "secret draft", false, time.Now().Add(-time.Hour))
	path := "/posts/" + strconv.Itoa(draft.ID) + "/"

	t.Run("author sees their own draft", func(t *testing.T) {
		resp := app.get(t, path)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body(t, resp), "secret draft")
	})

	t.Run("anonymous visitor gets 404", func(t *testing.T) {
		app.logout(t)
		resp := app.get(t, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("other users get 404", func(t *testing.T) {
		app.signUp(t, "bob")
		resp := app.get(t, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestNonOwnerEditRedirectsToDetail(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.signUp(t, "alice")
	post := app.seedPost(t, aliceID, "alice's post", true, time.Now().Add(-time.Hour))
	app.logout(t)
	app.signUp(t, "bob")

	detail := "/posts/" + strconv.Itoa(post.ID) + "/"
	for _, path := range []string{detail + "edit/", detail + "delete/"} {
		resp := app.get(t, path)
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, detail, resp.Header.Get("Location"))
	}
}

func TestEditPost(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.signUp(t, "alice")
	post := app.seedPost(t, aliceID, "old title", true, time.Now().Add(-time.Hour))
	path := "/posts/" + strconv.Itoa(post.ID) + "/edit/"

	resp := app.postForm(t, path, url.Values{
		"title":        {"new title"},
		"text":         {"updated text"},
		"pub_date":     {post.PubDate.Format(forms.PubDateLayout)},
		"category":     {"1"},
		"is_published": {"true"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	stored, err := app.store.Posts().GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "new title", stored.Title)
	assert.Equal(t, aliceID, stored.AuthorID)
}

func TestDeletePost(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.signUp(t, "alice")
	post := app.seedPost(t, aliceID, "doomed", true, time.Now().Add(-time.Hour))
	path := "/posts/" + strconv.Itoa(post.ID) + "/delete/"

	resp := app.get(t, path)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = app.postForm(t, path, nil)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/alice/", resp.Header.Get("Location"))

	resp = app.get(t, "/posts/"+strconv.Itoa(post.ID)+"/")
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCommentFlow(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.signUp(t, "alice")
	post := app.seedPost(t, aliceID, "a post", true, time.Now().Add(-time.Hour))
	app.logout(t)
	app.signUp(t, "bob")

	detail := "/posts/" + strconv.Itoa(post.ID) + "/"

	resp := app.postForm(t, detail+"comment/", url.Values{"text": {"great read"}})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, detail, resp.Header.Get("Location"))

	resp = app.get(t, detail)
	assert.Contains(t, body(t, resp), "great read")

	t.Run("author edits their comment", func(t *testing.T) {
		resp := app.postForm(t, detail+"comment/1/edit/", url.Values{"text": {"even better"}})
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		resp = app.get(t, detail)
		assert.Contains(t, body(t, resp), "even better")
	})

	t.Run("invalid comment redirects without storing", func(t *testing.T) {
		resp := app.postForm(t, detail+"comment/", url.Values{"text": {"   "}})
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, detail, resp.Header.Get("Location"))

		comments, err := app.store.Comments().ListByPost(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Len(t, comments, 1)
	})

	t.Run("non-owner edit redirects to detail", func(t *testing.T) {
		app.logout(t)
		app.postForm(t, "/auth/login/", url.Values{"username": {"alice"}, "password": {"s3cretpass"}}).Body.Close()

		resp := app.get(t, detail+"comment/1/edit/")
		resp.Body.Close()
		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, detail, resp.Header.Get("Location"))
	})

	t.Run("author deletes their comment", func(t *testing.T) {
		app.logout(t)
		app.postForm(t, "/auth/login/", url.Values{"username": {"bob"}, "password": {"s3cretpass"}}).Body.Close()

		resp := app.postForm(t, detail+"comment/1/delete/", nil)
		resp.Body.Close()
		require.Equal(t, http.StatusSeeOther, resp.StatusCode)

		comments, err := app.store.Comments().ListByPost(context.Background(), post.ID)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})
}

func TestCategoryPage(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.signUp(t, "alice")
	app.seedPost(t, aliceID, "travel story", true, time.Now().Add(-time.Hour))

	t.Run("published category lists posts", func(t *testing.T) {
		resp := app.get(t, "/category/travel/")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body(t, resp), "travel story")
	})

	t.Run("unknown category is 404", func(t *testing.T) {
		resp := app.get(t, "/category/nope/")
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestProfileEdit(t *testing.T) {
	app := newTestApp(t)
	app.signUp(t, "alice")

	resp := app.postForm(t, "/profile/edit/", url.Values{
		"username":   {"alice2"},
		"first_name": {"Alice"},
		"email":      {"alice@example.com"},
	})
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/profile/alice2/", resp.Header.Get("Location"))

	user, err := app.store.Users().GetByUsername(context.Background(), "alice2")
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.FirstName)
}

func TestOutOfRangePageStillRenders(t *testing.T) {
	app := newTestApp(t)
	aliceID := app.signUp(t, "alice")
	app.seedPost(t, aliceID, "only post", true, time.Now().Add(-time.Hour))

	resp := app.get(t, "/?page=99")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body(t, resp), "only post")
}
