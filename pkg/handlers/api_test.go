package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"burger-blog/pkg/handlers"
	"burger-blog/pkg/models"
	"burger-blog/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addCall struct {
	postSlug string
	userID   string
	content  string
}

// fakeCommentStore records every call so tests can assert that rejected
// requests never reach the store.
type fakeCommentStore struct {
	comments []models.Comment
	addCalls []addCall
	listErr  error
}

func (f *fakeCommentStore) ListByPost(ctx context.Context, postSlug string) ([]models.Comment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.comments, nil
}

func (f *fakeCommentStore) Add(ctx context.Context, postSlug, userID, content string) (models.Comment, error) {
	f.addCalls = append(f.addCalls, addCall{postSlug: postSlug, userID: userID, content: content})
	return models.Comment{
		ID:      int64(len(f.addCalls)),
		Content: content,
		User:    models.CommentAuthor{Name: "Tester"},
	}, nil
}

type fakeProfileStore struct{}

func (fakeProfileStore) Upsert(ctx context.Context, profile models.Profile) error { return nil }

func newTestRouter(api *handlers.API, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(sessions.Sessions("testsession", cookie.NewStore([]byte("test-secret"))))
	if userID != "" {
		r.Use(func(c *gin.Context) {
			sessions.Default(c).Set("user_id", userID)
			c.Next()
		})
	}

	r.GET("/api/posts", api.ListPosts)
	r.GET("/api/posts/:slug", api.GetPost)
	r.GET("/api/comments", api.ListComments)
	r.POST("/api/comments", api.CreateComment)

	admin := r.Group("/api/admin")
	admin.Use(handlers.AuthRequired)
	admin.GET("/stats", api.AdminStats)

	return r
}

func newTestAPI(t *testing.T, store *fakeCommentStore) *handlers.API {
	t.Helper()
	dir := t.TempDir()
	content := "---\ntitle: Big Smoky\ndate: 2024-02-01\ncategories:\n  - reviews\nratings:\n  geschmack: 8\n  preis: 6\n---\nA fine burger.\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big-smoky.mdx"), []byte(content), 0644))
	return handlers.NewAPI(services.NewPostRepository(dir), store, fakeProfileStore{})
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListPosts(t *testing.T) {
	api := newTestAPI(t, &fakeCommentStore{})
	r := newTestRouter(api, "")

	w := doJSON(r, http.MethodGet, "/api/posts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"big-smoky"`)
	assert.Contains(t, w.Body.String(), `"overall":7`)
	assert.NotContains(t, w.Body.String(), "A fine burger.")
}

func TestGetPost(t *testing.T) {
	store := &fakeCommentStore{comments: []models.Comment{{ID: 1, Content: "Looks tasty"}}}
	api := newTestAPI(t, store)
	r := newTestRouter(api, "")

	w := doJSON(r, http.MethodGet, "/api/posts/big-smoky", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Post     models.Post      `json:"post"`
		HTML     string           `json:"html"`
		Overall  float64          `json:"overall"`
		Comments []models.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A fine burger.", resp.Post.Content)
	assert.Equal(t, "<p>A fine burger.</p>\n", resp.HTML)
	assert.Equal(t, 7.0, resp.Overall)
	require.Len(t, resp.Comments, 1)
	assert.Equal(t, "Looks tasty", resp.Comments[0].Content)
}

func TestGetPostNotFound(t *testing.T) {
	api := newTestAPI(t, &fakeCommentStore{})
	r := newTestRouter(api, "")

	w := doJSON(r, http.MethodGet, "/api/posts/missing-slug", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListCommentsRequiresSlug(t *testing.T) {
	api := newTestAPI(t, &fakeCommentStore{})
	r := newTestRouter(api, "")

	w := doJSON(r, http.MethodGet, "/api/comments", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCommentUnauthenticated(t *testing.T) {
	store := &fakeCommentStore{}
	api := newTestAPI(t, store)
	r := newTestRouter(api, "")

	w := doJSON(r, http.MethodPost, "/api/comments", `{"content":"Great!","postSlug":"big-smoky"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, store.addCalls, "no store call without a session")
}

func TestCreateCommentValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty content", `{"content":"","postSlug":"big-smoky"}`},
		{"missing slug", `{"content":"Great!"}`},
		{"content too long", `{"content":"` + strings.Repeat("a", 1001) + `","postSlug":"big-smoky"}`},
		{"not json", `not json`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeCommentStore{}
			api := newTestAPI(t, store)
			r := newTestRouter(api, "user-42")

			w := doJSON(r, http.MethodPost, "/api/comments", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, store.addCalls, "no store call on invalid input")
		})
	}
}

func TestCreateComment(t *testing.T) {
	store := &fakeCommentStore{}
	api := newTestAPI(t, store)
	r := newTestRouter(api, "user-42")

	w := doJSON(r, http.MethodPost, "/api/comments", `{"content":"Great burger!","postSlug":"big-smoky"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Great burger!")

	require.Len(t, store.addCalls, 1)
	assert.Equal(t, addCall{postSlug: "big-smoky", userID: "user-42", content: "Great burger!"}, store.addCalls[0])
}

func TestAdminStatsRequiresSession(t *testing.T) {
	api := newTestAPI(t, &fakeCommentStore{})

	w := doJSON(newTestRouter(api, ""), http.MethodGet, "/api/admin/stats", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(newTestRouter(api, "user-42"), http.MethodGet, "/api/admin/stats", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"posts":1`)
	assert.Contains(t, w.Body.String(), `"categories":1`)
}
