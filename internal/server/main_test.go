package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"myboard/internal/config"
	"myboard/internal/models"
	"myboard/internal/repository"
	"myboard/internal/service"
	"myboard/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	server *Server
	app    *fiber.App
	db     *gorm.DB
}

// newTestEnv wires a Server against sqlite and miniredis, with routes but
// without the production middleware stack. Only ResolveSession is installed,
// since the handlers under test depend on it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}, &models.Post{}, &models.Friend{}))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Config{
		SessionSecret:   "test-secret",
		SessionTTLHours: 1,
		UploadDir:       t.TempDir(),
		ViewsDir:        "../../views",
		Env:             "test",
	}

	accountRepo := repository.NewAccountRepository(db)
	friendRepo := repository.NewFriendRepository(db)
	postRepo := repository.NewPostRepository(db)

	s := &Server{
		config:      cfg,
		db:          db,
		redis:       rdb,
		sessions:    session.NewManager(rdb, cfg.SessionSecret, time.Hour),
		accountRepo: accountRepo,
		friendRepo:  friendRepo,
		postRepo:    postRepo,
	}
	s.authService = service.NewAuthService(accountRepo)
	s.feedService = service.NewFeedService(postRepo, friendRepo)
	s.postService = service.NewPostService(postRepo)
	s.friendService = service.NewFriendService(friendRepo, accountRepo)

	app := fiber.New(fiber.Config{
		Views: html.New(cfg.ViewsDir, ".html"),
	})
	app.Use(s.ResolveSession())
	s.SetupRoutes(app)

	return &testEnv{server: s, app: app, db: db}
}

// signup creates an account directly through the service layer.
func (e *testEnv) signup(t *testing.T, userID, password string) {
	t.Helper()
	_, err := e.server.authService.Signup(context.Background(), userID, password, "member", userID+"@example.com")
	require.NoError(t, err)
}

// login performs a form login and returns the session cookie value.
func (e *testEnv) login(t *testing.T, userID, password string) string {
	t.Helper()

	resp := e.postForm(t, "/login", url.Values{
		"userid": {userID},
		"userpw": {password},
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			require.NotEmpty(t, c.Value)
			return c.Value
		}
	}
	t.Fatal("no session cookie set")
	return ""
}

func (e *testEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) delete(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}
	resp, err := e.app.Test(req)
	require.NoError(t, err)
	return resp
}

func bodyOf(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}
