package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"shopfront/internal/app/config"
	"shopfront/internal/app/ds"
	"shopfront/internal/app/metrics"
	"shopfront/internal/app/middleware"
	"shopfront/internal/app/order"
	"shopfront/internal/app/repository"
	"shopfront/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingStore keeps blobs in memory and logs every write and delete in call order.
type recordingStore struct {
	*storage.LocalStore
	mu  sync.Mutex
	ops []string
}

func (s *recordingStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	s.record("put " + key)
	return s.LocalStore.Put(ctx, key, r, size, contentType)
}

func (s *recordingStore) Delete(ctx context.Context, key string) error {
	s.record("delete " + key)
	return s.LocalStore.Delete(ctx, key)
}

func (s *recordingStore) record(op string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops = append(s.ops, op)
}

func (s *recordingStore) Ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

type testServer struct {
	router  *gin.Engine
	repo    *repository.Repository
	blobs   *recordingStore
	handler *Handler
	session *http.Cookie
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	repo, err := repository.FromDB(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	cfg := &config.Config{
		Admin: config.AdminConfig{Username: "admin", Password: "secret"},
		JWT: config.JWTConfig{
			Token:         "test-signing-key",
			ExpiresIn:     time.Hour,
			SigningMethod: jwt.SigningMethodHS256,
		},
	}

	composer := order.NewComposer(order.Settings{
		ShopName:       "Mess Ranchi",
		Contact:        "+918969161759",
		Currency:       "₹",
		DefaultPayment: "Online",
		Location:       time.UTC,
	}).WithClock(func() time.Time {
		return time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC)
	})

	blobs := &recordingStore{LocalStore: storage.NewFsStore(afero.NewMemMapFs())}
	h := NewHandler(repo, blobs, middleware.NewAuthMiddleware(nil, cfg), composer, metrics.New())

	r := gin.New()
	h.RegisterStatic(r)
	h.RegisterRoutes(r)

	return &testServer{router: r, repo: repo, blobs: blobs, handler: h}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	if s.session != nil {
		req.AddCookie(s.session)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

type upload struct {
	field    string
	filename string
	content  string
}

func (s *testServer) postMultipart(t *testing.T, path string, fields map[string]string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return s.do(req)
}

// login signs in as the configured admin and keeps the session cookie for later requests.
func (s *testServer) login(t *testing.T) {
	t.Helper()
	w := s.postForm("/admin", url.Values{"username": {"admin"}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, panelPath, w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			s.session = c
			return
		}
	}
	t.Fatal("no session cookie")
}

type fixture struct {
	category    *ds.Category
	subcategory *ds.Subcategory
	service     *ds.Service
	variant     *ds.Variant
}

func (s *testServer) seed(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	category, err := s.repo.CreateCategory(ctx, "Cleaning Services")
	require.NoError(t, err)
	sub, err := s.repo.CreateSubcategory(ctx, category.ID, "Home Cleaning")
	require.NoError(t, err)
	service, err := s.repo.CreateService(ctx, sub.ID, repository.ServiceFields{
		Name:        "Basic Cleaning",
		Description: "Dusting and vacuuming",
		Available:   true,
	})
	require.NoError(t, err)
	variant, err := s.repo.CreateVariant(ctx, service.ID, repository.VariantFields{
		Name:      "1 Bedroom",
		Price:     1500,
		Unit:      ds.DefaultVariantUnit,
		Available: true,
	})
	require.NoError(t, err)

	return fixture{category: category, subcategory: sub, service: service, variant: variant}
}
