package handler_test

// Shared fixtures for the handler tests: in-memory implementations of the
// store interfaces mirroring the repository contracts (slot uniqueness,
// ordering, sentinel errors) and a fully wired echo server driven through
// ServeHTTP, so the tests cover routing, middleware and handlers together.

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/gspotbarber/barbershop-booking/internal/config"
	"github.com/gspotbarber/barbershop-booking/internal/handler"
	"github.com/gspotbarber/barbershop-booking/internal/middleware"
	"github.com/gspotbarber/barbershop-booking/internal/model"
	"github.com/gspotbarber/barbershop-booking/internal/repository"
	"github.com/gspotbarber/barbershop-booking/internal/router"
	queue_publisher "github.com/gspotbarber/barbershop-booking/internal/service"
	"github.com/gspotbarber/barbershop-booking/internal/session"
	"github.com/gspotbarber/barbershop-booking/internal/utils"
)

const (
	testSecret   = "test-secret"
	testPassword = "barber2024"
)

// ---- fake stores ----

type fakeServiceStore struct {
	services []model.Service
	err      error
}

func (s *fakeServiceStore) List(context.Context) ([]model.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := append([]model.Service(nil), s.services...)
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[string]*model.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[string]*model.Booking)}
}

func (s *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.bookings {
		if other.Date == b.Date && other.Time == b.Time && other.Status != model.StatusCancelled {
			return repository.ErrSlotTaken
		}
	}
	b.ID = uuid.New().String()
	b.Status = model.StatusPending
	b.CreatedAt = time.Now().UTC()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *fakeBookingStore) BookedTimes(_ context.Context, date string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	times := []string{}
	for _, b := range s.bookings {
		if b.Date == date && b.Status != model.StatusCancelled {
			times = append(times, b.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

func (s *fakeBookingStore) ListAll(context.Context) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Booking{}
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

func (s *fakeBookingStore) GetByID(_ context.Context, id string) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) UpdateStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	b.Status = status
	return nil
}

func (s *fakeBookingStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.bookings, id)
	return nil
}

type fakeAdminStore struct {
	mu    sync.Mutex
	admin model.Admin
}

func newFakeAdminStore(t *testing.T) *fakeAdminStore {
	t.Helper()
	hash, err := utils.HashPassword(testPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash admin password: %v", err)
	}
	return &fakeAdminStore{admin: model.Admin{ID: 1, Username: "admin", PasswordHash: hash}}
}

func (s *fakeAdminStore) GetByUsername(_ context.Context, username string) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if username != s.admin.Username {
		return nil, repository.ErrNotFound
	}
	cp := s.admin
	return &cp, nil
}

func (s *fakeAdminStore) GetByID(_ context.Context, id int64) (*model.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.admin.ID {
		return nil, repository.ErrNotFound
	}
	cp := s.admin
	return &cp, nil
}

func (s *fakeAdminStore) UpdatePassword(_ context.Context, id int64, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.admin.ID {
		return repository.ErrNotFound
	}
	s.admin.PasswordHash = hash
	return nil
}

// ---- wired test server ----

type testEnv struct {
	e        *echo.Echo
	services *fakeServiceStore
	bookings *fakeBookingStore
	admins   *fakeAdminStore
	sessions session.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		SessionSecret:   testSecret,
		SessionTTLHours: 24,
		BcryptCost:      bcrypt.MinCost,
	}
	env := &testEnv{
		e: echo.New(),
		services: &fakeServiceStore{services: []model.Service{
			{ID: 2, Name: "Barzdos modeliavimas", Price: 25, DurationMin: 30, SortOrder: 2},
			{ID: 1, Name: "Plaukų kirpimas", Price: 25, DurationMin: 30, SortOrder: 1},
		}},
		bookings: newFakeBookingStore(),
		admins:   newFakeAdminStore(t),
		sessions: session.NewMemoryStore(),
	}

	events := queue_publisher.New("") // publishing disabled in tests

	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	requireAdmin := middleware.RequireAdmin(cfg.SessionSecret, ttl, env.sessions)
	noCache := middleware.NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	router.RegisterRoutes(env.e)
	router.RegisterPublic(env.e, handler.NewServiceHandler(env.services), handler.NewBookingHandler(env.bookings, events), noCache)
	router.RegisterAdmin(env.e, handler.NewAuthHandler(cfg, env.admins, env.sessions), handler.NewAdminBookingHandler(env.bookings, events), requireAdmin)
	return env
}

func (env *testEnv) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// login authenticates with the default credentials and returns the session cookie.
func (env *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"`+testPassword+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return m
}
