package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"computer-club/internal/config"
	"computer-club/internal/handler"
	"computer-club/internal/middleware"
	"computer-club/internal/model"
	"computer-club/internal/repository"
	"computer-club/internal/service"
	"computer-club/internal/utils"
)

const testSecret = "router-test-secret"

// rosterRepo serves a fixed set of workstations; writes are accepted
// and dropped since the routing tests only read.
type rosterRepo struct {
	items []model.Computer
}

func (r *rosterRepo) Save(context.Context, model.Computer) error   { return nil }
func (r *rosterRepo) Update(context.Context, model.Computer) error { return nil }
func (r *rosterRepo) Delete(context.Context, uuid.UUID) error      { return nil }

func (r *rosterRepo) FindByID(_ context.Context, id uuid.UUID) (model.Computer, error) {
	for _, c := range r.items {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Computer{}, repository.ErrNotFound
}

func (r *rosterRepo) FindAll(context.Context) ([]model.Computer, error) {
	return append([]model.Computer(nil), r.items...), nil
}

func (r *rosterRepo) FindByNumber(_ context.Context, number int) (model.Computer, error) {
	for _, c := range r.items {
		if c.Number == number {
			return c, nil
		}
	}
	return model.Computer{}, repository.ErrNotFound
}

func (r *rosterRepo) FindByStatus(_ context.Context, status model.ComputerStatus) ([]model.Computer, error) {
	out := make([]model.Computer, 0)
	for _, c := range r.items {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCachedAdminAPI(t *testing.T) *echo.Echo {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cacheCfg := config.CacheConfig{
		Enabled:      true,
		Methods:      map[string]bool{"GET": true},
		TTL:          time.Minute,
		KeyStrategy:  "route_query",
		Prefix:       "cache",
		MaxBodyBytes: 1 << 20,
	}

	repo := &rosterRepo{items: []model.Computer{
		{ID: uuid.New(), Number: 1, Type: model.TypeStandard, Status: model.StatusFree},
	}}

	e := echo.New()
	RegisterAdmin(e, testSecret,
		middleware.NewRedisCache(cacheCfg, rdb),
		handler.NewComputerHandler(service.NewComputerService(repo)),
		handler.NewClientHandler(nil),
		handler.NewTariffHandler(nil),
		handler.NewSessionHandler(nil),
		handler.NewPaymentHandler(nil),
	)
	return e
}

func adminGet(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/computers", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// A cached admin response must never be replayed to a caller that has
// not passed authentication.
func TestAdminCacheRunsBehindAuth(t *testing.T) {
	e := newCachedAdminAPI(t)

	tok, err := utils.NewAccessToken(testSecret, uuid.New(), "ADMIN", 15)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	// First authenticated read populates the cache.
	rec := adminGet(e, tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated list: got %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got != "MISS" {
		t.Errorf("first read X-Cache: got %q, want MISS", got)
	}

	// Second authenticated read is served from cache.
	rec = adminGet(e, tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("cached list: got %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got != "HIT" {
		t.Errorf("second read X-Cache: got %q, want HIT", got)
	}

	// An anonymous request for the same URL is rejected by auth and
	// must not see the cached roster.
	rec = adminGet(e, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list: got %d, want 401", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got == "HIT" {
		t.Error("anonymous request was served from the cache")
	}
	if strings.Contains(rec.Body.String(), "items") {
		t.Errorf("anonymous response leaked the roster: %s", rec.Body.String())
	}
}

// A token without the ADMIN role is rejected before the cache as well.
func TestAdminCacheRunsBehindRoleCheck(t *testing.T) {
	e := newCachedAdminAPI(t)

	admin, err := utils.NewAccessToken(testSecret, uuid.New(), "ADMIN", 15)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	if rec := adminGet(e, admin.Token); rec.Code != http.StatusOK {
		t.Fatalf("authenticated list: got %d, want 200", rec.Code)
	}

	guest, err := utils.NewAccessToken(testSecret, uuid.New(), "GUEST", 15)
	if err != nil {
		t.Fatalf("issue guest token: %v", err)
	}
	rec := adminGet(e, guest.Token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("guest list: got %d, want 403", rec.Code)
	}
	if got := rec.Header().Get("X-Cache"); got == "HIT" {
		t.Error("guest request was served from the cache")
	}
}
