package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sangkips/trademarket-api/internal/config"
	"github.com/sangkips/trademarket-api/internal/infrastructure/repository"
	"github.com/sangkips/trademarket-api/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func serve(router *gin.Engine, method, path, remoteAddr string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClientRateLimiter(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Hour,
		EntryTTL:          time.Hour,
	})
	defer rl.Close()

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for i := 0; i < 2; i++ {
		if w := serve(router, http.MethodGet, "/ping", "192.0.2.1:1000", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i+1, w.Code)
		}
	}

	w := serve(router, http.MethodGet, "/ping", "192.0.2.1:1000", nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", w.Code)
	}
	if w.Header().Get("X-RateLimit-Remaining") != "0" || w.Header().Get("Retry-After") != "1" {
		t.Errorf("headers = %v", w.Header())
	}

	if w := serve(router, http.MethodGet, "/ping", "198.51.100.7:1000", nil); w.Code != http.StatusOK {
		t.Errorf("other client = %d, want 200", w.Code)
	}
	if n := rl.ActiveClients(); n != 2 {
		t.Errorf("ActiveClients() = %d, want 2", n)
	}
}

func TestClientRateLimiterCleanup(t *testing.T) {
	rl := NewClientRateLimiter(RateLimiterConfig{RequestsPerSecond: 1, BurstSize: 1, CleanupInterval: time.Hour, EntryTTL: time.Minute})
	defer rl.Close()

	rl.getLimiter("old")
	rl.limiters["old"].lastSeen = time.Now().Add(-2 * time.Minute)
	rl.getLimiter("fresh")

	rl.cleanup()
	if _, ok := rl.limiters["old"]; ok {
		t.Error("stale entry not removed")
	}
	if _, ok := rl.limiters["fresh"]; !ok {
		t.Error("fresh entry removed")
	}
}

func TestRateLimiterConfigFrom(t *testing.T) {
	cfg := RateLimiterConfigFrom(&config.RateLimitConfig{Requests: 120, Duration: 60})
	if cfg.RequestsPerSecond != 2 || cfg.BurstSize != 120 {
		t.Errorf("config = %+v", cfg)
	}

	def := RateLimiterConfigFrom(&config.RateLimitConfig{})
	if def.BurstSize != 100 || def.RequestsPerSecond <= 0 {
		t.Errorf("default config = %+v", def)
	}
}

func TestIdempotency(t *testing.T) {
	db := testutil.NewTestDB(t)
	calls := 0

	router := gin.New()
	router.POST("/things", Idempotency(IdempotencyConfig{
		Repo:   repository.NewIdempotencyRepository(db),
		Logger: zerolog.Nop(),
	}), func(c *gin.Context) {
		calls++
		if c.Query("fail") != "" {
			c.String(http.StatusBadRequest, "nope")
			return
		}
		c.JSON(http.StatusOK, gin.H{"call": calls})
	})

	key := map[string]string{IdempotencyKeyHeader: "k-1"}

	first := serve(router, http.MethodPost, "/things", "", key)
	second := serve(router, http.MethodPost, "/things", "", key)
	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
	if second.Body.String() != first.Body.String() || second.Code != http.StatusOK {
		t.Errorf("replay = %d %q, want %q", second.Code, second.Body.String(), first.Body.String())
	}
	if second.Header().Get(IdempotencyReplayedHeader) != "true" {
		t.Error("replay not marked")
	}

	serve(router, http.MethodPost, "/things", "", nil)
	serve(router, http.MethodPost, "/things", "", nil)
	if calls != 3 {
		t.Errorf("handler ran %d times without key, want 3", calls)
	}

	failKey := map[string]string{IdempotencyKeyHeader: "k-2"}
	serve(router, http.MethodPost, "/things?fail=1", "", failKey)
	serve(router, http.MethodPost, "/things?fail=1", "", failKey)
	if calls != 5 {
		t.Errorf("failed responses were replayed, handler ran %d times, want 5", calls)
	}
}

func TestLoggerMiddlewareRequestID(t *testing.T) {
	router := gin.New()
	router.Use(LoggerMiddleware(zerolog.Nop()))
	router.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := serve(router, http.MethodGet, "/id", "", map[string]string{RequestIDHeader: "req-42"})
	if w.Header().Get(RequestIDHeader) != "req-42" || w.Body.String() != "req-42" {
		t.Errorf("propagated id = %q / %q", w.Header().Get(RequestIDHeader), w.Body.String())
	}

	w = serve(router, http.MethodGet, "/id", "", nil)
	if len(w.Header().Get(RequestIDHeader)) != 36 {
		t.Errorf("generated id = %q, want a uuid", w.Header().Get(RequestIDHeader))
	}
}

func TestWithHeader(t *testing.T) {
	headers := withHeader([]string{"Accept"}, IdempotencyKeyHeader)
	if len(headers) != 2 || headers[1] != IdempotencyKeyHeader {
		t.Errorf("withHeader() = %v", headers)
	}
	if got := withHeader(headers, IdempotencyKeyHeader); len(got) != 2 {
		t.Errorf("duplicate header added: %v", got)
	}
}
