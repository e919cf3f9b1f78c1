package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/zfinance/internal/domain/error"
	"github.com/finance-tracker/zfinance/internal/integration/entrypoint/dto"
)

type manualClock struct{ now time.Time }

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/import", rl.Middleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func send(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/import", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_Middleware(t *testing.T) {
	clock := &manualClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiterWithConfig(2, time.Minute, clock)
	router := newTestRouter(rl)

	t.Run("allows requests within the window", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if w := send(router, "10.0.0.1:1000"); w.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", w.Code)
			}
		}
	})

	t.Run("rejects once the window is exhausted", func(t *testing.T) {
		w := send(router, "10.0.0.1:1000")
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected status 429, got %d", w.Code)
		}

		var body dto.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Code != string(domainerror.ErrCodeRateLimited) {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeRateLimited, body.Code)
		}
	})

	t.Run("tracks clients separately", func(t *testing.T) {
		if w := send(router, "10.0.0.2:1000"); w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})

	t.Run("opens a new window after expiry", func(t *testing.T) {
		clock.Advance(time.Minute + time.Second)
		if w := send(router, "10.0.0.1:1000"); w.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", w.Code)
		}
	})
}

func TestRateLimiter_Disabled(t *testing.T) {
	clock := &manualClock{now: time.Now()}
	router := newTestRouter(NewRateLimiterWithConfig(0, time.Minute, clock))

	for i := 0; i < 50; i++ {
		if w := send(router, "10.0.0.1:1000"); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, w.Code)
		}
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	clock := &manualClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiterWithConfig(1, time.Minute, clock)

	if !rl.allow("a") {
		t.Fatal("expected first attempt to be allowed")
	}
	if rl.allow("a") {
		t.Fatal("expected second attempt to be rejected")
	}

	clock.Advance(30 * time.Second)
	rl.allow("b")
	clock.Advance(45 * time.Second)
	rl.Cleanup()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if _, ok := rl.entries["a"]; ok {
		t.Error("expected expired entry to be removed")
	}
	if _, ok := rl.entries["b"]; !ok {
		t.Error("expected live entry to be kept")
	}
}

func TestNewRateLimiter_Defaults(t *testing.T) {
	rl := NewRateLimiter(&manualClock{})
	if rl.maxAttempts != defaultMaxAttempts {
		t.Errorf("expected %d attempts, got %d", defaultMaxAttempts, rl.maxAttempts)
	}
	if rl.windowDuration != defaultWindowDuration {
		t.Errorf("expected %v window, got %v", defaultWindowDuration, rl.windowDuration)
	}
}

func TestRateLimiter_SweepRemovesExpiredEntries(t *testing.T) {
	clock := &manualClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiterWithConfig(1, time.Minute, clock)
	rl.allow("a")
	clock.Advance(2 * time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rl.Sweep(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		rl.mu.Lock()
		n := len(rl.entries)
		rl.mu.Unlock()
		if n == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected the sweep to remove the expired entry, got %d entries", n)
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("expected the sweep to stop when the context is cancelled")
	}
}
