package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferrovia/muselib/internal/shared"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequestLogger(t *testing.T) {
	logger := shared.NewLogger(io.Discard)
	handler := RequestLogger(logger)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id header to be set")
	}
}

func TestRecover(t *testing.T) {
	logger := shared.NewLogger(io.Discard)
	handler := Recover(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 after panic, got %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	t.Run("ReflectsOrigin", func(t *testing.T) {
		handler := CORS()(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
			t.Errorf("expected reflected origin, got %q", got)
		}
	})

	t.Run("Preflight", func(t *testing.T) {
		called := false
		handler := CORS()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/users/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 preflight, got %d", rec.Code)
		}
		if called {
			t.Error("preflight should not reach the next handler")
		}
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("EnforcesBurst", func(t *testing.T) {
		handler := RateLimit(1, 2)(okHandler())

		codes := []int{}
		for range 3 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			codes = append(codes, rec.Code)
		}

		if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
			t.Errorf("expected first two requests to pass, got %v", codes)
		}
		if codes[2] != http.StatusTooManyRequests {
			t.Errorf("expected third request to be limited, got %v", codes)
		}
	})

	t.Run("ZeroRateDisablesLimiting", func(t *testing.T) {
		handler := RateLimit(0, 0)(okHandler())

		for range 3 {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200 with limiting disabled, got %d", rec.Code)
			}
		}
	})
}

func TestRouterMiddlewareOrder(t *testing.T) {
	router := NewBasicRouter()

	order := []string{}
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	router.Use(tag("outer"), tag("inner"))
	router.Handle("GET /ping", okHandler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if len(order) != 2 || order[0] != "outer" || order[1] != "inner" {
		t.Errorf("expected outer then inner, got %v", order)
	}
}
