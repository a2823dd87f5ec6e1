// Package http is the presentation collaborator: a thin JSON API over the
// core pipeline. It owns file acquisition (uploads), selection parameters and
// response shaping; all parsing and derivation happens in internal/core.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"condofin/internal/cache"
	"condofin/internal/config"
	"condofin/internal/core"
	"condofin/internal/dataset"
	applog "condofin/internal/log"
)

type Server struct {
	http.Server

	store  *dataset.Store
	logger *applog.Logger

	maxUploadBytes int64

	// Derived views are cached per (dataset version, year, selection).
	// Uploads bump the version, so stale entries are unreachable and just
	// age out.
	viewCache cache.Cache[core.DashboardView]
	janitor   *cache.Janitor
	limiter   *rateLimiter

	shutdownOnce sync.Once
}

// NewServer wires routes, middleware and the derived-view cache.
func NewServer(cfg *config.Config, store *dataset.Store, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	viewCache := cache.NewLRU[core.DashboardView](cfg.CacheMaxEntries, cfg.CacheTTL)
	janitor := cache.NewJanitor()
	janitor.Register(viewCache)
	janitor.Start(cfg.CacheTTL)

	s := &Server{
		Server: http.Server{
			Addr:    ":" + cfg.Port,
			Handler: mux,
		},
		store:          store,
		logger:         logger.WithComponent(applog.ComponentHTTP),
		maxUploadBytes: cfg.MaxUploadBytes,
		viewCache:      viewCache,
		janitor:        janitor,
		limiter:        newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/years", s.observe(s.handleYears))
	mux.HandleFunc("/api/dashboard", s.observe(s.handleDashboard))
	mux.HandleFunc("/upload/expenses", s.observe(s.handleUploadExpenses))
	mux.HandleFunc("/upload/funds", s.observe(s.handleUploadFunds))
	mux.HandleFunc("/upload/balances", s.observe(s.handleUploadBalances))

	return s
}

// Shutdown stops the HTTP server together with its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.janitor.Stop()
		s.limiter.stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

// observe adds security headers, request-scoped logging with a request ID,
// and rate limiting for mutating requests.
func (s *Server) observe(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		if r.Method == http.MethodPost && !s.limiter.allow(clientIP) {
			s.logger.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldRequestID, requestID,
				applog.FieldClientIP, clientIP,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Limite de requisições excedido. Tente novamente em instantes.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(rw, r)

		s.logger.InfoContext(ctx, "Request completed",
			applog.FieldRequestID, requestID,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldStatus, rw.status,
			applog.FieldDuration, time.Since(start).Milliseconds(),
			applog.FieldClientIP, clientIP)
	}
}

type requestIDKey struct{}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Simple per-IP rate limiter for uploads, 60 requests per minute.
type rateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientInfo
	stopOnce sync.Once
	quit     chan struct{}
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients: make(map[string]*clientInfo),
		quit:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, ok := rl.clients[clientIP]
	if !ok || now.Sub(client.lastRequest) > time.Minute {
		rl.clients[clientIP] = &clientInfo{lastRequest: now, requests: 1}
		return true
	}

	client.requests++
	client.lastRequest = now
	return client.requests <= 60
}

func (rl *rateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-10 * time.Minute)
			for ip, client := range rl.clients {
				if client.lastRequest.Before(cutoff) {
					delete(rl.clients, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.quit:
			return
		}
	}
}

func (rl *rateLimiter) stop() {
	rl.stopOnce.Do(func() { close(rl.quit) })
}

func viewCacheKey(version uint64, year int, sel core.MonthSelection) string {
	monthKey := -1
	if m, ok := sel.Month(); ok {
		monthKey = m
	}
	return fmt.Sprintf("%d:%d:%d", version, year, monthKey)
}
