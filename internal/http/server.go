package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/AnirbanSinha27/Spendly/internal/cache"
	"github.com/AnirbanSinha27/Spendly/internal/core"
	applog "github.com/AnirbanSinha27/Spendly/internal/log"
	"github.com/AnirbanSinha27/Spendly/internal/services"
)

// Options tunes the server's derived-view caches.
type Options struct {
	CacheMaxSize int
	CacheTTL     time.Duration
}

// DefaultOptions returns the cache settings used when none are provided.
func DefaultOptions() Options {
	return Options{
		CacheMaxSize: 100,
		CacheTTL:     30 * time.Second,
	}
}

type Server struct {
	http.Server
	ledger      *services.LedgerService
	rateLimiter *rateLimiter
	metrics     *securityMetrics
	structLog   *applog.StructuredLogger

	// Derived dashboard views are cached per month and purged on any
	// ledger mutation.
	summaryCache   *cache.LRUCache[core.MonthlySummary]
	breakdownCache *cache.LRUCache[[]core.CategorySpend]
	cacheManager   *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run http.Server.
func NewServer(addr string, ledger *services.LedgerService, opts Options) *Server {
	if opts.CacheMaxSize <= 0 {
		opts.CacheMaxSize = DefaultOptions().CacheMaxSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultOptions().CacheTTL
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		ledger:         ledger,
		rateLimiter:    newRateLimiter(),
		metrics:        &securityMetrics{},
		structLog:      applog.NewStructuredLogger(applog.FromContext(context.Background()).WithComponent(applog.ComponentHTTP)),
		summaryCache:   cache.NewLRUCache[core.MonthlySummary](opts.CacheMaxSize, opts.CacheTTL),
		breakdownCache: cache.NewLRUCache[[]core.CategorySpend](opts.CacheMaxSize, opts.CacheTTL),
		cacheManager:   cache.NewManager(),
	}

	s.cacheManager.Register(s.summaryCache)
	s.cacheManager.Register(s.breakdownCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	mux.HandleFunc("GET /api/transactions", s.withSecurityHeaders(s.handleListTransactions))
	mux.HandleFunc("POST /api/transactions", s.withSecurityHeaders(s.handleCreateTransaction))
	mux.HandleFunc("PUT /api/transactions/{id}", s.withSecurityHeaders(s.handleUpdateTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withSecurityHeaders(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/budgets", s.withSecurityHeaders(s.handleListBudgets))
	mux.HandleFunc("POST /api/budgets", s.withSecurityHeaders(s.handleSetBudget))

	mux.HandleFunc("GET /api/categories", s.withSecurityHeaders(s.handleListCategories))

	mux.HandleFunc("GET /api/dashboard/summary", s.withSecurityHeaders(s.handleSummary))
	mux.HandleFunc("GET /api/dashboard/breakdown", s.withSecurityHeaders(s.handleBreakdown))
	mux.HandleFunc("GET /api/dashboard/series", s.withSecurityHeaders(s.handleSeries))
	mux.HandleFunc("GET /api/dashboard/budgets", s.withSecurityHeaders(s.handleBudgetStatuses))
	mux.HandleFunc("GET /api/dashboard/variance", s.withSecurityHeaders(s.handleVariance))

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// invalidateDerived drops every cached dashboard view. Called after each
// successful mutation so reads never serve stale aggregates.
func (s *Server) invalidateDerived() {
	s.summaryCache.Purge()
	s.breakdownCache.Purge()
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		s.structLog.LogHTTPStart(ctx, r, clientIP)

		// Mutations are rate limited; reads are not.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(clientIP, s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		s.structLog.LogHTTPEnd(ctx, r, rw.statusCode, duration.Milliseconds(), clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
