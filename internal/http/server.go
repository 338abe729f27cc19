package http

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"retiresaveup/internal/cache"
	"retiresaveup/internal/core"
	"retiresaveup/internal/log"
	"retiresaveup/internal/middleware/ratelimit"
	"retiresaveup/internal/middleware/security"
	"retiresaveup/internal/middleware/trace"
)

// HistoryRecorder is what the API needs from the calculation history.
type HistoryRecorder interface {
	Record(ctx context.Context, userID string, vehicle core.Vehicle, payload core.ReturnsInput, result core.ReturnsResult) (core.CalculationRecord, error)
	List(ctx context.Context, userID string, limit int) ([]core.CalculationRecord, error)
	Get(ctx context.Context, id string) (core.CalculationRecord, error)
	Ping(ctx context.Context) error
}

// Options configures NewServer. Zero values fall back to defaults.
type Options struct {
	Addr               string
	APIPrefix          string
	AllowedOrigins     []string
	RateLimitPerMinute int
	CacheSize          int
	CacheTTL           time.Duration
	CacheCleanup       time.Duration
	Logger             *log.Logger
}

type Server struct {
	http.Server
	history    HistoryRecorder
	apiPrefix  string
	logger     *log.Logger
	structured *log.StructuredLogger
	startedAt  time.Time

	returnsCache *cache.LRUCache[core.ReturnsResult]
	cacheManager *cache.Manager
	limiter      *ratelimit.Limiter
	tracer       *trace.Middleware
	detector     *security.Detector

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(opts Options, history HistoryRecorder) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/blackrock/challenge/v1"
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	if opts.CacheCleanup <= 0 {
		opts.CacheCleanup = opts.CacheTTL
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	logger := opts.Logger.WithComponent(log.ComponentHTTP)
	s := &Server{
		history:      history,
		apiPrefix:    opts.APIPrefix,
		logger:       logger,
		structured:   log.NewStructuredLogger(opts.Logger.WithComponent(log.ComponentReturns)),
		startedAt:    time.Now(),
		returnsCache: cache.NewLRUCache[core.ReturnsResult](opts.CacheSize, opts.CacheTTL),
		cacheManager: cache.NewManager(opts.Logger),
		limiter:      ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector:     security.NewDetector(),
	}
	s.tracer = trace.NewMiddleware(opts.Logger, s.detector.ExtractClientIP)

	s.cacheManager.Register(s.returnsCache)
	s.cacheManager.StartCleanup(opts.CacheCleanup)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.buildHandler(s.routes(), opts.AllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(handleNotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(handleMethodNotAllowed)

	router.HandleFunc("/healthz", handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)
	router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)

	// API routes sit on the root router with the prefix spelled out. A
	// subrouter answers a method mismatch with 404 instead of 405.
	p := s.apiPrefix
	router.HandleFunc(p+"/transactions:parse", s.handleParse).Methods(http.MethodPost)
	router.HandleFunc(p+"/transactions:validator", s.handleValidate).Methods(http.MethodPost)
	router.HandleFunc(p+"/transactions:filter", s.handleFilter).Methods(http.MethodPost)
	router.HandleFunc(p+"/returns:{vehicle}", s.handleReturns).Methods(http.MethodPost)
	router.HandleFunc(p+"/history", s.handleListHistory).Methods(http.MethodGet)
	router.HandleFunc(p+"/history/{id}", s.handleGetHistory).Methods(http.MethodGet)
	router.HandleFunc(p+"/performance", s.handlePerformance).Methods(http.MethodGet)

	return router
}

// buildHandler wraps the router, outermost first: tracing, suspicious
// request logging, security headers, CORS, then POST rate limiting.
func (s *Server) buildHandler(router http.Handler, origins []string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", HeaderUserID, trace.HeaderRequestID},
		ExposedHeaders: []string{trace.HeaderRequestID, "Retry-After"},
		MaxAge:         600,
	})

	limited := s.limiter.Middleware(s.detector.ExtractClientIP, ratelimit.OnlyMethods(http.MethodPost), s.onRateLimited)(router)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	return s.tracer.Middleware(s.detector.Middleware(headers.Middleware(c.Handler(limited))))
}

func (s *Server) onRateLimited(w http.ResponseWriter, r *http.Request) {
	clientIP := s.detector.ExtractClientIP(r)
	retry := int(s.limiter.RetryAfter(clientIP).Seconds() + 0.5)
	if retry < 1 {
		retry = 1
	}
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, clientIP,
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	TooManyRequestsError(strconv.Itoa(retry)).Write(w)
}

// Shutdown gracefully shuts down the server and its background routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError("no route for " + r.URL.Path).Write(w)
}

func handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	MethodNotAllowedError().Write(w)
}
