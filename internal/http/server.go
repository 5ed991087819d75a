package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"

	"finvault/internal/core"
	"finvault/internal/insights"
	applog "finvault/internal/log"
	"finvault/internal/middleware/ratelimit"
	"finvault/internal/middleware/security"
	"finvault/internal/middleware/trace"
	"finvault/internal/services"
	"finvault/internal/tax"
)

// Auth is the signup, signin and token surface of services.AuthService.
type Auth interface {
	TokenParser
	Signup(ctx context.Context, name, email, password string) (core.User, error)
	Signin(ctx context.Context, email, password string) (string, core.User, error)
}

type Ledger interface {
	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error

	ListGoals(ctx context.Context, userID string) ([]core.Goal, error)
	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	UpdateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error

	ListInvestments(ctx context.Context, userID string) ([]core.Investment, error)
	CreateInvestment(ctx context.Context, i core.Investment) (core.Investment, error)
	UpdateInvestment(ctx context.Context, i core.Investment) (core.Investment, error)
	DeleteInvestment(ctx context.Context, userID, id string) error
}

type Tax interface {
	Get(ctx context.Context, userID, financialYear string) (core.TaxProfile, error)
	Put(ctx context.Context, p core.TaxProfile) (core.TaxProfile, error)
	Calculate(gross decimal.Decimal, d core.Deductions) (tax.Result, error)
	CalculateStored(ctx context.Context, userID, financialYear string) (tax.Result, error)
}

type Insights interface {
	Patterns(ctx context.Context, userID string) (insights.PatternReport, error)
	Predictions(ctx context.Context, userID string) (insights.ForecastReport, error)
	Recommendations(ctx context.Context, userID string) (insights.RecommendationReport, error)
	Overview(ctx context.Context, userID string) (services.Overview, error)
}

// Pinger reports database readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ Auth     = (*services.AuthService)(nil)
	_ Ledger   = (*services.LedgerService)(nil)
	_ Tax      = (*services.TaxService)(nil)
	_ Insights = (*services.InsightsService)(nil)
)

// Deps are the collaborators behind the API.
type Deps struct {
	Auth     Auth
	Ledger   Ledger
	Tax      Tax
	Insights Insights
	DB       Pinger
}

type Options struct {
	Addr               string
	AllowedOrigins     []string
	RateLimitPerMinute int
	Logger             *applog.Logger
}

type Server struct {
	http.Server
	deps     Deps
	logger   *applog.Logger
	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware

	shutdownOnce sync.Once
}

func NewServer(opts Options, deps Deps) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		deps:     deps,
		logger:   logger,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		detector: security.NewDetector(),
	}
	s.tracer = trace.NewMiddleware(logger, s.detector.ExtractClientIP)

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           s.middleware(s.routes(), opts.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		NotFoundError("Route not found").Write(w)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		ErrorResponse(http.StatusMethodNotAllowed, "Method not allowed").Write(w)
	})

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/readyz", s.handleReady).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/signup", s.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/signin", s.handleSignin).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(requireAuth(s.deps.Auth))

	private.HandleFunc("/transactions", s.handleListTransactions).Methods(http.MethodGet)
	private.HandleFunc("/transactions", s.handleCreateTransaction).Methods(http.MethodPost)
	private.HandleFunc("/transactions/{id}", s.handleUpdateTransaction).Methods(http.MethodPut)
	private.HandleFunc("/transactions/{id}", s.handleDeleteTransaction).Methods(http.MethodDelete)

	private.HandleFunc("/goals", s.handleListGoals).Methods(http.MethodGet)
	private.HandleFunc("/goals", s.handleCreateGoal).Methods(http.MethodPost)
	private.HandleFunc("/goals/{id}", s.handleUpdateGoal).Methods(http.MethodPut)
	private.HandleFunc("/goals/{id}", s.handleDeleteGoal).Methods(http.MethodDelete)

	private.HandleFunc("/investments", s.handleListInvestments).Methods(http.MethodGet)
	private.HandleFunc("/investments", s.handleCreateInvestment).Methods(http.MethodPost)
	private.HandleFunc("/investments/{id}", s.handleUpdateInvestment).Methods(http.MethodPut)
	private.HandleFunc("/investments/{id}", s.handleDeleteInvestment).Methods(http.MethodDelete)

	private.HandleFunc("/tax/data", s.handleGetTaxData).Methods(http.MethodGet)
	private.HandleFunc("/tax/data", s.handlePutTaxData).Methods(http.MethodPut)
	private.HandleFunc("/tax/calculate", s.handleCalculateTax).Methods(http.MethodPost)
	private.HandleFunc("/tax/calculate", s.handleCalculateStoredTax).Methods(http.MethodGet)

	private.HandleFunc("/insights/patterns", s.handlePatterns).Methods(http.MethodGet)
	private.HandleFunc("/insights/predictions", s.handlePredictions).Methods(http.MethodGet)
	private.HandleFunc("/insights/recommendations", s.handleRecommendations).Methods(http.MethodGet)
	private.HandleFunc("/insights/overview", s.handleOverview).Methods(http.MethodGet)

	return r
}

// middleware wraps the router, outermost first: tracing, request logger,
// probe detection, security headers, CORS, rate limiting.
func (s *Server) middleware(h http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	h = s.limiter.Middleware(s.detector.ExtractClientIP, func(w http.ResponseWriter, _ *http.Request) {
		ErrorResponse(http.StatusTooManyRequests, "Too many requests").Write(w)
	})(h)
	h = cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", trace.HeaderRequestID},
		ExposedHeaders: []string{trace.HeaderRequestID},
		MaxAge:         600,
	}).Handler(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = s.detect(h)
	h = applog.Middleware(s.logger, trace.GetRequestID)(h)
	return s.tracer.Middleware(h)
}

func (s *Server) detect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.detector.DetectSuspiciousRequest(r) {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Suspicious request",
				applog.FieldClientIP, s.detector.ExtractClientIP(r),
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldUserAgent, r.UserAgent())
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	NewJSONResponse().Body(map[string]string{"status": "ok"}).Write(w)
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.DB.Ping(ctx); err != nil {
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Readiness check failed", applog.FieldError, err)
			ErrorResponse(http.StatusServiceUnavailable, "Database unavailable").Write(w)
			return
		}
	}
	NewJSONResponse().Body(map[string]string{"status": "ready"}).Write(w)
}

// Shutdown stops the limiter and drains the server. Safe to call twice.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
