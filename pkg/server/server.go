// Package server exposes the quote, intent, and status operations over
// HTTP for browser front ends.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"relay-bridge/config"
	"relay-bridge/pkg/intent"
	"relay-bridge/pkg/quote"
	"relay-bridge/pkg/relay"
	"relay-bridge/pkg/types"
)

var (
	quotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_bridge_quotes_total",
		Help: "Quote requests by outcome.",
	}, []string{"outcome"})

	intentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "relay_bridge_intents_total",
		Help: "Intent parse requests by outcome.",
	}, []string{"outcome"})
)

// Server serves the HTTP API.
type Server struct {
	cfg      config.ServerConfig
	env      types.Environment
	resolver *quote.Resolver
	client   *relay.Client
	sessions *intent.SessionStore
	log      zerolog.Logger
}

// New creates a server. The session store is owned by the caller.
func New(cfg config.ServerConfig, env types.Environment, resolver *quote.Resolver, client *relay.Client, sessions *intent.SessionStore, log zerolog.Logger) *Server {
	return &Server{
		cfg:      cfg,
		env:      env,
		resolver: resolver,
		client:   client,
		sessions: sessions,
		log:      log,
	}
}

// Router builds the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(httprate.LimitByIP(s.cfg.RequestsPerMin, time.Minute))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/quote", s.handleQuote)
		r.Post("/intent", s.handleIntent)
		r.Get("/status", s.handleStatus)
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.log.Info().Str("listen", s.cfg.Listen).Str("environment", string(s.env)).Msg("server started")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

type quoteRequestBody struct {
	SourceChain string `json:"sourceChain"`
	TargetChain string `json:"targetChain"`
	Token       string `json:"token"`
	BuyToken    string `json:"buyToken,omitempty"`
	Amount      string `json:"amount"`
	UserAddress string `json:"userAddress"`
	Recipient   string `json:"recipient,omitempty"`
}

type quoteResponseBody struct {
	Success   bool         `json:"success"`
	RequestID string       `json:"requestId,omitempty"`
	Amount    string       `json:"amount"`
	Token     string       `json:"token"`
	FromChain string       `json:"fromChain"`
	ToChain   string       `json:"toChain"`
	Steps     []types.Step `json:"steps"`
	Quote     *types.Quote `json:"quote"`
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	var body quoteRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		quotesTotal.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	q, err := s.resolver.Resolve(r.Context(), &types.TransferRequest{
		UserAddress:   body.UserAddress,
		RecipientAddr: body.Recipient,
		SourceChain:   body.SourceChain,
		TargetChain:   body.TargetChain,
		SellToken:     body.Token,
		BuyToken:      body.BuyToken,
		Amount:        body.Amount,
	})
	if err != nil {
		quotesTotal.WithLabelValues("error").Inc()
		writeError(w, quoteErrorStatus(err), err.Error())
		return
	}

	quotesTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, quoteResponseBody{
		Success:   true,
		RequestID: q.RequestID,
		Amount:    body.Amount,
		Token:     body.Token,
		FromChain: body.SourceChain,
		ToChain:   body.TargetChain,
		Steps:     q.Steps,
		Quote:     q,
	})
}

type intentRequestBody struct {
	SessionID string `json:"sessionId,omitempty"`
	Message   string `json:"message"`
}

func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	var body intentRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		intentsTotal.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	parsed, err := intent.Parse(body.Message)
	if err != nil {
		intentsTotal.WithLabelValues("unparsed").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	parsed.SourceChain = intent.NormalizeChain(parsed.SourceChain, s.env)
	parsed.TargetChain = intent.NormalizeChain(parsed.TargetChain, s.env)

	session := s.sessions.Record(body.SessionID, body.Message, parsed)

	intentsTotal.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"sessionId": session.ID,
		"intent":    parsed,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	endpoint := r.URL.Query().Get("endpoint")
	if endpoint == "" || !strings.HasPrefix(endpoint, "/") {
		writeError(w, http.StatusBadRequest, "endpoint query parameter must be an aggregator path")
		return
	}

	result, err := s.client.CheckStatus(r.Context(), &types.Check{Endpoint: endpoint})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// quoteErrorStatus maps resolver errors onto HTTP statuses: validation
// failures are the caller's fault, aggregator failures are upstream.
func quoteErrorStatus(err error) int {
	var providerErr *relay.ProviderError
	if errors.As(err, &providerErr) {
		return http.StatusBadGateway
	}

	switch {
	case errors.Is(err, relay.ErrMissingField),
		errors.Is(err, relay.ErrUnsupportedChain),
		errors.Is(err, relay.ErrCrossEnvironment),
		errors.Is(err, relay.ErrUnsupportedToken),
		errors.Is(err, relay.ErrRecipientRequired),
		errors.Is(err, relay.ErrInvalidRecipient):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"success": false, "error": message})
}
