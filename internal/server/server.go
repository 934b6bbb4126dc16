// Package server exposes the KYC, wallet connection and savings goal use
// cases over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/omamori-labs/omamori/internal/domain/config"
	"github.com/omamori-labs/omamori/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Server is the OMAMORI HTTP API
type Server struct {
	addr string
	log  *slog.Logger

	submitKYC     *usecase.SubmitKYC
	getKYC        *usecase.GetKYC
	connectWallet *usecase.ConnectWallet
	getConnection *usecase.GetConnection
	goals         *usecase.SavingsGoals

	started time.Time
}

// NewServer creates a new API server
func NewServer(
	cfg *config.RuntimeConfig,
	submitKYC *usecase.SubmitKYC,
	getKYC *usecase.GetKYC,
	connectWallet *usecase.ConnectWallet,
	getConnection *usecase.GetConnection,
	goals *usecase.SavingsGoals,
	log *slog.Logger,
) *Server {
	return &Server{
		addr:          cfg.OmamoriConfig.Server.Addr,
		log:           log.With("component", "server"),
		submitKYC:     submitKYC,
		getKYC:        getKYC,
		connectWallet: connectWallet,
		getConnection: getConnection,
		goals:         goals,
		started:       time.Now(),
	}
}

// Router returns the API routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.recoverer, s.requestLogger)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/kyc", s.handleSubmitKYC).Methods(http.MethodPost)
	api.HandleFunc("/kyc", s.handleGetKYC).Methods(http.MethodGet)
	api.HandleFunc("/qr", s.handleConnectWallet).Methods(http.MethodPost)
	api.HandleFunc("/qr", s.handleGetConnection).Methods(http.MethodGet)
	api.HandleFunc("/goals/{userId}", s.handleGetGoal).Methods(http.MethodGet)
	api.HandleFunc("/goals/{userId}/deposits", s.handleDeposit).Methods(http.MethodPost)

	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "route not found"})
		})
		router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		})
	}

	return r
}

// Addr returns the configured listen address
func (s *Server) Addr() string {
	return s.addr
}

// Run listens on the configured address until ctx is cancelled, then
// drains in-flight requests
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve handles requests on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// request contexts outlive ctx so Shutdown can drain them
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
