// Package server wires the ledger runtime: storage, engine replay, the gRPC
// API and the HTTP read gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/louisbranch/taxledger/internal/platform/timeouts"
	"github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/interceptors"
	ledgerservice "github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/ledger"
	grpcmeta "github.com/louisbranch/taxledger/internal/services/ledger/api/grpc/metadata"
	"github.com/louisbranch/taxledger/internal/services/ledger/api/httpapi"
	"github.com/louisbranch/taxledger/internal/services/ledger/engine"
	ledgersqlite "github.com/louisbranch/taxledger/internal/services/ledger/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Config configures a ledger server.
type Config struct {
	// GRPCAddr and HTTPAddr are listen addresses; an empty HTTPAddr disables
	// the gateway.
	GRPCAddr string
	HTTPAddr string
	DBPath   string
	Owner    string
	// EnforceSeasonWindow rejects submissions outside an open season.
	EnforceSeasonWindow bool
}

// Server hosts the ledger gRPC API, HTTP gateway and storage lifecycle.
type Server struct {
	listener     net.Listener
	httpListener net.Listener
	grpcServer   *grpc.Server
	httpServer   *http.Server
	health       *health.Server
	store        *ledgersqlite.Store
}

// New opens storage, replays the journal and binds both listeners.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if strings.TrimSpace(cfg.Owner) == "" {
		return nil, errors.New("ledger owner is required")
	}
	dbPath := strings.TrimSpace(cfg.DBPath)
	if dbPath == "" {
		dbPath = filepath.Join("data", "ledger.db")
	}
	store, err := openLedgerStore(dbPath)
	if err != nil {
		return nil, err
	}
	eng, err := engine.Open(ctx, store, engine.Config{
		Owner:               cfg.Owner,
		EnforceSeasonWindow: cfg.EnforceSeasonWindow,
	})
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("open ledger engine: %w", err)
	}
	log.Printf("ledger replayed to height %d", eng.Height())

	listener, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.GRPCAddr, err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			grpcmeta.UnaryServerInterceptor(nil),
			interceptors.AuditInterceptor(store),
		),
	)
	ledgerservice.RegisterSeasonServiceServer(grpcServer, ledgerservice.NewSeasonService(eng))
	ledgerservice.RegisterFilingServiceServer(grpcServer, ledgerservice.NewFilingService(eng))
	ledgerservice.RegisterJournalServiceServer(grpcServer, ledgerservice.NewJournalService(eng, store))

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, name := range []string{
		ledgerservice.SeasonServiceName,
		ledgerservice.FilingServiceName,
		ledgerservice.JournalServiceName,
	} {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}

	srv := &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}
	if cfg.HTTPAddr != "" {
		httpListener, err := net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			srv.Close()
			return nil, fmt.Errorf("listen on %s: %w", cfg.HTTPAddr, err)
		}
		srv.httpListener = httpListener
		srv.httpServer = &http.Server{
			Handler:           httpapi.NewHandler(eng, store),
			ReadHeaderTimeout: timeouts.ReadHeader,
		}
	}
	return srv, nil
}

// Addr returns the gRPC listener address.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// HTTPAddr returns the gateway listener address, or "" when disabled.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// Run creates and serves a ledger server until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve runs the gRPC server and gateway until context cancellation or the
// first serve failure.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("ledger gRPC listening at %v", s.listener.Addr())
	serveErr := make(chan error, 2)
	go func() {
		err := s.grpcServer.Serve(s.listener)
		if err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			serveErr <- fmt.Errorf("serve gRPC: %w", err)
			return
		}
		serveErr <- nil
	}()
	if s.httpServer != nil {
		log.Printf("ledger HTTP gateway listening at %v", s.httpListener.Addr())
		go func() {
			err := s.httpServer.Serve(s.httpListener)
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- fmt.Errorf("serve HTTP: %w", err)
				return
			}
			serveErr <- nil
		}()
	}

	select {
	case <-ctx.Done():
		return s.shutdown()
	case err := <-serveErr:
		shutdownErr := s.shutdown()
		if err != nil {
			return err
		}
		return shutdownErr
	}
}

func (s *Server) shutdown() error {
	if s.health != nil {
		s.health.Shutdown()
	}
	var httpErr error
	if s.httpServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			httpErr = fmt.Errorf("shutdown HTTP: %w", err)
		}
	}
	s.grpcServer.GracefulStop()
	return httpErr
}

// Close releases ledger server resources.
func (s *Server) Close() {
	if s == nil {
		return
	}
	if s.health != nil {
		s.health.Shutdown()
	}
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	if s.httpServer != nil {
		_ = s.httpServer.Close()
	}
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.httpListener != nil {
		_ = s.httpListener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close ledger store: %v", err)
		}
		s.store = nil
	}
}

func openLedgerStore(path string) (*ledgersqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := ledgersqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ledger sqlite store: %w", err)
	}
	return store, nil
}
