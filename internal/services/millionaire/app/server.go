// Package server wires the millionaire runtime and gRPC lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/millionaire/internal/platform/config"
	"github.com/louisbranch/millionaire/internal/platform/timeouts"
	"github.com/louisbranch/millionaire/internal/services/millionaire/api/grpc/metadata"
	gameservice "github.com/louisbranch/millionaire/internal/services/millionaire/api/grpc/millionaire"
	"github.com/louisbranch/millionaire/internal/services/millionaire/catalog"
	"github.com/louisbranch/millionaire/internal/services/millionaire/domain/game"
	"github.com/louisbranch/millionaire/internal/services/millionaire/gameplay"
	millionairesqlite "github.com/louisbranch/millionaire/internal/services/millionaire/storage/sqlite"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

type serverEnv struct {
	DBPath      string        `env:"MILLIONAIRE_DB_PATH"`
	TimeLimit   time.Duration `env:"MILLIONAIRE_TIME_LIMIT" envDefault:"1h"`
	AutoSeed    bool          `env:"MILLIONAIRE_AUTO_SEED" envDefault:"true"`
	CatalogPath string        `env:"MILLIONAIRE_CATALOG_PATH"`
}

func loadServerEnv() (serverEnv, error) {
	var cfg serverEnv
	if err := config.ParseEnv(&cfg); err != nil {
		return serverEnv{}, err
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		cfg.DBPath = filepath.Join("data", "millionaire.db")
	}
	return cfg, nil
}

// Server hosts the millionaire gRPC API and storage lifecycle.
type Server struct {
	listener   net.Listener
	grpcServer *grpc.Server
	health     *health.Server
	store      *millionairesqlite.Store
}

// New creates a configured millionaire server listening on the provided port.
func New(port int) (*Server, error) {
	return NewWithAddr(fmt.Sprintf(":%d", port))
}

// NewWithAddr creates a configured millionaire server for the provided address.
func NewWithAddr(addr string) (*Server, error) {
	env, err := loadServerEnv()
	if err != nil {
		return nil, err
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	store, err := openMillionaireStore(env.DBPath)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}
	if env.AutoSeed {
		if err := seedIfEmpty(context.Background(), store, env.CatalogPath); err != nil {
			_ = store.Close()
			_ = listener.Close()
			return nil, err
		}
	}

	rules := game.DefaultRules()
	rules.TimeLimit = env.TimeLimit
	gp, err := gameplay.NewService(store, gameplay.WithRules(rules))
	if err != nil {
		_ = store.Close()
		_ = listener.Close()
		return nil, fmt.Errorf("create gameplay service: %w", err)
	}

	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(metadata.UnaryServerInterceptor(nil)),
	)
	healthServer := health.NewServer()
	gameservice.RegisterGameServiceServer(grpcServer, gameservice.NewService(gp))
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(gameservice.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	return &Server{
		listener:   listener,
		grpcServer: grpcServer,
		health:     healthServer,
		store:      store,
	}, nil
}

// Addr returns the listener address for the server.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a millionaire server until context cancellation.
func Run(ctx context.Context, port int) error {
	server, err := New(port)
	if err != nil {
		return err
	}
	return server.Serve(ctx)
}

// Serve starts the gRPC server until context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.Close()

	log.Printf("millionaire server listening at %v", s.listener.Addr())
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.grpcServer.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		if s.health != nil {
			s.health.Shutdown()
		}
		s.gracefulStop()
		err := <-serveErr
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	case err := <-serveErr:
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
}

// gracefulStop drains in-flight calls, forcing a stop after timeouts.Shutdown.
func (s *Server) gracefulStop() {
	stopped := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(timeouts.Shutdown):
		log.Printf("graceful stop timed out after %s", timeouts.Shutdown)
		s.grpcServer.Stop()
		<-stopped
	}
}

// Close releases millionaire server resources.
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
	if s.listener != nil {
		_ = s.listener.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			log.Printf("close millionaire store: %v", err)
		}
	}
}

func openMillionaireStore(path string) (*millionairesqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := millionairesqlite.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open millionaire sqlite store: %w", err)
	}
	return store, nil
}

// seedIfEmpty imports the question catalogue into a store that has none.
func seedIfEmpty(ctx context.Context, store *millionairesqlite.Store, catalogPath string) error {
	counts, err := store.CountQuestionsByLevel(ctx)
	if err != nil {
		return err
	}
	if len(counts) > 0 {
		return nil
	}
	cat, err := catalog.Load(catalogPath)
	if err != nil {
		return err
	}
	if err := store.PutQuestions(ctx, cat.Questions); err != nil {
		return fmt.Errorf("seed questions: %w", err)
	}
	log.Printf("seeded %d questions from catalog %s", len(cat.Questions), cat.Version)
	return nil
}
