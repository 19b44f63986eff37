package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pesio-ai/be-ops-workflow/internal/client"
	"github.com/pesio-ai/be-ops-workflow/internal/handler"
	"github.com/pesio-ai/be-ops-workflow/internal/repository"
	"github.com/pesio-ai/be-ops-workflow/internal/repository/memstore"
	"github.com/pesio-ai/be-ops-workflow/internal/rpc/opsv1"
	"github.com/pesio-ai/be-ops-workflow/internal/service"
	"github.com/pesio-ai/be-ops-workflow/pkg/auth"
	"github.com/pesio-ai/be-ops-workflow/pkg/config"
	"github.com/pesio-ai/be-ops-workflow/pkg/database"
	"github.com/pesio-ai/be-ops-workflow/pkg/logger"
	"github.com/pesio-ai/be-ops-workflow/pkg/middleware"
)

const blobRoute = "/blobs/"

// stores is the Record Store selected by database.driver.
type stores struct {
	records  service.RecordStore
	products service.ProductStore
	activity service.ActivityLog
	users    service.UserStore
	sessions service.SessionStore
	vendors  service.VendorStore
	changes  service.ChangeSource

	// run keeps background work (the LISTEN loop) going until ctx ends.
	run   func(ctx context.Context) error
	close func()
}

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("OPS_ENV_FILE"), os.Getenv("OPS_CONFIG_FILE"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(logger.Config{
		Level:       cfg.Service.LogLevel,
		Environment: cfg.Service.Environment,
		ServiceName: cfg.Service.Name,
		Version:     cfg.Service.Version,
	})

	log.Info().
		Str("service", cfg.Service.Name).
		Str("version", cfg.Service.Version).
		Str("environment", cfg.Service.Environment).
		Str("database_driver", cfg.Database.Driver).
		Msg("Starting Operations Workflow Service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer st.close()

	// Notifications are advisory; without NATS they are dropped.
	var notifier service.Notifier
	if cfg.NATS.URL != "" {
		nc, err := client.ConnectNATS(cfg.NATS.URL, cfg.Service.Name, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to NATS")
		}
		defer nc.Drain()
		notifier = client.NewNotificationPublisher(nc, cfg.NATS.SubjectPrefix, log)
		log.Info().Str("url", cfg.NATS.URL).Msg("NATS notifications enabled")
	}

	var (
		blobs    service.BlobStore
		memBlobs *client.MemoryBlobStore
	)
	if cfg.Blob.Bucket != "" {
		s3Blobs, err := client.NewS3BlobStore(ctx, client.S3BlobStoreConfig{
			Bucket:        cfg.Blob.Bucket,
			Region:        cfg.Blob.Region,
			Endpoint:      cfg.Blob.Endpoint,
			Prefix:        cfg.Blob.Prefix,
			PublicBaseURL: cfg.Blob.PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 blob store")
		}
		blobs = s3Blobs
		log.Info().Str("bucket", cfg.Blob.Bucket).Msg("S3 blob store enabled")
	} else {
		base := cfg.Blob.PublicBaseURL
		if base == "" {
			base = fmt.Sprintf("http://localhost:%d%s", cfg.Server.Port, strings.TrimSuffix(blobRoute, "/"))
		}
		memBlobs = client.NewMemoryBlobStore(base)
		blobs = memBlobs
		log.Warn().Msg("No blob bucket configured, uploads are kept in memory")
	}

	// Initialize services
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	identity := service.NewIdentityService(st.users, st.sessions, st.activity, notifier, tokens,
		service.IdentityConfig{
			BcryptCost:          cfg.Auth.BcryptCost,
			BootstrapAdminEmail: cfg.Auth.BootstrapAdminEmail,
		}, log.Named("identity"))

	services := handler.Services{
		Approval: service.NewApprovalService(st.records, st.users, st.activity, notifier, log.Named("approval")),
		Pipeline: service.NewPipelineService(st.products, st.users, st.activity, notifier, log.Named("pipeline")),
		Identity: identity,
		Vendors:  service.NewVendorService(st.vendors, st.users, st.activity, log.Named("vendors")),
		Uploads:  service.NewUploadService(blobs, cfg.Uploads.MaxBytes, log.Named("uploads")),
		Activity: service.NewActivityService(st.activity, log.Named("activity")),
		Changes:  st.changes,
	}

	// Setup HTTP routes
	mux := http.NewServeMux()
	handler.NewHTTPHandler(services, cfg.Uploads.MaxBytes, log.Named("http")).Register(mux)
	if memBlobs != nil {
		mux.Handle(blobRoute, handler.BlobHandler(memBlobs, blobRoute))
	}

	// Apply middleware
	var h http.Handler = mux
	h = auth.HTTPMiddleware(identity, handler.PublicPaths...)(h)
	h = middleware.Timeout(cfg.Server.RequestTimeout, "/api/v1/changes")(h)
	h = middleware.CORS(cfg.Server.AllowedOrigins)(h)
	h = middleware.Recovery(&log.Logger)(h)
	h = middleware.Logger(&log.Logger)(h)
	h = middleware.RequestID(h)

	httpServer := &http.Server{
		Addr:        cfg.Server.Addr(),
		Handler:     h,
		ReadTimeout: cfg.Server.ReadTimeout,
		IdleTimeout: cfg.Server.IdleTimeout,
		// WriteTimeout stays unset so change streams are not cut off;
		// middleware.Timeout bounds every other route.
	}

	// Setup gRPC server
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(auth.UnaryServerInterceptor(identity, "/grpc.health.v1.Health/")),
		grpc.ChainStreamInterceptor(auth.StreamServerInterceptor(identity, "/grpc.health.v1.Health/", "/grpc.reflection.")),
	)
	opsv1.RegisterOperationsServiceServer(grpcServer, handler.NewGRPCHandler(services, log))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(opsv1.OperationsService_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	reflection.Register(grpcServer)

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create gRPC listener")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return st.run(gctx)
	})

	g.Go(func() error {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info().Int("port", cfg.Server.GRPCPort).Msg("Starting gRPC server")
		if err := grpcServer.Serve(grpcListener); err != nil {
			return fmt.Errorf("grpc server: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server...")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown failed")
		}
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Database.Driver == "memory" {
		log.Warn().Msg("Using in-memory record store, data is lost on exit")
		mem := memstore.New(log.Named("memstore"))
		return &stores{
			records:  mem.Records(),
			products: mem.Products(),
			activity: mem.Activity(),
			users:    mem.Users(),
			sessions: mem.Sessions(),
			vendors:  mem.Vendors(),
			changes:  mem,
			run: func(ctx context.Context) error {
				<-ctx.Done()
				return nil
			},
			close: func() {},
		}, nil
	}

	db, err := database.New(ctx, database.Config{
		Host:        cfg.Database.Host,
		Port:        cfg.Database.Port,
		User:        cfg.Database.User,
		Password:    cfg.Database.Password,
		Database:    cfg.Database.Database,
		SSLMode:     cfg.Database.SSLMode,
		MaxConns:    cfg.Database.MaxConns,
		MinConns:    cfg.Database.MinConns,
		MaxConnTime: cfg.Database.MaxConnTime,
		MaxIdleTime: cfg.Database.MaxIdleTime,
		HealthCheck: cfg.Database.HealthCheck,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Msg("Database connection established")

	if cfg.Database.Migrate {
		applied, err := db.Migrate(ctx, repository.MigrationFS())
		if err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Strs("applied", applied).Msg("Database migrations complete")
	}

	feed := repository.NewChangeFeed(db, log)
	return &stores{
		records:  repository.NewFinancialRecordRepository(db),
		products: repository.NewProductRepository(db),
		activity: repository.NewActivityRepository(db),
		users:    repository.NewUserRepository(db),
		sessions: repository.NewSessionRepository(db),
		vendors:  repository.NewVendorRepository(db),
		changes:  feed,
		run:      feed.Run,
		close:    db.Close,
	}, nil
}
