package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/zugloev/tagregiszter/internal/backup"
	"github.com/zugloev/tagregiszter/internal/config"
	"github.com/zugloev/tagregiszter/internal/logging"
	"github.com/zugloev/tagregiszter/internal/notify"
	"github.com/zugloev/tagregiszter/internal/store"
	"github.com/zugloev/tagregiszter/internal/web"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"backup_enabled", cfg.Backup.Enabled(),
		"notify_enabled", cfg.Notify.Enabled(),
	)
	if cfg.Intake.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN not set, /admin/export is disabled")
	}

	// Parse and configure connection pool
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	// Connect to database
	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	} else {
		slog.Info("connected to database")
	}

	members := store.NewMembers(pool)
	server := web.NewServer(members, cfg)

	// Scheduled CSV backup, with the digest email chained after each
	// successful run when both features are configured.
	var backupSvc *backup.Service
	if cfg.Backup.Enabled() {
		bucket, err := backup.Dial(cfg.Backup)
		if err != nil {
			slog.Error("failed to connect to backup bucket", "error", err)
			os.Exit(1)
		}
		backupSvc = backup.NewService(members, bucket, cfg.Backup.Schedule)
		if cfg.Notify.Enabled() {
			digest := notify.NewDigest(members, cfg.Notify)
			backupSvc.AfterRun(func(ctx context.Context) {
				if err := digest.Send(ctx); err != nil {
					slog.Error("digest send failed", "error", err)
				}
			})
		}
		if err := backupSvc.Start(); err != nil {
			slog.Error("failed to start backup scheduler", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Info("backup disabled, no OSS configuration")
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if backupSvc != nil {
			select {
			case <-backupSvc.Stop().Done():
			case <-shutdownCtx.Done():
				slog.Warn("backup run did not finish in time")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
