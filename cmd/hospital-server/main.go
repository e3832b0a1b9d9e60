package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hospital-api/internal/config"
	"hospital-api/internal/database"
	"hospital-api/internal/handlers"
	"hospital-api/internal/logger"
	"hospital-api/internal/middleware"
	"hospital-api/internal/repository"
	"hospital-api/internal/services"
	"hospital-api/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hospital-server",
		Short:         "Hospital records API server",
		SilenceUsage: true,
	}
	root.AddCommand(serveCmd(), migrateCmd(), auditLinksCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			return runServer(cfg, log)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg, log)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info().Str("driver", cfg.DBDriver).Msg("migrations applied")
			return nil
		},
	}
}

func auditLinksCmd() *cobra.Command {
	var repair bool
	cmd := &cobra.Command{
		Use:   "audit-links",
		Short: "Find reports missing from their patient's report list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg, log)
			if err != nil {
				return err
			}
			a := newApp(cfg, log, db)
			return auditLinks(cmd.Context(), a.ledger, repair, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&repair, "repair", false, "append unlinked reports to their patient's list")
	return cmd
}

func auditLinks(ctx context.Context, ledger *services.ReportLedger, repair bool, out io.Writer) error {
	var (
		found []services.UnlinkedReport
		err   error
	)
	if repair {
		found, err = ledger.RepairLinks(ctx)
	} else {
		found, err = ledger.UnlinkedReports(ctx)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]interface{}{
		"repaired": repair,
		"count":    len(found),
		"reports":  found,
	})
}

func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogPretty), nil
}

// app holds the services built on one shared store handle.
type app struct {
	ledger *services.ReportLedger
	router *gin.Engine
}

func newApp(cfg *config.Config, log zerolog.Logger, db *gorm.DB) *app {
	auth := services.NewAuthService(
		repository.NewDoctorRepository(db),
		services.BcryptHasher{Cost: cfg.BcryptCost},
		utils.NewTokenSigner(cfg.TokenSecret, cfg.TokenTTL),
	)
	registry := services.NewPatientRegistry(repository.NewPatientRepository(db))
	ledger := services.NewReportLedger(repository.NewReportRepository(db), registry)

	h := handlers.NewHandler(auth, registry, ledger, !cfg.IsProduction())
	router := handlers.NewRouter(h, middleware.RequireDoctor(auth), handlers.RouterOptions{
		Logger:               log,
		CORSOrigins:          cfg.CORSOrigins,
		PublicPatientReports: cfg.PublicPatientReports,
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	})

	return &app{ledger: ledger, router: router}
}

func runServer(cfg *config.Config, log zerolog.Logger) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if cfg.TokenTTL == 0 {
		log.Warn().Msg("bearer tokens are issued without expiry; set TOKEN_TTL to enable it")
	}

	a := newApp(cfg, log, db)
	srv := &http.Server{
		Addr:              ":" + cfg.ListenPort,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.ListenPort).Str("driver", cfg.DBDriver).Msg("server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
