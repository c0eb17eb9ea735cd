// server/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/rexlx/academicoqa/config"
	"github.com/rexlx/academicoqa/forum"
	"github.com/rexlx/academicoqa/logger"
	"github.com/rexlx/academicoqa/metrics"
)

type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	a := &app{}
	root := &cobra.Command{
		Use:           "academicoqa",
		Short:         "Q&A forum for students and teachers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger.SetupDefault(os.Stderr, cfg.LogLevel)
			return nil
		},
	}
	root.AddCommand(
		a.serveCmd(),
		a.questionsCmd(),
		a.showCmd(),
		a.suggestCmd(),
		a.loginCmd(),
		a.registerCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
	)

	if err := root.Execute(); err != nil {
		slog.Error("command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	dir, err := forum.NewDirectory(a.cfg.BcryptCost)
	if err != nil {
		return err
	}
	content := forum.NewSeededContentStore(forum.WithRecorder(collector))

	sessions := scs.New()
	sessions.Lifetime = a.cfg.SessionLifetime
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	sessions.Cookie.Secure = a.cfg.CookieSecure

	if a.cfg.DatabaseURL != "" {
		db, err := forum.NewDatabase(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.CreateTables(ctx); err != nil {
			return err
		}
		a.logger.Info("sessions stored in postgres")
		sessions.Store = db
		go db.StartCleanup(ctx, a.cfg.CleanupInterval, a.logger)
	} else {
		a.logger.Info("DATABASE_URL not set, sessions kept in memory")
	}

	forumHandler := forum.NewHandlers(forum.HandlersConfig{
		Content:       content,
		Directory:     dir,
		Sessions:      sessions,
		Logger:        a.logger,
		Recorder:      collector,
		AuthDelay:     a.cfg.AuthDelay,
		AuthRateLimit: a.cfg.RateLimitAuth,
	})

	r := chi.NewRouter()
	r.Use(forum.NewLoggingMiddleware(a.logger))
	r.Use(forum.NewRecoveryMiddleware(a.logger))
	forumHandler.RegisterRoutes(r)
	r.Handle("/metrics", metrics.Handler(reg))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	svr := &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           forumHandler.Session.LoadAndSave(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := svr.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("shutdown failed", slog.String("error", err.Error()))
		}
	}()

	a.logger.Info("starting forum server", slog.String("addr", svr.Addr))
	if err := svr.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
