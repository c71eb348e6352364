package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luizverissimo/desafio-ignite-nodejs-02/config"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/routes"
	"github.com/luizverissimo/desafio-ignite-nodejs-02/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var addr string
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(afero.NewOsFs(), configFile)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr()
			}
			gin.SetMode(cfg.GinMode)

			db, err := config.OpenDB(cfg.DB)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			if autoMigrate {
				if err := config.Migrate(db); err != nil {
					return err
				}
			}

			hub := services.NewRealtimeHub()
			defer hub.Close()

			srv := &http.Server{
				Addr:    addr,
				Handler: routes.SetupRouter(routes.Deps{DB: db, Hub: hub, Session: cfg.Session, AllowedOrigins: cfg.AllowedOrigins}),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Starting meals API on %s", addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
				log.Println("Received shutdown signal")
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			log.Println("Shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			hub.Close()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to :$PORT)")
	cmd.Flags().BoolVar(&autoMigrate, "migrate", true, "run schema migration before serving")
	return cmd
}
