package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"smart_fan/internal/config"
	"smart_fan/internal/handlers"
	"smart_fan/internal/ingest"
	"smart_fan/internal/logger"
	"smart_fan/internal/repository"
	"smart_fan/internal/repository/db"
	"smart_fan/internal/server"
	"smart_fan/internal/service"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API with live evaluation, the device simulator and MQTT ingest.",
	Long: `Serve the REST and websocket API on the configured port.

Readings arrive over POST /ingest/readings, over MQTT when mqtt.broker is set,
or from the built-in simulator when simulator.enabled is true. Stops gracefully
on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context(), cfg)
	},
}

func init() {
	serveCmd.Flags().String("port", "", "HTTP port")
	serveCmd.Flags().Bool("simulate", true, "Feed readings from the built-in simulator")
	mustBind("port", serveCmd.Flags().Lookup("port"))
	mustBind("simulator.enabled", serveCmd.Flags().Lookup("simulate"))
}

func serviceOptions(c config.Config, log *logger.Logger) service.Options {
	return service.Options{
		Policy:     c.ControlPolicy(),
		Rates:      c.Impact,
		Projection: c.Projection,
		Auth:       service.AuthOptions{SigningKey: c.Auth.SigningKey, TokenTTL: c.Auth.TokenTTL},
		LiveLimit:  c.Live.Limit,
		DeviceID:   c.Simulator.DeviceID,
		Log:        log,
	}
}

func runServe(ctx context.Context, c config.Config) error {
	log := logger.Get(c.LogLevel)

	sqlDB, err := db.InitDB(c.DB.Path)
	if err != nil {
		return fmt.Errorf("init sqlite: %w", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("sqlite_close_failed", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, serviceOptions(c, log))
	apiHandler := handlers.NewHandler(services, log, handlers.Options{
		IngestAPIKey: c.Ingest.APIKey,
		LiveInterval: c.Live.Interval,
		LiveLimit:    c.Live.Limit,
	})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if c.Simulator.Enabled {
		go services.Simulator.Run(ctx, c.Simulator.Tick)
	}

	if c.MQTT.Broker != "" {
		sub := ingest.NewSubscriber(services.Telemetry, c.MQTT, log)
		if err := sub.Start(ctx); err != nil {
			return err
		}
	}

	srv := &server.Server{}
	errCh := runHTTPServer(srv, c.Port, apiHandler, log)
	return waitForShutdown(ctx, srv, errCh, log)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http_listening", "port", port)
		errCh <- srv.Run(port, handler.InitRoutes())
	}()
	return errCh
}

// waitForShutdown blocks until a signal or a server failure, then drains
// in-flight requests.
func waitForShutdown(ctx context.Context, srv *server.Server, errCh <-chan error, log *logger.Logger) error {
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting_down")

	// allow in-flight requests to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}
