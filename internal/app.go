package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pingerconf/internal/controllers"
	"pingerconf/internal/editor/interfaces"
	"pingerconf/internal/providers"
	"pingerconf/internal/storage"
	"pingerconf/internal/structures"
)

type App struct {
	WebServer *http.Server
}

// NewHandler assembles the HTTP handler tree.
func NewHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) http.Handler {
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, apiMux)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)
	return mux
}

// NewApp serves until SIGINT/SIGTERM and then shuts down gracefully.
func NewApp(handler http.Handler, scheduler interfaces.SchedulerInterface, store storage.DocumentStore, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		scheduler.Stop()
		return nil, fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.shutdown(ctx, scheduler, store, logger); err != nil {
		return nil, err
	}
	return app, nil
}

// shutdown stops the sweep job, drains the server, then closes the store
// and the log files. The logger must not be used afterwards.
func (a *App) shutdown(ctx context.Context, scheduler interfaces.SchedulerInterface, store storage.DocumentStore, logger providers.Logger) error {
	scheduler.Stop()

	if err := a.WebServer.Shutdown(ctx); err != nil {
		return err
	}
	if err := store.Close(); err != nil {
		logger.Errorf(providers.TypeApp, "Error closing document store: %s", err)
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	logger.Close()
	return nil
}
