package main

import (
	"context"
	"log"
	"math/rand/v2"
	"net/http"
	_ "net/http/pprof"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"golang.org/x/sync/errgroup"

	"distviz/adapters/catalog"
	"distviz/internal/config"
	"distviz/internal/engine"
	"distviz/internal/errors"
	"distviz/internal/logger"
	"distviz/internal/view"
	"distviz/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.NewLogger(appConfig.Log.Level, "distviz")

	cat, err := catalog.New()
	if err != nil {
		appLog.Fatalf("Failed to build distribution catalog: %v", err)
	}

	var src rand.Source
	if appConfig.Sampling.Seed != 0 {
		appLog.Infof("Sampling with fixed seed %d", appConfig.Sampling.Seed)
		src = rand.NewPCG(appConfig.Sampling.Seed, appConfig.Sampling.Seed)
	}
	eng := engine.New(src)

	sessions := view.NewStore(appConfig.Session.TTL, logger.NewLogger(appConfig.Log.Level, "Session"))

	app, err := ui.NewApp(ui.Config{SourceURL: appConfig.Server.SourceURL}, cat, eng, sessions, logger.NewLogger(appConfig.Log.Level, "UI"))
	if err != nil {
		appLog.Fatalf("Failed to create UI app: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, appConfig, app.Handler(), sessions, appLog); err != nil {
		appLog.Fatalf("Server stopped: %v", err)
	}
	appLog.Info("Server stopped")
}

// run serves the app, the optional pprof listener and the session janitor until ctx is done
func run(ctx context.Context, appConfig *config.Config, handler http.Handler, sessions *view.Store, appLog *logging.Logger) error {
	g, ctx := errgroup.WithContext(ctx)

	server := &http.Server{
		Addr:         appConfig.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  appConfig.Server.ReadTimeout,
		WriteTimeout: appConfig.Server.WriteTimeout,
	}
	servers := []*http.Server{server}

	if appConfig.Profiling.Enabled {
		// DefaultServeMux carries the net/http/pprof handlers
		pprofServer := &http.Server{Addr: ":" + appConfig.Profiling.Port, Handler: http.DefaultServeMux}
		servers = append(servers, pprofServer)
		appLog.Infof("Performance profiling server starting on :%s", appConfig.Profiling.Port)
	}

	for _, srv := range servers {
		g.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return errors.Wrapf(err, "listen on %s", srv.Addr)
			}
			return nil
		})
	}

	g.Go(func() error {
		return sessions.Run(ctx, appConfig.Session.SweepInterval)
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				appLog.Warningf("Shutdown of %s: %v", srv.Addr, err)
			}
		}
		return nil
	})

	appLog.Infof("Starting distviz server on http://localhost:%s", appConfig.Server.Port)
	return g.Wait()
}
