package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tickex/internal/app"
	"tickex/internal/app/deps"
	"tickex/internal/app/services"
	dl "tickex/internal/core/domain/logging"
)

func main() {
	deps, shutdownDeps := deps.InitDeps()
	services := services.InitServices(deps)

	httpServer := app.InitHttpServer(deps, services)
	go start(httpServer, deps)

	stopCh, closeCh := createChannel()
	defer closeCh()

	<-stopCh
	shutdown(context.Background(), httpServer, deps, shutdownDeps)
}

func createChannel() (chan os.Signal, func()) {
	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	return stopCh, func() {
		close(stopCh)
	}
}

func start(server *http.Server, deps *deps.Deps) {
	deps.Logger.Info(
		context.Background(),
		"HTTP server has started.",
		dl.Entry("address", server.Addr),
		dl.Entry("isTestMode", deps.Config.IsTestMode),
	)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		deps.Logger.Info(context.Background(), "HTTP server has been closed.")
		return
	}
	if err != nil {
		deps.Logger.Error(context.Background(), "HTTP server error.", dl.Entry("err", err))
	}
}

func shutdown(ctx context.Context, server *http.Server, deps *deps.Deps, shutdownDeps func()) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		deps.Logger.Error(ctx, "Could not shut down HTTP server.", dl.Entry("err", err))
	} else {
		deps.Logger.Info(ctx, "HTTP server shut down.")
	}

	shutdownDeps()
}
