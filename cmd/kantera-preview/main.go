// Command kantera-preview plays a script in the browser and reloads it on
// every save.
//
//	kantera-preview [dir]
//
// dir holds main.ks and defaults to the working directory. The server
// listens on $PORT, or 8080.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/internal/config"
	"github.com/gogpu/kantera/preview"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultFile, "project file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	kantera.SetLogger(logger)

	cfg, err := config.Load(*configPath, true)
	if err != nil {
		logger.Error("kantera-preview: config", "err", err)
		os.Exit(1)
	}
	dir, err := homedir.Expand(flag.Arg(0))
	if err != nil {
		logger.Error("kantera-preview: directory", "err", err)
		os.Exit(1)
	}
	if dir == "" {
		dir = "."
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := serve(ctx, dir, addr(), cfg, logger); err != nil {
		logger.Error("kantera-preview", "err", err)
		stop()
		os.Exit(1)
	}
}

func addr() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return "0.0.0.0:" + port
}

func serve(ctx context.Context, dir, addr string, cfg config.Config, logger *slog.Logger) error {
	eng := preview.NewEngine(dir, preview.WithLogger(logger), preview.WithWorkers(cfg.Workers))
	// A broken or missing script is reported and waits for the next save.
	eng.Load()

	mux := http.NewServeMux()
	mux.Handle("/ws", preview.Handler(eng))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintf(w, "kantera preview of %s\nstream: ws://%s/ws\n", eng.MainPath(), r.Host)
	})
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go eng.Run(ctx)
	go func() {
		if err := eng.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("kantera-preview: watch", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdown)
	}()

	logger.Info("kantera-preview: listening", "addr", addr, "dir", dir)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
