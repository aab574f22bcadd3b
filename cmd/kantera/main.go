// Command kantera renders a script to a video or audio file.
//
//	kantera [flags] main.ks
//
// Settings come from kantera.toml in the working directory (or -config);
// flags override them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/kantera"
	"github.com/gogpu/kantera/internal/config"
)

func main() {
	var (
		output     = flag.String("o", "", "output file (default: config output, else out.mp4)")
		configPath = flag.String("config", config.DefaultFile, "project file")
		wav        = flag.Bool("wav", false, "write the audio track to a WAV file without ffmpeg")
		workers    = flag.Int("workers", 0, "render workers, 0 for one per CPU")
		ffmpegBin  = flag.String("ffmpeg", "", "ffmpeg executable")
		verbose    = flag.Bool("v", false, "log render progress")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] script.ks\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	kantera.SetLogger(logger)

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	cfg, err := config.Load(*configPath, !explicit)
	if err != nil {
		logger.Error("kantera: config", "err", err)
		os.Exit(1)
	}
	cfg = cfg.Merge(config.Config{FFmpeg: *ffmpegBin, Workers: *workers, Output: *output})
	if cfg.Output == "" {
		cfg.Output = "out.mp4"
		if *wav {
			cfg.Output = "out.wav"
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, flag.Arg(0), cfg, *wav, logger); err != nil {
		logger.Error("kantera: render failed", "err", err)
		stop()
		os.Exit(1)
	}
	logger.Info("kantera: done", "output", cfg.Output)
}
