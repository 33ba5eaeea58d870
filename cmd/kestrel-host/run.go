package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/kestrel-engine/kestrel-go/internal/config"
	"github.com/kestrel-engine/kestrel-go/pkg/engine"
	"github.com/kestrel-engine/kestrel-go/pkg/inspect"
	"github.com/kestrel-engine/kestrel-go/pkg/profiling"
	"github.com/kestrel-engine/kestrel-go/pkg/protocol"
)

func runCmd() *cobra.Command {
	var (
		memCore     bool
		frames      int
		inspectAddr string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a core through the frame loop",
		Long: `Initialize a core, open the configured window, and run the frame
loop until interrupted or the window closes.

Examples:
  kestrel-host run
  kestrel-host run --mem-core --frames=600
  kestrel-host run --inspect=localhost:6060`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(cmd.Context(), memCore, frames, inspectAddr)
		},
	}

	cmd.Flags().BoolVar(&memCore, "mem-core", false, "Use the in-process core instead of the native library")
	cmd.Flags().IntVarP(&frames, "frames", "n", 0, "Stop after this many frames (0 = run until interrupted)")
	cmd.Flags().StringVar(&inspectAddr, "inspect", "", "Debug HTTP listen address (overrides KESTREL_INSPECT_ADDR)")

	return cmd
}

func runHost(ctx context.Context, memCore bool, frames int, inspectAddr string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if memCore {
		cfg.MemCore = true
	}
	if inspectAddr != "" {
		cfg.InspectAddr = inspectAddr
	}

	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var core engine.Core
	if cfg.MemCore {
		core = engine.NewMemCore()
		logger.Info("using in-process core")
	} else {
		core, err = engine.NewNativeCore()
		if err != nil {
			return fmt.Errorf("load native core: %w", err)
		}
	}

	// Window close or engine exit ends the loop.
	done := false
	tap := inspect.NewTap(cfg.TapHistory)
	bridge := engine.NewBridge(core,
		engine.WithLogger(logger),
		engine.WithMetrics(),
		engine.WithTap(tap),
		engine.WithHandlers(engine.Handlers{
			Window: func(ev *protocol.Event) {
				if ev.Kind == protocol.WindowDestroyed {
					done = true
				}
			},
			System: func(ev *protocol.Event) {
				if ev.Kind == protocol.SystemExiting {
					done = true
				}
			},
		}),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.InspectAddr != "" {
		srv := inspect.NewServer(tap, bridge, inspect.WithServerLogger(logger))
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.InspectAddr); err != nil {
				logger.Error("inspector stopped", "error", err)
			}
		}()
	}

	sinks, err := buildSinks(ctx, cfg)
	if err != nil {
		return err
	}

	if err := bridge.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if bridge.Running() {
			if err := bridge.Close(context.Background()); err != nil {
				logger.Error("dispose failed", "error", err)
			}
		}
	}()

	create := bridge.NewCommand(protocol.CmdWindowCreate, &protocol.WindowCreateArgs{
		Title:     cfg.WindowTitle,
		Size:      [2]uint32{cfg.WindowWidth, cfg.WindowHeight},
		Resizable: true,
	})
	if err := bridge.Submit(ctx, []*protocol.Command{create}); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.FrameInterval)
	defer ticker.Stop()

	frame := 0
	for !done {
		select {
		case <-ctx.Done():
			logger.Info("shutting down", "frames", frame)
			return bridge.Close(context.Background())
		case <-ticker.C:
		}

		if err := bridge.Tick(ctx); err != nil {
			return err
		}
		resolved, err := bridge.PollResponses(ctx)
		if err != nil {
			return err
		}
		for _, r := range resolved {
			if !r.Response.Code.OK() {
				logger.Warn("command failed",
					"id", r.Response.ID,
					"tag", r.Response.Tag,
					"code", r.Response.Code)
			}
		}
		if _, err := bridge.PollEvents(ctx); err != nil {
			return err
		}

		snap, err := bridge.Profiling(ctx)
		if err != nil {
			return err
		}
		if snap != nil {
			for _, sink := range sinks {
				if err := sink.Store(ctx, snap); err != nil {
					logger.Warn("snapshot archive failed", "error", err)
				}
			}
		}

		frame++
		if frames > 0 && frame >= frames {
			logger.Info("frame budget reached", "frames", frame)
			break
		}
	}

	return bridge.Close(context.Background())
}

// buildSinks assembles the configured profiling archives.
func buildSinks(ctx context.Context, cfg *config.Config) ([]profiling.Sink, error) {
	var sinks []profiling.Sink
	if cfg.ProfilingDir != "" {
		fs, err := profiling.NewFileSink(cfg.ProfilingDir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	}
	if cfg.ProfilingBucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		sinks = append(sinks, profiling.NewS3Sink(
			s3.NewFromConfig(awsCfg), cfg.ProfilingBucket, cfg.ProfilingPrefix))
	}
	return sinks, nil
}
