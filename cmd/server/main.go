package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"

	"github.com/xtding233/circle-curves/internal/api"
	"github.com/xtding233/circle-curves/internal/config"
	"github.com/xtding233/circle-curves/internal/rpc"
)

var (
	httpAddr  string
	grpcAddr  string
	configDir string
	verbose   bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "curves-server",
	Short: "Serve curve evaluation over HTTP and gRPC",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&httpAddr, "http-addr", ":8080", "HTTP listen address; empty disables")
	f.StringVar(&grpcAddr, "grpc-addr", ":9090", "gRPC listen address; empty disables")
	f.StringVar(&configDir, "config", "", "config base directory holding curves/*.yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// serve runs the HTTP and gRPC listeners until ctx is done or one of them fails.
func serve(ctx context.Context) error {
	var resolver config.Resolver
	if configDir != "" {
		loader := config.NewLoader(configDir)
		resolver = loader

		// hot reload: drop cached merges when any curve file changes
		w := config.NewFileWatcher(loader.Paths().CurvesDir(), func(path string) {
			loader.Invalidate()
			logger.Info("curve config reloaded", zap.String("path", path))
		}, logger)
		if err := w.Start(ctx); err != nil {
			logger.Warn("config watcher disabled", zap.String("dir", loader.Paths().CurvesDir()), zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	// bind gRPC before starting anything so a busy port fails fast
	var lis net.Listener
	if grpcAddr != "" {
		var err error
		lis, err = net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("grpc listen %s: %w", grpcAddr, err)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	if httpAddr != "" {
		srv := &http.Server{
			Addr:              httpAddr,
			Handler:           api.NewServer(resolver, logger).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("http listening", zap.String("addr", httpAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("http: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	if lis != nil {
		gs := grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(logger)))
		rpc.Register(gs, rpc.NewService(logger))
		g.Go(func() error {
			logger.Info("grpc listening", zap.String("addr", lis.Addr().String()))
			if err := gs.Serve(lis); err != nil {
				return fmt.Errorf("grpc: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			gs.GracefulStop()
			return nil
		})
	}

	err := g.Wait()
	logger.Info("server stopped")
	return err
}
