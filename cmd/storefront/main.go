package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/storefront/internal/app"
	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/pkg/bootstrap"
	"github.com/abgdnv/storefront/pkg/configloader"
	"golang.org/x/sync/errgroup"
)

const appName = "storefront"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run hydrates the session, synchronizes the cart once and streams
// notifications until interrupted.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](appName, config.Defaults())
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	deps, err := app.SetupDependencies(cfg, logger)
	if err != nil {
		return err
	}

	deps.Auth.Hydrate()
	state := deps.Auth.State()
	logger.Info("session hydrated", "status", state.Status.String(), "user", state.User.ID)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			select {
			case <-gCtx.Done():
				return nil
			case msg := <-deps.Feed.Messages():
				fmt.Printf("[%s] %s\n", msg.Kind, msg.Text)
			}
		}
	})
	g.Go(func() error {
		// Fetch failures are already surfaced as notifications; they must
		// not take the process down.
		if err := deps.Cart.Fetch(gCtx); err != nil {
			return nil
		}
		snap := deps.Cart.Snapshot()
		logger.Info("cart synchronized", "items", len(snap.Items))
		return nil
	})
	return g.Wait()
}
