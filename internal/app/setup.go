// Package app wires the sync client's object graph.
package app

import (
	"fmt"
	"log/slog"

	"github.com/abgdnv/storefront/internal/auth"
	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/internal/notify"
	"github.com/abgdnv/storefront/internal/store"
	"github.com/abgdnv/storefront/pkg/api"
	"github.com/abgdnv/storefront/pkg/storage"
)

// feedSize bounds undelivered notifications; the Feed drops new messages
// once the buffer is full.
const feedSize = 16

type Dependencies struct {
	Creds    *storage.Store
	API      *api.Client
	Auth     *auth.Store
	AuthAPI  *auth.Client
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	Feed     *notify.Feed
	Logger   *slog.Logger
}

// SetupDependencies builds every component from configuration. The
// credential store feeds both the API client (bearer token) and the cart
// store (user id).
func SetupDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	creds, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	apiClient, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, creds, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	feed := notify.NewFeed(feedSize)
	notifier := notify.Multi(feed, notify.NewLog(logger))

	return &Dependencies{
		Creds:    creds,
		API:      apiClient,
		Auth:     auth.NewStore(creds, logger),
		AuthAPI:  auth.NewClient(apiClient),
		Cart:     store.NewCartStore(apiClient, creds, notifier, cfg.Cart.DebounceWindow, logger),
		Wishlist: store.NewWishlistStore(),
		Feed:     feed,
		Logger:   logger,
	}, nil
}
