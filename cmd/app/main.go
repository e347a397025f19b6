package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/hollis-dev/SatchelBot_Go/internal/backpack"
	"github.com/hollis-dev/SatchelBot_Go/internal/config"
	"github.com/hollis-dev/SatchelBot_Go/internal/database"
	"github.com/hollis-dev/SatchelBot_Go/internal/database/postgres"
	"github.com/hollis-dev/SatchelBot_Go/internal/economy"
	"github.com/hollis-dev/SatchelBot_Go/internal/effect"
	"github.com/hollis-dev/SatchelBot_Go/internal/inventory"
	"github.com/hollis-dev/SatchelBot_Go/internal/item"
	"github.com/hollis-dev/SatchelBot_Go/internal/roles"
	"github.com/hollis-dev/SatchelBot_Go/internal/server"
	"github.com/hollis-dev/SatchelBot_Go/internal/user"
)

const (
	dbMaxIdleTime   = 5 * time.Minute
	dbMaxLifetime   = 30 * time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	pool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// REST-only Discord session for role grant/revoke actions. The
	// gateway connection belongs to the bot process, not the API server.
	discordSession, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		slog.Error("Discord session creation failed", "error", err)
		os.Exit(1)
	}
	if cfg.DiscordToken == "" {
		slog.Warn("DISCORD_TOKEN not set, role effect actions will fail")
	}

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	economyRepo := postgres.NewEconomyRepository(pool)
	backpackRepo := postgres.NewBackpackRepository(pool)

	itemService := item.NewServiceWithCache(itemRepo, item.DefaultCacheSize, item.DefaultCacheTTL)
	inventoryService := inventory.NewService(inventoryRepo)
	economyService := economy.NewService(economyRepo, itemRepo, itemService, inventoryService)
	roleManager := roles.NewManager(discordSession)
	engine := effect.NewEngine(economyService, inventoryService, roleManager)
	userService := user.NewService(userRepo, itemService, inventoryService, engine)
	backpackService := backpack.NewService(backpackRepo)

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool, server.Services{
		Users:       userService,
		Inventories: inventoryService,
		Economy:     economyService,
		Backpacks:   backpackService,
		Items:       itemService,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
