package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/user"
	"time"

	"cyber-rogue/internal/config"
	"cyber-rogue/internal/feed"
	"cyber-rogue/internal/game"
	"cyber-rogue/internal/leaderboard"
	"cyber-rogue/internal/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	name := flag.String("name", localUser(), "Player name used for the save slot and leaderboard")
	spectate := flag.String("spectate", cfg.SpectateAddr, "Address for the websocket spectator feed (disabled if empty)")
	flag.Parse()

	log, closer, err := logging.Open(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gcfg := game.Config{
		Logger:    log,
		DataDir:   cfg.DataDir,
		Player:    *name,
		FOVRadius: cfg.FOVRadius,
		TurnDelay: cfg.TurnDelay,
	}
	if store, err := leaderboard.Open(ctx, cfg.LeaderboardDriver, cfg.LeaderboardDSN); err != nil {
		log.WithError(err).Warn("leaderboard unavailable")
	} else {
		defer store.Close()
		gcfg.Leaderboard = store
	}
	if *spectate != "" {
		hub := feed.NewHub(log)
		gcfg.Spectators = hub
		mux := http.NewServeMux()
		mux.Handle("/watch", hub)
		mux.HandleFunc("/players", hub.ServePlayers)
		srv := &http.Server{Addr: *spectate, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("spectator feed stopped")
			}
		}()
		defer srv.Close()
	}

	g, err := game.New(gcfg)
	if err != nil {
		return err
	}
	g.Run()
	return nil
}

// localUser names the save slot after the OS account.
func localUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}
