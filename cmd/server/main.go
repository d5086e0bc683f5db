// cyber-rogue-server serves the game over SSH. Every connection plays its
// own run; saves are kept per SSH user name. Build:
//
//	go build -o cyber-rogue-server ./cmd/server
//
// Usage:
//
//	./cyber-rogue-server [--port 2222] [--key .ssh/host_ed25519] [--spectate :8080]
//
// Connect with:
//
//	ssh -p 2222 <name>@localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"
	"unicode"

	"cyber-rogue/internal/config"
	"cyber-rogue/internal/feed"
	"cyber-rogue/internal/game"
	"cyber-rogue/internal/leaderboard"
	"cyber-rogue/internal/logging"
	internalssh "cyber-rogue/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"
)

// maxNameBytes caps SSH user names used for saves and the leaderboard.
const maxNameBytes = 16

// allowedTerms are the TERM values passed through to terminfo; anything
// else falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode-256color": true,
	"alacritty":             true,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	port := flag.Int("port", cfg.SSHPort, "SSH server port")
	keyFile := flag.String("key", cfg.SSHHostKey, "Path to the PEM-encoded host key (auto-generated if absent)")
	spectate := flag.String("spectate", cfg.SpectateAddr, "Address for the websocket spectator feed (disabled if empty)")
	flag.Parse()

	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	keyPath := *keyFile
	if !filepath.IsAbs(keyPath) {
		keyPath = filepath.Join(cfg.DataDir, keyPath)
	}
	signer, err := loadOrCreateHostKey(keyPath, log)
	if err != nil {
		log.WithError(err).Fatal("host key")
	}

	h := &handler{cfg: cfg, log: log, hub: feed.NewHub(log)}
	if store, err := leaderboard.Open(ctx, cfg.LeaderboardDriver, cfg.LeaderboardDSN); err != nil {
		log.WithError(err).Warn("leaderboard unavailable; scores will not be recorded")
	} else {
		defer store.Close()
		h.board = store
	}

	if *spectate != "" {
		go serveFeed(ctx, *spectate, h.hub, log)
	}

	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Accept any authentication; the user name only selects a save slot.
		HostSigners: []gossh.Signer{signer},
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.WithField("port", *port).Info("cyber-rogue SSH server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		log.WithError(err).Fatal("ssh server")
	}
}

// serveFeed runs the spectator HTTP endpoints until ctx ends.
func serveFeed(ctx context.Context, addr string, hub *feed.Hub, log logrus.FieldLogger) {
	mux := http.NewServeMux()
	mux.Handle("/watch", hub)
	mux.HandleFunc("/players", hub.ServePlayers)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()
	log.WithField("addr", addr).Info("spectator feed listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("spectator feed stopped")
	}
}

// ─── sessions ───────────────────────────────────────────────────────────────

// handler starts one private game per SSH session.
type handler struct {
	cfg   config.Config
	log   logrus.FieldLogger
	hub   *feed.Hub
	board game.Leaderboard
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// until the player quits so the SSH session stays open.
func (h *handler) handleSession(s gossh.Session) {
	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This game requires a PTY. Connect with: ssh -t -p 2222 <host>")
		return
	}

	name := sanitizeName(s.User())
	if name == "" {
		name = "guest-" + uuid.NewString()[:8]
	}
	log := h.log.WithFields(logrus.Fields{"player": name, "remote": s.RemoteAddr().String()})

	term := pty.Term
	if !allowedTerms[term] {
		term = "xterm-256color"
	}

	// TERM must be set in the process environment before NewTerminfoScreenFromTty.
	tty := internalssh.NewSessionTty(s, pty, winCh)
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	g, err := game.New(game.Config{
		Screen:      screen,
		Logger:      log,
		DataDir:     h.cfg.DataDir,
		Player:      name,
		FOVRadius:   h.cfg.FOVRadius,
		TurnDelay:   h.cfg.TurnDelay,
		Leaderboard: h.board,
		Spectators:  h.hub,
	})
	if err != nil {
		fmt.Fprintf(s, "Screen init failed: %v\n", err)
		return
	}
	log.Info("session started")
	g.Run()
	h.hub.Forget(name)
	log.Info("session ended")
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

// sanitizeName drops control characters from an SSH user name and cuts it
// to maxNameBytes on a rune boundary.
func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	size := 0
	for _, r := range name {
		if unicode.IsControl(r) || r == unicode.ReplacementChar {
			continue
		}
		n := len(string(r))
		if size+n > maxNameBytes {
			break
		}
		out = append(out, r)
		size += n
	}
	return string(out)
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log logrus.FieldLogger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.WithField("path", path).Info("loaded host key")
			return signer, nil
		}
	}

	log.WithField("path", path).Info("generating new ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	pemBlock, err := xssh.MarshalPrivateKey(key, "cyber-rogue server")
	if err != nil {
		return signer, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		log.WithError(err).Warn("host key not persisted")
		return signer, nil
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(pemBlock), 0o600); err != nil {
		log.WithError(err).Warn("host key not persisted")
	}
	return signer, nil
}
