// delve-server hosts Delve over SSH. Every connection plays its own game;
// saves are kept per user name.
//
//	go build -o delve-server ./cmd/server
//	./delve-server [-config delve.toml] [-port 2222] [-key host_key]
//	ssh -t -p 2222 alice@localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"delve-roguelike/internal/config"
	"delve-roguelike/internal/game"
	"delve-roguelike/internal/logging"
	internalssh "delve-roguelike/internal/ssh"

	gossh "github.com/gliderlabs/ssh"
	"go.uber.org/zap"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML config file")
	port := flag.Int("port", 0, "SSH server port (overrides config)")
	keyFile := flag.String("key", "", "PEM host key path, generated if absent (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *keyFile != "" {
		cfg.Server.HostKey = *keyFile
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	if err := os.MkdirAll(cfg.Server.SaveDir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	signer, err := loadOrCreateHostKey(cfg.Server.HostKey, logger)
	if err != nil {
		return err
	}

	srv := &gossh.Server{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: func(s gossh.Session) {
			handleSession(s, cfg, logger)
		},
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// Any client may connect; the user name only selects the save slot.
		HostSigners: []gossh.Signer{signer},
	}
	logger.Info("ssh server listening", zap.Int("port", cfg.Server.Port))
	return srv.ListenAndServe()
}

// handleSession runs one single-player game for the lifetime of s.
func handleSession(s gossh.Session, base *config.Config, logger *zap.Logger) {
	user := saveName(s.User())
	log := logger.With(zap.String("user", user), zap.String("remote", s.RemoteAddr().String()))

	tty, err := internalssh.NewSessionTty(s)
	if err != nil {
		fmt.Fprintln(s, "Delve needs a terminal. Connect with: ssh -t -p <port> <host>")
		return
	}
	screen, err := internalssh.NewScreen(tty)
	if err != nil {
		log.Warn("terminal setup failed", zap.Error(err))
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}
	defer screen.Fini()
	go func() {
		<-s.Context().Done()
		screen.Fini()
	}()

	cfg := sessionConfig(base, user)
	g, err := game.New(screen, cfg, log)
	if err != nil {
		log.Error("game setup failed", zap.Error(err))
		return
	}
	log.Info("session started", zap.String("term", tty.Term()))
	if err := g.Run(s.Context()); err != nil {
		log.Error("game stopped", zap.Error(err))
		return
	}
	log.Info("session ended")
}

// sessionConfig copies base with the save and run log moved into the
// user's slot under the save directory.
func sessionConfig(base *config.Config, user string) *config.Config {
	cfg := *base
	cfg.Game.SavePath = filepath.Join(base.Server.SaveDir, user+".json")
	cfg.Game.RunLog = filepath.Join(base.Server.SaveDir, user+".runs.jsonl")
	return &cfg
}

const maxNameBytes = 16

// sanitizeName keeps the letters, digits, '-' and '_' of name, truncated to
// maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	out := make([]rune, 0, len(name))
	size := 0
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '_' {
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

// saveName is the file-safe slot for a user, "anonymous" when nothing
// usable remains.
func saveName(user string) string {
	if name := sanitizeName(user); name != "" {
		return name
	}
	return "anonymous"
}

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *zap.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", zap.String("path", path))
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", zap.String("path", path))
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "delve server")
	if err != nil {
		return nil, fmt.Errorf("encode host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		logger.Warn("could not persist host key", zap.String("path", path), zap.Error(err))
	}
	return signer, nil
}
