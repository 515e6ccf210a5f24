// textray serves a first-person raycast view of a tile level to SSH clients
// and, optionally, to browser terminals over a websocket. Build:
//
//	go build -o textray ./cmd/textray
//
// Usage:
//
//	./textray [--port 2222] [--key server_host_key] [--ws :8080] [--level level.json]
//
// Connect:
//
//	ssh -t -p 2222 localhost
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/KazDragon/textray/internal/config"
	"github.com/KazDragon/textray/internal/level"
	"github.com/KazDragon/textray/internal/server"
	internalssh "github.com/KazDragon/textray/internal/ssh"
	"github.com/KazDragon/textray/internal/telemetry"
	"github.com/KazDragon/textray/internal/wsterm"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/gorilla/websocket"
	xssh "golang.org/x/crypto/ssh"
)

func main() {
	cfg, err := config.Load(os.Args[1:], ".env")
	if err != nil {
		log.Fatal(err)
	}
	logger := cfg.Logger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lvl, err := loadLevel(cfg.Level)
	if err != nil {
		log.Fatalf("load level: %v", err)
	}
	signer, err := hostKey(cfg.HostKey, logger)
	if err != nil {
		log.Fatalf("host key: %v", err)
	}

	if cfg.Trace {
		shutdown, err := telemetry.Setup(ctx, telemetry.Options{Level: lvl.Name, SampleRatio: cfg.TraceRatio})
		if err != nil {
			logger.Warn("telemetry setup failed", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("telemetry shutdown failed", "error", err)
				}
			}()
		}
	}

	srv := server.New(lvl, logger)
	sshSrv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: handleSSH(srv, cfg.KeepAlive, logger),
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: anyone may look around.
		HostSigners: []gossh.Signer{signer},
	}

	errCh := make(chan error, 2)
	go func() { errCh <- sshSrv.ListenAndServe() }()
	log.Printf("textray SSH server listening on :%d (level %q)", cfg.Port, lvl.Name)
	log.Printf("Connect with:  ssh -t -p %d -o StrictHostKeyChecking=no localhost", cfg.Port)

	var httpSrv *http.Server
	if cfg.WSAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/ws", handleWS(srv, cfg.KeepAlive, logger))
		httpSrv = &http.Server{Addr: cfg.WSAddr, Handler: mux}
		go func() { errCh <- httpSrv.ListenAndServe() }()
		log.Printf("textray websocket endpoint on %s/ws", cfg.WSAddr)
	}

	select {
	case <-ctx.Done():
		log.Printf("Signal received, shutting down")
	case <-srv.Done():
		log.Printf("Shutdown requested from a session")
	case err := <-errCh:
		log.Printf("Listener failed: %v", err)
	}

	srv.Shutdown()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sshSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		log.Printf("SSH shutdown: %v", err)
	}
	if httpSrv != nil {
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP shutdown: %v", err)
		}
	}
}

func loadLevel(path string) (*level.Level, error) {
	if path == "" {
		return level.Default()
	}
	return level.Load(path)
}

// ─── SSH ────────────────────────────────────────────────────────────────────

// handleSSH returns the gliderlabs handler for one connection. It blocks for
// the life of the session so the channel stays open.
func handleSSH(srv *server.Server, keepalive time.Duration, logger *slog.Logger) gossh.Handler {
	return func(s gossh.Session) {
		pty, winCh, hasPTY := s.Pty()
		if !hasPTY {
			fmt.Fprintln(s, "textray needs a terminal. Connect with: ssh -t -p <port> <host>")
			return
		}

		term := pty.Term
		if term == "" {
			term = internalssh.Term(s)
		}
		term = termFor(term, logger)
		tty := internalssh.NewSessionTty(s, pty, winCh)
		screen, err := newScreen(tty, term)
		if err != nil {
			fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
			return
		}

		ctx, cancel := context.WithCancel(s.Context())
		defer cancel()
		go func() {
			if err := internalssh.KeepAlive(ctx, s, keepalive); err != nil {
				logger.Info("keepalive failed", "remote", s.RemoteAddr().String(), "error", err)
				cancel()
			}
		}()

		if err := srv.Serve(ctx, sanitizeName(s.User()), screen); err != nil {
			fmt.Fprintf(s, "Session setup failed: %v\n", err)
		}
	}
}

// ─── websocket ──────────────────────────────────────────────────────────────

var upgrader = websocket.Upgrader{
	// Browser terminals may be served from anywhere.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWS upgrades /ws?cols=N&rows=M&name=S and runs a session on it.
func handleWS(srv *server.Server, keepalive time.Duration, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		q := r.URL.Query()
		size := tcell.WindowSize{Width: queryInt(q.Get("cols"), 80), Height: queryInt(q.Get("rows"), 24)}
		tty := wsterm.New(conn, size, keepalive)
		defer tty.Close()

		screen, err := newScreen(tty, internalssh.DefaultTerm)
		if err != nil {
			logger.Warn("websocket terminal setup failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			select {
			case <-tty.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
		if err := srv.Serve(ctx, sanitizeName(q.Get("name")), screen); err != nil {
			logger.Warn("websocket session failed", "remote", r.RemoteAddr, "error", err)
		}
	})
}

// queryInt parses a positive integer, falling back to def.
func queryInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 1000 {
		return def
	}
	return n
}

// ─── terminals ──────────────────────────────────────────────────────────────

// allowedTerms lists the TERM values passed through to terminfo. Anything
// else is drawn as xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-color":           true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"vt220":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

func termFor(term string, logger *slog.Logger) string {
	if allowedTerms[term] {
		return term
	}
	logger.Warn("unsupported terminal, using default", "term", sanitizeName(term), "default", internalssh.DefaultTerm)
	return internalssh.DefaultTerm
}

// termMu protects os.Setenv("TERM") around screen creation.
var termMu sync.Mutex

func newScreen(tty tcell.Tty, term string) (tcell.Screen, error) {
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return screen, nil
}

// maxNameBytes bounds player names in logs.
const maxNameBytes = 16

// sanitizeName drops control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// hostKey returns the signer stored at path. On first run, when path does
// not exist, it generates an ed25519 key and saves it there. A file that
// exists but does not parse is an error, never overwritten.
func hostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		signer, err := xssh.ParsePrivateKey(data)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		logger.Info("host key loaded", "path", path, "type", signer.PublicKey().Type())
		return signer, nil
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "textray host key")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		// The key still serves this run; clients will see a new one next time.
		logger.Warn("host key not saved", "path", path, "error", err)
	} else {
		logger.Info("host key generated", "path", path, "fingerprint", xssh.FingerprintSHA256(signer.PublicKey()))
	}
	return signer, nil
}
