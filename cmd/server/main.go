// lightcaster-server serves the lighting demo over SSH, one independent
// game per connection. Build:
//
//	go build -o lightcaster-server ./cmd/server
//
// Usage:
//
//	./lightcaster-server [--port 2222] [--key server_host_key] [--max-sessions 8]
//
// Connect with:
//
//	ssh -t -p 2222 localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"lightcaster/internal/game"
	"lightcaster/internal/logger"
	internalssh "lightcaster/internal/ssh"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/sirupsen/logrus"
	xssh "golang.org/x/crypto/ssh"
)

// maxNameBytes bounds a sanitised user name.
const maxNameBytes = 16

// allowedTerms lists the TERM values the server will load terminfo for.
// Anything else falls back to xterm-256color.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

func main() {
	port := flag.Int("port", 2222, "SSH server port")
	keyFile := flag.String("key", "server_host_key", "Path to the PEM-encoded host key (generated if absent)")
	maxSessions := flag.Int("max-sessions", 8, "Concurrent games before new connections are turned away")
	reflections := flag.Int("reflections", game.DefaultConfig().Light.ReflectionLevel, "Reflection generations per light")
	flag.Parse()

	logger.Init(os.Stdout)
	log := logger.Log.WithField("component", "server")

	signer, err := loadOrCreateHostKey(*keyFile, log)
	if err != nil {
		log.WithError(err).Fatal("host key")
	}

	h := &host{
		slots:       make(chan struct{}, *maxSessions),
		reflections: *reflections,
		log:         log,
	}
	srv := &gossh.Server{
		Addr:        fmt.Sprintf(":%d", *port),
		Handler:     h.handleSession,
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: a demo meant for a private network.
		HostSigners: []gossh.Signer{signer},
	}

	log.WithField("port", *port).Info("listening")
	if err := srv.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("serve")
	}
}

// host runs a game for each incoming session.
type host struct {
	slots       chan struct{}
	reflections int
	log         *logrus.Entry
}

// handleSession is the gliderlabs SSH handler for one connection. It
// blocks for the lifetime of the game so the session stays open.
func (h *host) handleSession(s gossh.Session) {
	log := h.log.WithFields(logrus.Fields{
		"user":   sanitizeName(s.User()),
		"remote": s.RemoteAddr().String(),
	})

	pty, winCh, hasPTY := s.Pty()
	if !hasPTY {
		fmt.Fprintln(s, "This demo needs a PTY. Connect with: ssh -t -p <port> <host>")
		return
	}

	select {
	case h.slots <- struct{}{}:
		defer func() { <-h.slots }()
	default:
		fmt.Fprintln(s, "The server is full, try again later.")
		log.Warn("session refused: server full")
		return
	}

	term := pty.Term
	if !allowedTerms[term] {
		term = "xterm-256color"
	}

	tty := internalssh.NewSessionTty(s, pty, winCh)
	screen, err := newScreen(tty, term)
	if err != nil {
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		log.WithError(err).Error("terminal setup")
		return
	}

	cfg := game.DefaultConfig()
	cfg.Light.ReflectionLevel = h.reflections
	g, err := game.New(screen, cfg, log)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(s, "Game setup failed: %v\n", err)
		log.WithError(err).Error("game setup")
		return
	}

	start := time.Now()
	log.WithField("term", term).Info("session started")
	g.Run()
	log.WithField("duration", time.Since(start).Round(time.Second).String()).Info("session ended")
}

// termMu serialises the TERM swap around terminfo lookup.
var termMu sync.Mutex

// newScreen creates and initialises a tcell screen over tty. tcell picks
// terminfo from the process environment, so TERM is swapped under a lock.
func newScreen(tty tcell.Tty, term string) (tcell.Screen, error) {
	termMu.Lock()
	prev, had := os.LookupEnv("TERM")
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	if had {
		_ = os.Setenv("TERM", prev)
	} else {
		_ = os.Unsetenv("TERM")
	}
	termMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("terminfo %q: %w", term, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	return screen, nil
}

// sanitizeName drops control characters from an SSH user name and caps it
// at maxNameBytes without splitting a rune.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
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

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, log logrus.FieldLogger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			log.WithField("path", path).Info("loaded host key")
			return signer, nil
		}
	}

	log.WithField("path", path).Info("generating ed25519 host key")
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	// Persisting is best effort; a fresh key next run only upsets known_hosts.
	if block, err := xssh.MarshalPrivateKey(key, "lightcaster server"); err == nil {
		if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
			log.WithError(err).Warn("could not save host key")
		}
	}
	return signer, nil
}
