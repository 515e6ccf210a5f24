// Package ssh adapts gliderlabs SSH sessions into tcell terminals.
package ssh

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// DefaultTerm is assumed when the client does not send TERM.
const DefaultTerm = "xterm-256color"

// SessionTty implements tcell.Tty on top of one SSH session channel.
type SessionTty struct {
	session gossh.Session

	mu     sync.Mutex
	window gossh.Window
	winCh  <-chan gossh.Window
	cb     func()
	once   sync.Once
}

// NewSessionTty wraps s. pty holds the initial window; winCh delivers the
// client's window-change requests.
func NewSessionTty(s gossh.Session, pty gossh.Pty, winCh <-chan gossh.Window) *SessionTty {
	return &SessionTty{session: s, window: pty.Window, winCh: winCh}
}

func (t *SessionTty) Read(b []byte) (int, error)  { return t.session.Read(b) }
func (t *SessionTty) Write(b []byte) (int, error) { return t.session.Write(b) }
func (t *SessionTty) Close() error                { return t.session.Close() }

// Start, Stop and Drain are no-ops: the channel is opened and torn down by
// the SSH server, and writes are not buffered.
func (t *SessionTty) Start() error { return nil }
func (t *SessionTty) Stop() error  { return nil }
func (t *SessionTty) Drain() error { return nil }

// WindowSize returns the latest size the client reported.
func (t *SessionTty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.window.Width, Height: t.window.Height}, nil
}

// NotifyResize registers cb for window changes. tcell may call this more than
// once; the channel is drained by a single goroutine for the session's life.
func (t *SessionTty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()

	t.once.Do(func() {
		go func() {
			for win := range t.winCh {
				t.mu.Lock()
				t.window = win
				localCb := t.cb
				t.mu.Unlock()
				if localCb != nil {
					localCb()
				}
			}
		}()
	})
}

// Term returns the TERM the client sent, or DefaultTerm.
func Term(s gossh.Session) string {
	for _, env := range s.Environ() {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && v != "" {
			return v
		}
	}
	return DefaultTerm
}

// Requester is the part of an SSH channel KeepAlive needs.
type Requester interface {
	SendRequest(name string, wantReply bool, payload []byte) (bool, error)
}

// KeepAlive sends an OpenSSH keepalive request every interval until ctx is
// done. It returns the first send error, which means the client has gone.
func KeepAlive(ctx context.Context, ch Requester, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := ch.SendRequest("keepalive@openssh.com", true, nil); err != nil {
				return err
			}
		}
	}
}
