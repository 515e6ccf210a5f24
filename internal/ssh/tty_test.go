package ssh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

type fakeSession struct {
	gossh.Session
	env []string
}

func (f fakeSession) Environ() []string { return f.env }

func TestTerm(t *testing.T) {
	cases := []struct {
		name string
		env  []string
		want string
	}{
		{"set", []string{"LANG=C", "TERM=screen-256color"}, "screen-256color"},
		{"missing", []string{"LANG=C"}, DefaultTerm},
		{"empty", []string{"TERM="}, DefaultTerm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Term(fakeSession{env: tc.env}); got != tc.want {
				t.Errorf("Term = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestWindowSizeFollowsResizes(t *testing.T) {
	winCh := make(chan gossh.Window, 1)
	tty := NewSessionTty(fakeSession{}, gossh.Pty{Window: gossh.Window{Width: 80, Height: 24}}, winCh)

	ws, err := tty.WindowSize()
	if err != nil || ws.Width != 80 || ws.Height != 24 {
		t.Fatalf("initial WindowSize = %+v, %v", ws, err)
	}

	resized := make(chan struct{}, 2)
	tty.NotifyResize(func() { resized <- struct{}{} })
	tty.NotifyResize(func() { resized <- struct{}{} })
	winCh <- gossh.Window{Width: 120, Height: 40}

	select {
	case <-resized:
	case <-time.After(2 * time.Second):
		t.Fatal("resize callback not called")
	}
	ws, _ = tty.WindowSize()
	if ws.Width != 120 || ws.Height != 40 {
		t.Errorf("WindowSize after resize = %+v", ws)
	}
	close(winCh)
	select {
	case <-resized:
		t.Error("one window change fired the callback twice")
	case <-time.After(50 * time.Millisecond):
	}
}

type fakeRequester struct {
	sent atomic.Int32
	fail int32
}

func (f *fakeRequester) SendRequest(name string, wantReply bool, _ []byte) (bool, error) {
	if name != "keepalive@openssh.com" || !wantReply {
		return false, errors.New("unexpected request")
	}
	if f.sent.Add(1) >= f.fail && f.fail > 0 {
		return false, errors.New("channel closed")
	}
	return true, nil
}

func TestKeepAliveReportsDeadClient(t *testing.T) {
	req := &fakeRequester{fail: 3}
	err := KeepAlive(context.Background(), req, time.Millisecond)
	if err == nil {
		t.Fatal("KeepAlive returned nil for a failing client")
	}
	if got := req.sent.Load(); got != 3 {
		t.Errorf("sent %d requests, want 3", got)
	}
}

func TestKeepAliveStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := &fakeRequester{}
	if err := KeepAlive(ctx, req, time.Millisecond); err != nil {
		t.Errorf("KeepAlive = %v, want nil on cancellation", err)
	}
	if err := KeepAlive(ctx, req, 0); err != nil {
		t.Errorf("disabled KeepAlive = %v", err)
	}
}
