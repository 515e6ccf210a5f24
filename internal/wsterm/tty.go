// Package wsterm serves a tcell terminal over a websocket, for browser
// terminal emulators such as xterm.js.
//
// Binary messages carry raw terminal bytes in both directions. Text messages
// from the client are JSON control messages; the only one understood is
//
//	{"type": "resize", "cols": 120, "rows": 40}
package wsterm

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

type control struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

// Tty implements tcell.Tty over a websocket connection.
type Tty struct {
	conn      *websocket.Conn
	keepalive time.Duration

	pr *io.PipeReader
	pw *io.PipeWriter

	wmu sync.Mutex // one writer at a time, as gorilla requires

	mu   sync.Mutex
	size tcell.WindowSize
	cb   func()

	start     sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

// New wraps conn. size is the client's initial window; keepalive is the ping
// interval, zero to disable.
func New(conn *websocket.Conn, size tcell.WindowSize, keepalive time.Duration) *Tty {
	pr, pw := io.Pipe()
	t := &Tty{
		conn:      conn,
		keepalive: keepalive,
		pr:        pr,
		pw:        pw,
		size:      size,
		done:      make(chan struct{}),
	}
	if keepalive > 0 {
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(2 * keepalive))
		})
	}
	return t
}

// Start begins reading from the connection. Later calls are no-ops.
func (t *Tty) Start() error {
	t.start.Do(func() {
		if t.keepalive > 0 {
			_ = t.conn.SetReadDeadline(time.Now().Add(2 * t.keepalive))
			go t.pingLoop()
		}
		go t.readLoop()
	})
	return nil
}

func (t *Tty) Stop() error  { return nil }
func (t *Tty) Drain() error { return nil }

// Read returns keyboard input sent by the client.
func (t *Tty) Read(b []byte) (int, error) { return t.pr.Read(b) }

// Write sends terminal output to the client as one binary message.
func (t *Tty) Write(b []byte) (int, error) {
	t.wmu.Lock()
	defer t.wmu.Unlock()
	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := t.conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Close tears the connection down and unblocks readers.
func (t *Tty) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.done)
		t.pw.CloseWithError(io.EOF)
		t.wmu.Lock()
		_ = t.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		t.wmu.Unlock()
		err = t.conn.Close()
	})
	return err
}

// Done is closed when the connection ends, from either side.
func (t *Tty) Done() <-chan struct{} { return t.done }

func (t *Tty) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size, nil
}

func (t *Tty) NotifyResize(cb func()) {
	t.mu.Lock()
	t.cb = cb
	t.mu.Unlock()
}

func (t *Tty) readLoop() {
	defer t.Close()
	for {
		mt, data, err := t.conn.ReadMessage()
		if err != nil {
			return
		}
		switch mt {
		case websocket.BinaryMessage:
			if _, err := t.pw.Write(data); err != nil {
				return
			}
		case websocket.TextMessage:
			t.control(data)
		}
	}
}

// control applies a client control message. Malformed messages are ignored.
func (t *Tty) control(data []byte) {
	var msg control
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.Type != "resize" || msg.Cols <= 0 || msg.Rows <= 0 {
		return
	}
	t.mu.Lock()
	t.size = tcell.WindowSize{Width: msg.Cols, Height: msg.Rows}
	cb := t.cb
	t.mu.Unlock()
	if cb != nil {
		cb()
	}
}

func (t *Tty) pingLoop() {
	ticker := time.NewTicker(t.keepalive)
	defer ticker.Stop()
	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.wmu.Lock()
			err := t.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			t.wmu.Unlock()
			if err != nil {
				t.Close()
				return
			}
		}
	}
}
