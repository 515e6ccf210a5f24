package main

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/KazDragon/textray/internal/level"
	"github.com/KazDragon/textray/internal/server"
)

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect string
	}{
		{"normal short name", "Alice", "Alice"},
		{"exactly 16 chars", "1234567890123456", "1234567890123456"},
		{"long name truncated", "ThisIsAVeryLongUsername", "ThisIsAVeryLongU"},
		{"control chars stripped", "he\x00ll\x1bo", "hello"},
		{"ansi escape partial", "he\x1b[31mllo", "he[31mllo"},
		{"empty input", "", ""},
		{"pure control chars", "\x00\x01\x02\x1b", ""},
		{"multi-byte runes truncated by byte limit", "日本語のテスト名前", "日本語のテ"},
		{"emoji truncated by byte limit", "🎮Player🎮Name🎮", "🎮Player🎮Na"},
		{"invalid utf-8 dropped", "ab\xffcd", "abcd"},
		{"tabs stripped", "hello\tworld", "helloworld"},
		{"newlines stripped", "hello\nworld", "helloworld"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sanitizeName(tc.input)
			if got != tc.expect {
				t.Errorf("sanitizeName(%q) = %q, want %q", tc.input, got, tc.expect)
			}
		})
	}
}

func TestTermFor(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cases := []struct {
		name string
		term string
		want string
	}{
		{"xterm-256color", "xterm-256color", "xterm-256color"},
		{"tmux", "tmux", "tmux"},
		{"linux", "linux", "linux"},
		{"vt100", "vt100", "vt100"},
		{"screen", "screen", "screen"},
		{"rxvt-unicode-256color", "rxvt-unicode-256color", "rxvt-unicode-256color"},
		{"unknown term", "evil-term", "xterm-256color"},
		{"path traversal", "../../../etc/passwd", "xterm-256color"},
		{"empty string", "", "xterm-256color"},
		{"xterm-kitty", "xterm-kitty", "xterm-256color"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := termFor(tc.term, logger); got != tc.want {
				t.Errorf("termFor(%q) = %q, want %q", tc.term, got, tc.want)
			}
		})
	}
}

func TestQueryInt(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"120", 120},
		{"", 80},
		{"-4", 80},
		{"0", 80},
		{"lots", 80},
		{"100000", 80},
	}
	for _, tc := range cases {
		if got := queryInt(tc.in, 80); got != tc.want {
			t.Errorf("queryInt(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestHostKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "host_key")

	first, err := hostKey(path, logger)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("host key not persisted: %v", err)
	}
	second, err := hostKey(path, logger)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(first.PublicKey().Marshal(), second.PublicKey().Marshal()) {
		t.Error("reloaded host key differs from the generated one")
	}
	if first.PublicKey().Type() != "ssh-ed25519" {
		t.Errorf("key type = %s, want ssh-ed25519", first.PublicKey().Type())
	}
}

func TestHostKeyKeepsUnparsableFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "host_key")
	junk := []byte("not a key\n")
	if err := os.WriteFile(path, junk, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := hostKey(path, logger); err == nil {
		t.Fatal("hostKey accepted a file that is not a key")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, junk) {
		t.Error("hostKey overwrote an existing key file")
	}
}

func TestLoadLevel(t *testing.T) {
	lvl, err := loadLevel("")
	if err != nil {
		t.Fatalf("default level: %v", err)
	}
	if lvl.Name != "courtyard" {
		t.Errorf("default level = %q", lvl.Name)
	}
	if _, err := loadLevel(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("missing level file loaded without error")
	}
}

func TestHandleWSRejectsPlainHTTP(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(level.MustDefault(), logger)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	handleWS(srv, 0, logger).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a non-websocket request", rec.Code)
	}
	if srv.SessionCount() != 0 {
		t.Error("a session was created for a failed upgrade")
	}
}
