// Package server hosts textray sessions. Every connected terminal gets its
// own observer walking the shared, read-only level; a session's loop decodes
// keys into camera commands and redraws at most once per burst of accepted
// changes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KazDragon/textray/internal/camera"
	"github.com/KazDragon/textray/internal/level"
	"github.com/KazDragon/textray/internal/raycast"
	"github.com/KazDragon/textray/internal/telemetry"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/trace"
)

// Server tracks live sessions on one level.
type Server struct {
	level    *level.Level
	renderer *raycast.Renderer
	logger   *slog.Logger
	tracer   trace.Tracer

	mu       sync.Mutex
	sessions []*Session
	nextID   int

	done     chan struct{}
	shutdown sync.Once
}

// New creates a server for lvl. A nil logger uses slog.Default().
func New(lvl *level.Level, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		level:    lvl,
		renderer: lvl.Renderer(),
		logger:   logger,
		tracer:   telemetry.Tracer("server"),
		done:     make(chan struct{}),
	}
}

// Level returns the level every session walks.
func (s *Server) Level() *level.Level { return s.level }

// NewSession registers a session drawing onto screen, starting at the
// level's start pose.
func (s *Server) NewSession(name string, screen tcell.Screen) (*Session, error) {
	ctrl, err := camera.NewController(s.level.Grid, s.level.Start)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	if name == "" {
		name = fmt.Sprintf("Player %d", id+1)
	}
	sess := newSession(id, name, screen, ctrl, s.renderer, s.level.Grid)
	s.sessions = append(s.sessions, sess)
	s.logger.Info("session connected", "id", id, "name", name, "sessions", len(s.sessions))
	return sess, nil
}

// RemoveSession deregisters sess and logs its statistics.
func (s *Server) RemoveSession(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, other := range s.sessions {
		if other == sess {
			s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
			break
		}
	}
	sess.Stats.log(s.logger, sess)
	s.logger.Info("session disconnected", "id", sess.ID, "name", sess.Name, "sessions", len(s.sessions))
}

// SessionCount returns the number of registered sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Shutdown ends every session loop. Safe to call more than once and from any
// goroutine.
func (s *Server) Shutdown() {
	s.shutdown.Do(func() {
		s.logger.Info("shutdown requested", "sessions", s.SessionCount())
		close(s.done)
	})
}

// Done is closed once Shutdown has been called.
func (s *Server) Done() <-chan struct{} { return s.done }

// Serve runs one complete session on screen: register, loop, deregister and
// finalise the screen.
func (s *Server) Serve(ctx context.Context, name string, screen tcell.Screen) error {
	sess, err := s.NewSession(name, screen)
	if err != nil {
		return err
	}
	defer screen.Fini()
	defer s.RemoveSession(sess)
	s.RunLoop(ctx, sess)
	return nil
}
