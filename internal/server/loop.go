package server

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RunLoop is the per-session goroutine. It owns sess.Controller: commands are
// applied here and the view is redrawn here, once per drained redraw signal.
// Blocks until the player quits, the screen closes, ctx is cancelled or the
// server shuts down.
func (s *Server) RunLoop(ctx context.Context, sess *Session) {
	ctx, span := s.tracer.Start(ctx, "session.run", trace.WithAttributes(
		attribute.Int("session.id", sess.ID),
		attribute.String("session.name", sess.Name),
	))
	defer span.End()
	sess.Stats.Started = time.Now()

	closed := make(chan struct{})
	defer close(closed)

	// Async input reader. PollEvent returns nil once the screen is finalised.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		defer close(eventCh)
		for {
			ev := sess.Screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-closed:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			span.SetAttributes(attribute.String("session.end", "cancelled"))
			return
		case <-s.done:
			span.SetAttributes(attribute.String("session.end", "shutdown"))
			return

		case ev, ok := <-eventCh:
			if !ok {
				span.SetAttributes(attribute.String("session.end", "disconnected"))
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				sess.Screen.Sync()
				sess.Controller.Invalidate()
			case *tcell.EventKey:
				switch action, cmd := keyToAction(ev); action {
				case ActionQuit:
					span.SetAttributes(attribute.String("session.end", "quit"))
					return
				case ActionShutdown:
					s.logger.Info("shutdown requested by session", "id", sess.ID, "name", sess.Name)
					span.SetAttributes(attribute.String("session.end", "shutdown"))
					s.Shutdown()
					return
				case ActionCommand:
					if sess.Controller.Apply(cmd) {
						sess.Stats.Accepted.Add(1)
					} else {
						sess.Stats.Rejected.Add(1)
					}
				}
			}

		case <-sess.Controller.Redraw():
			if sess.Controller.TakeDirty() {
				s.renderSession(ctx, sess)
			}
		}
	}
}

// renderSession draws one frame from the controller's latest pose.
func (s *Server) renderSession(ctx context.Context, sess *Session) {
	_, span := s.tracer.Start(ctx, "session.render")
	defer span.End()
	w, h := sess.draw()
	sess.Stats.Frames.Add(1)
	span.SetAttributes(
		attribute.Int("viewport.width", w),
		attribute.Int("viewport.height", h),
	)
}
