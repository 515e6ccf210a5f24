package server

import (
	"log/slog"
	"sync/atomic"
	"time"
)

// Stats counts what happened during one session. Counters are atomic so
// they can be read while the session loop is running.
type Stats struct {
	Started  time.Time
	Accepted atomic.Int64
	Rejected atomic.Int64
	Frames   atomic.Int64
}

func (st *Stats) log(logger *slog.Logger, sess *Session) {
	var dur time.Duration
	if !st.Started.IsZero() {
		dur = time.Since(st.Started).Round(time.Millisecond)
	}
	pose := sess.Controller.Pose()
	logger.Info("session stats",
		"id", sess.ID,
		"duration", dur,
		"accepted", st.Accepted.Load(),
		"rejected", st.Rejected.Load(),
		"frames", st.Frames.Load(),
		"x", pose.Position.X,
		"y", pose.Position.Y,
		"fov", sess.Controller.FOVDegrees(),
	)
}
