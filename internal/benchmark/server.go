package benchmark

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

// DefaultWarmup is how long a freshly started inference server gets before
// trials run against it.
const DefaultWarmup = 20 * time.Second

const defaultKillGrace = 5 * time.Second

// PlamoServer manages a long-lived plamo-translate inference server so the
// prestart trials measure translation alone, not model load.
type PlamoServer struct {
	path      string
	args      []string
	warmup    time.Duration
	killGrace time.Duration
	log       zerolog.Logger

	cmd *exec.Cmd
}

// NewPlamoServer prepares a server around the resolved plamo-translate
// executable. Nothing is spawned until Start.
func NewPlamoServer(path string, warmup time.Duration, log zerolog.Logger) *PlamoServer {
	if warmup <= 0 {
		warmup = DefaultWarmup
	}
	return &PlamoServer{
		path:      path,
		args:      []string{"server"},
		warmup:    warmup,
		killGrace: defaultKillGrace,
		log:       log,
	}
}

// Start spawns the server and blocks through the warmup window. The server
// publishes no readiness signal, so the warmup is a plain wait.
func (s *PlamoServer) Start(ctx context.Context) error {
	if s.cmd != nil {
		return fmt.Errorf("plamo server already started")
	}

	cmd := exec.Command(s.path, s.args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.path, err)
	}
	s.cmd = cmd

	s.log.Info().Str("path", s.path).Dur("warmup", s.warmup).Msg("plamo server starting")

	select {
	case <-ctx.Done():
		s.Stop()
		return ctx.Err()
	case <-time.After(s.warmup):
	}

	s.log.Info().Msg("plamo server ready")
	return nil
}

// Stop terminates the server: SIGTERM first, SIGKILL after the grace
// window. Safe to call when nothing is running.
func (s *PlamoServer) Stop() {
	if s == nil || s.cmd == nil || s.cmd.Process == nil {
		return
	}

	done := make(chan error, 1)
	go func() { done <- s.cmd.Wait() }()

	_ = s.cmd.Process.Signal(syscall.SIGTERM)

	select {
	case <-done:
		s.log.Info().Msg("plamo server stopped")
	case <-time.After(s.killGrace):
		s.log.Warn().Msg("plamo server ignored SIGTERM, killing")
		_ = s.cmd.Process.Kill()
		<-done
	}

	s.cmd = nil
}
