package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/skirunner/internal/config"
	"github.com/tomz197/skirunner/internal/draw"
	"github.com/tomz197/skirunner/internal/leaderboard"
	"github.com/tomz197/skirunner/internal/logger"
	"github.com/tomz197/skirunner/internal/loop"
	loopcfg "github.com/tomz197/skirunner/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultBoardPath   = "/app/data/leaderboard.msgpack"

	// Extra seconds given to sessions after the shutdown countdown ends.
	defaultShutdownGrace = 5.0
)

// app holds what every SSH session shares: the leaderboard, level table and shutdown signal.
type app struct {
	logger   *log.Logger
	levels   config.Levels
	board    *leaderboard.Board
	store    leaderboard.Store
	shutdown chan struct{}
	sessions sync.WaitGroup
}

func main() {
	l := logger.New(os.Stderr)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		l.Warn("failed to get working directory", "err", workErr)
	}
	l.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath, "working_dir", workingDir)

	levels, err := config.LoadLevels(config.GetEnv("SKI_LEVELS_FILE", ""))
	if err != nil {
		l.Fatal("failed to load levels", "err", err)
	}

	store := leaderboard.StoreAt(config.GetEnv("LEADERBOARD_FILE", defaultBoardPath))
	board, err := leaderboard.Open(store, config.GetEnvInt("LEADERBOARD_SIZE", loopcfg.BoardSize))
	if err != nil {
		l.Warn("starting with an empty leaderboard", "err", err)
	}

	a := &app{
		logger:   l,
		levels:   levels,
		board:    board,
		store:    store,
		shutdown: make(chan struct{}),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(l),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		l.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	l.Info("starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			l.Fatal("server error", "err", err)
		}
	}()

	<-done
	l.Info("shutting down server")

	// Notify players and wait for their sessions to end
	close(a.shutdown)
	grace := time.Duration(config.GetEnvFloat("SSH_SHUTDOWN_GRACE", defaultShutdownGrace) * float64(time.Second))
	a.waitSessions(loopcfg.ShutdownDisplaySeconds*time.Second + grace)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		l.Fatal("shutdown error", "err", err)
	}
}

// waitSessions blocks until every session ended or the timeout passed.
func (a *app) waitSessions(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		a.sessions.Wait()
		close(finished)
	}()
	select {
	case <-finished:
		a.logger.Info("all sessions closed")
	case <-time.After(timeout):
		a.logger.Warn("sessions still open after shutdown timeout")
	}
}

// gameMiddleware handles SSH sessions and runs one host loop per session.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		a.sessions.Add(1)
		defer a.sessions.Done()

		connLog := a.logger.With("remote", sess.RemoteAddr().String())
		sessLog := connLog.With("user", sess.User())
		sessLog.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		reader := bufio.NewReader(sess)
		err := loop.Run(reader, sess, loop.Options{
			TermSizeFunc: sizeTracker.getSize,
			Username:     sess.User(),
			Levels:       a.levels,
			Board:        a.board,
			Store:        a.store,
			Logger:       connLog, // The host adds the user itself
			Shutdown:     a.shutdown,
		})
		if err != nil {
			sessLog.Error("game error", "err", err)
		}

		sessLog.Info("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
