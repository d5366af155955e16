package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"sync"

	"github.com/peterkuimelis/lifecards/internal/game"
	"github.com/peterkuimelis/lifecards/internal/log"
)

// Server hosts lives for TCP clients. Each connection plays its own life.
type Server struct {
	Port string
	Life game.LifeConfig
	Out  io.Writer // host-side event log; nil means stdout
}

// Run listens on Port and serves clients until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+s.Port)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	fmt.Fprintf(s.out(), "Waiting for players on port %s...\n", s.Port)
	return s.Serve(ctx, ln)
}

// Serve accepts connections from ln until ctx is cancelled, then waits for
// running lives to finish. It closes ln.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	stop := context.AfterFunc(ctx, func() { ln.Close() })
	defer stop()
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		fmt.Fprintf(s.out(), "Player connected from %s\n", conn.RemoteAddr())

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.ServeConn(ctx, conn); err != nil {
				fmt.Fprintf(s.out(), "%s: %v\n", conn.RemoteAddr(), err)
			}
		}()
	}
}

// ServeConn plays one life over conn, starting with the join handshake,
// and closes conn when the life is over.
func (s *Server) ServeConn(ctx context.Context, conn net.Conn) error {
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()
	ctrl := NewNetworkController(conn)
	name, err := ctrl.ReadJoin()
	if err != nil {
		return err
	}
	return s.host(ctx, ctrl, name, log.NewTextLogger(s.out()))
}

// PlayLocal runs one life in-process, with the terminal client reading
// from in and rendering to out.
func PlayLocal(ctx context.Context, cfg game.LifeConfig, name string, in io.Reader, out io.Writer) error {
	clientConn, serverConn := net.Pipe()
	defer clientConn.Close()

	s := &Server{Life: cfg, Out: out}
	errCh := make(chan error, 1)
	go func() {
		defer serverConn.Close()
		ctrl := NewNetworkController(serverConn)
		joined, err := ctrl.ReadJoin()
		if err != nil {
			errCh <- err
			return
		}
		errCh <- s.host(ctx, ctrl, joined, nil)
	}()

	client := &Client{conn: clientConn, In: in, Out: out}
	if err := client.Join(name); err != nil {
		return err
	}
	replErr := client.RunREPL(ctx)
	clientConn.Close()
	if err := <-errCh; err != nil {
		return err
	}
	return replErr
}

// host plays a whole life against ctrl and reports the result.
func (s *Server) host(ctx context.Context, ctrl *NetworkController, name string, logger log.EventLogger) error {
	cfg := s.Life
	if logger != nil {
		cfg.Engine.Logger = logger
	}
	life, err := game.NewLife(cfg, ctrl)
	if err != nil {
		return fmt.Errorf("new life: %w", err)
	}
	if _, err := life.Start(name, nil); err != nil {
		_ = ctrl.SendError(err)
		return fmt.Errorf("start life: %w", err)
	}

	gs, err := PlayLife(ctx, life, cfg.MaxTurns, ctrl.SendError)
	life.Wait()
	if err != nil {
		return err
	}
	return ctrl.SendGameOver(gs)
}

// PlayLife plays turns until the life ends. Invalid selections are passed
// to reject and the turn is retried with the same hand. A non-positive
// maxTurns means 500.
func PlayLife(ctx context.Context, life *game.Life, maxTurns int, reject func(error) error) (game.GameState, error) {
	if maxTurns <= 0 {
		maxTurns = 500
	}
	for !life.Engine.State().Over {
		if err := ctx.Err(); err != nil {
			return life.Engine.State(), err
		}
		if life.Engine.State().Turn > maxTurns {
			return life.Engine.State(), fmt.Errorf("turn limit reached (%d turns)", maxTurns)
		}
		_, err := life.PlayTurn(ctx)
		if err == nil {
			continue
		}
		if !game.IsInvalidSelection(err) {
			return life.Engine.State(), err
		}
		if rerr := reject(err); rerr != nil {
			return life.Engine.State(), errors.Join(err, rerr)
		}
	}
	return life.Engine.State(), nil
}

func (s *Server) out() io.Writer {
	if s.Out == nil {
		return os.Stdout
	}
	return s.Out
}
