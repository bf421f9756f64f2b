package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/tangerg/lynxgate/connection"
	"github.com/tangerg/lynxgate/gateway"
)

// connPool is the minimal interface the Supervisor dispatches accepted
// connections through, the same shape the teacher's pkg/sync.Pool
// adapts github.com/panjf2000/ants/v2 behind.
type connPool interface {
	Submit(f func()) error
}

// bareGoPool dispatches by launching one goroutine per submission,
// used when Config.ConnectionPoolSize is zero or negative.
type bareGoPool struct{}

func (bareGoPool) Submit(f func()) error {
	go f()
	return nil
}

// Supervisor drives one application through the startup → bind →
// accept → shutdown lifecycle spec.md §4.4 describes.
type Supervisor struct {
	cfg   Config
	state gateway.State
	pool  connPool

	// onListening, if set, is called with the bound address once Run
	// has a listener. Used by tests that bind an ephemeral port and
	// need to learn which one was chosen.
	onListening func(addr string)
}

// New validates cfg and returns a Supervisor ready to Run. It does not
// bind or run lifespan startup yet — those happen in Run, so a
// configuration error surfaces before any side effect.
func New(cfg Config) (*Supervisor, error) {
	if cfg.App == nil {
		return nil, ErrAppRequired
	}
	if _, err := cfg.resolveBind(os.LookupEnv); err != nil {
		return nil, err
	}

	pool, err := newConnPool(cfg.ConnectionPoolSize)
	if err != nil {
		return nil, err
	}

	return &Supervisor{
		cfg:   cfg,
		state: make(gateway.State),
		pool:  pool,
	}, nil
}

func newConnPool(size int) (connPool, error) {
	if size <= 0 {
		return bareGoPool{}, nil
	}
	p, err := ants.NewPool(size)
	if err != nil {
		return nil, fmt.Errorf("server: creating connection pool: %w", err)
	}
	return p, nil
}

// Run executes the full lifecycle: lifespan startup, bind, accept
// until ctx is done, lifespan shutdown. A startup failure or a bind
// error is returned at once, without binding or accepting. Otherwise
// Run returns once shutdown has completed, with the accept loop's
// error (nil for an ordinary stop); shutdown failures are not returned.
func (s *Supervisor) Run(ctx context.Context) error {
	driver := newLifespanDriver(s.cfg.App)
	driver.run(ctx, &gateway.Scope{Type: gateway.ScopeTypeLifespan, State: s.state})

	if err := driver.Startup(ctx); err != nil && !errors.Is(err, ErrLifespanUnsupported) {
		return fmt.Errorf("server: lifespan startup failed: %w", err)
	}

	listener, inherited, err := s.bind()
	if err != nil {
		return fmt.Errorf("server: bind: %w", err)
	}
	s.cfg.logger().Info("listening", "addr", listener.Addr().String(), "inherited", inherited)
	if s.onListening != nil {
		s.onListening(listener.Addr().String())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.acceptLoop(gctx, listener)
	})
	g.Go(func() error {
		<-gctx.Done()
		// Closing the net.Listener here only ever unblocks this
		// process's own Accept loop. For an inherited socket that
		// fd was dup'd by net.FileListener, so this never closes the
		// external supervisor's original descriptor (§4.4: "do not
		// forcibly close an inherited socket").
		return listener.Close()
	})

	runErr := g.Wait()
	if runErr != nil && errors.Is(runErr, net.ErrClosed) {
		runErr = nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	driver.Shutdown(shutdownCtx)

	return runErr
}

func (s *Supervisor) bind() (net.Listener, bool, error) {
	plan, err := s.cfg.resolveBind(os.LookupEnv)
	if err != nil {
		return nil, false, err
	}
	if plan.inherited {
		ln, err := plan.entry.Listener()
		return ln, true, err
	}
	addr := fmt.Sprintf("%s:%d", plan.host, plan.port)
	if s.cfg.TLS != nil {
		tlsCfg, err := s.cfg.TLS.build()
		if err != nil {
			return nil, false, err
		}
		ln, err := tlsListen(addr, tlsCfg)
		return ln, false, err
	}
	ln, err := net.Listen("tcp", addr)
	return ln, false, err
}

func (s *Supervisor) acceptLoop(ctx context.Context, listener net.Listener) error {
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		s.dispatch(ctx, conn)
	}
}

func (s *Supervisor) dispatch(ctx context.Context, conn net.Conn) {
	opts := connection.Options{
		Extensions:   s.cfg.extensions(),
		Log:          s.cfg.logger(),
		OnError:      s.cfg.OnError,
		SSEHeartbeat: s.cfg.SSEHeartbeat,
		Scheme:       s.cfg.scheme(),
	}
	c := connection.New(conn, s.cfg.App, s.state, opts)
	err := s.pool.Submit(func() { c.Serve(ctx) })
	if err != nil {
		s.cfg.reportError("connection dispatch failed", err)
		_ = conn.Close()
	}
}
