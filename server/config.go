// Package server implements the Server Supervisor: the
// startup/bind/accept/shutdown lifecycle that turns an application
// callable into a running listener, plus the inherited-socket and TLS
// configuration surface around it.
package server

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tangerg/lynxgate/gateway"
	"github.com/tangerg/lynxgate/internal/fdinherit"
)

// defaultInheritedSocketEnv is the environment variable name consulted
// for an inherited listening socket when Host/Port are unset, matching
// the widely-used server_starter convention.
const defaultInheritedSocketEnv = "SERVER_STARTER_PORT"

// ErrAppRequired is returned by New when Config.App is nil.
var ErrAppRequired = errors.New("server: Config.App is required")

// ErrInheritedSocketConflict is returned by New when both an explicit
// Host/Port and a resolvable inherited-socket environment entry are
// present (testable scenario 6).
var ErrInheritedSocketConflict = errors.New("server: Host/Port and an inherited socket are both configured")

// TLSConfig carries the certificate material for an HTTPS listener.
// When set on Config, the scheme advertised to applications becomes
// "https" for every scope, upgraded WebSocket scopes included (no
// "wss" value is produced), and a "tls" extension is advertised in
// scope.Extensions.
type TLSConfig struct {
	CertFile     string
	KeyFile      string
	CAFile       string
	VerifyClient bool
}

// Config is the Supervisor's closed configuration surface: spec.md
// §4.4's option set, plus the additions SPEC_FULL.md documents
// (ConnectionPoolSize, InheritedSocketEnv, Log).
type Config struct {
	// App is the application callable this server drives. Required.
	App gateway.App

	// Host and Port select a bind address. Port 0 selects an ephemeral
	// port. Leave both zero-valued to bind via an inherited socket
	// instead (see InheritedSocketEnv).
	Host string
	Port int

	// TLS, if non-nil, serves HTTPS instead of plain HTTP.
	TLS *TLSConfig

	// Extensions is advertised to every scope via scope.Extensions, in
	// addition to "tls" when TLS is set.
	Extensions gateway.Extensions

	// Log receives structured records. Defaults to slog.Default().
	Log *slog.Logger
	// OnError, if set, is additionally invoked with every error this
	// server or a connection it owns logs.
	OnError func(err error)
	// Quiet is not read by the server: no access log records are
	// written, so there is nothing for it to suppress, and error
	// logging is never suppressed.
	Quiet bool

	// InheritedSocketEnv names the environment variable an inherited
	// listening socket is read from when Host/Port are both zero-
	// valued. Defaults to "SERVER_STARTER_PORT".
	InheritedSocketEnv string

	// ConnectionPoolSize bounds the number of goroutines dispatching
	// accepted connections. Zero or negative means unbounded (one bare
	// goroutine per accepted connection).
	ConnectionPoolSize int

	// SSEHeartbeat is forwarded to every connection's
	// connection.Options.SSEHeartbeat.
	SSEHeartbeat time.Duration
}

func (c *Config) inheritedSocketEnvName() string {
	if c.InheritedSocketEnv == "" {
		return defaultInheritedSocketEnv
	}
	return c.InheritedSocketEnv
}

// resolveBind decides, once and for all, whether this Supervisor binds
// an explicit address or inherits one, erroring on the conflict
// scenario spec.md §8 scenario 6 names.
func (c *Config) resolveBind(lookupEnv func(string) (string, bool)) (bindPlan, error) {
	envName := c.inheritedSocketEnvName()
	envValue, hasEnv := lookupEnv(envName)

	explicit := c.Host != "" || c.Port != 0
	if hasEnv && envValue != "" {
		entry, err := fdinherit.First(envValue)
		if err == nil {
			if explicit {
				return bindPlan{}, fmt.Errorf(
					"%w: explicit host/port (%q:%d) set alongside %s=%q",
					ErrInheritedSocketConflict, c.Host, c.Port, envName, envValue,
				)
			}
			return bindPlan{inherited: true, entry: entry}, nil
		}
	}
	return bindPlan{host: c.Host, port: c.Port}, nil
}

type bindPlan struct {
	inherited bool
	entry     fdinherit.Entry
	host      string
	port      int
}

func (c *Config) logger() *slog.Logger {
	if c.Log == nil {
		return slog.Default()
	}
	return c.Log
}

func (c *Config) reportError(context string, err error) {
	if err == nil {
		return
	}
	c.logger().Error(context, "err", err)
	if c.OnError != nil {
		c.OnError(err)
	}
}

func (c *Config) scheme() string {
	if c.TLS != nil {
		return "https"
	}
	return "http"
}

func (c *Config) extensions() gateway.Extensions {
	ext := make(gateway.Extensions, len(c.Extensions)+1)
	for k, v := range c.Extensions {
		ext[k] = v
	}
	if c.TLS != nil {
		opts := map[string]any{"verify_client": c.TLS.VerifyClient}
		ext["tls"] = opts
	}
	return ext
}
