package neohttp

import (
	"log/slog"
	"time"
)

// Options configures the client. The configuration is copied by
// Connect and immutable afterwards; one client can safely serve any
// number of concurrent calls.
type Options struct {
	// URL is the database's HTTP endpoint.
	// Default: "http://localhost:7474"
	URL string

	// Username and Password for basic authentication. Both empty
	// disables authentication.
	Username string
	Password string

	// Database is the database queries run against when a handle is
	// requested without a name.
	// Default: "neo4j"
	Database string

	// Headers are sent on every request. They override the built-in
	// defaults and are overridden by per-call headers.
	Headers map[string]string

	// Timeout bounds one whole request/response exchange.
	// Default: 30s
	Timeout time.Duration

	// DialTimeout is the timeout for establishing new connections.
	// Default: 5s
	DialTimeout time.Duration

	// PoolSize is the maximum number of connections per host.
	// Default: 10
	PoolSize int

	// MaxIdleConns is the number of idle connections kept for reuse.
	// Default: same as PoolSize
	MaxIdleConns int

	// Proxy is an optional proxy URL. Empty uses the environment's
	// proxy settings.
	Proxy string

	// Logger receives debug-level request records. Nil disables logging.
	Logger *slog.Logger

	// Transport overrides the built-in pooled HTTP transport. Pool and
	// timeout options above only apply to the built-in transport.
	Transport Transport
}

func (o *Options) clone() *Options {
	c := *o
	if o.Headers != nil {
		c.Headers = make(map[string]string, len(o.Headers))
		for k, v := range o.Headers {
			c.Headers[k] = v
		}
	}
	return &c
}

func (o *Options) setDefaults() {
	if o.URL == "" {
		o.URL = "http://localhost:7474"
	}
	if o.Database == "" {
		o.Database = "neo4j"
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.DialTimeout == 0 {
		o.DialTimeout = 5 * time.Second
	}
	if o.PoolSize == 0 {
		o.PoolSize = 10
	}
	if o.MaxIdleConns == 0 {
		o.MaxIdleConns = o.PoolSize
	}
}

// QueryOptions configures a single query execution.
type QueryOptions struct {
	// Params are the query parameters, transmitted as a wire field
	// separate from the query text. Parameters prevent injection and
	// enable server-side plan caching.
	Params map[string]interface{}

	// Lean strips identity/label/type metadata from hydrated entities,
	// returning bare property maps.
	Lean bool

	// Headers apply to this call only and take precedence over
	// client-level headers. For Batch calls this is the only field
	// consulted; parameters and lean flags ride on each Statement.
	Headers map[string]string
}
