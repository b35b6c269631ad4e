package neohttp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neohttp/neohttp-go/internal/httpx"
	"github.com/neohttp/neohttp-go/internal/wire"
)

// Version identifies this client in the default User-Agent header.
const Version = "0.1.0"

// Transport performs the network I/O for the client. The built-in
// transport is a pooled net/http client; supply your own through
// Options.Transport to control sockets, TLS, or pooling yourself.
type Transport = httpx.Transport

// Request is a transport-level request.
type Request = httpx.Request

// Response is a fully buffered transport-level response.
type Response = httpx.Response

// Client is the entry point for talking to the database over HTTP.
// It is safe for concurrent use by multiple goroutines: configuration
// is immutable after Connect and calls share no mutable state.
type Client struct {
	transport Transport
	opts      *Options
	logger    *slog.Logger
}

// Connect builds a client and verifies the endpoint by fetching the
// discovery document.
//
// Example:
//
//	db, err := neohttp.Connect(ctx, &neohttp.Options{
//		URL:      "http://localhost:7474",
//		Username: "neo4j",
//		Password: "secret",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Close()
func Connect(ctx context.Context, opts *Options) (*Client, error) {
	if opts == nil {
		opts = &Options{}
	}
	opts = opts.clone()
	opts.setDefaults()

	transport := opts.Transport
	if transport == nil {
		var err error
		transport, err = httpx.NewTransport(&httpx.Options{
			BaseURL:      opts.URL,
			Username:     opts.Username,
			Password:     opts.Password,
			Timeout:      opts.Timeout,
			DialTimeout:  opts.DialTimeout,
			PoolSize:     opts.PoolSize,
			MaxIdleConns: opts.MaxIdleConns,
			Proxy:        opts.Proxy,
		})
		if err != nil {
			return nil, protocolError("invalid endpoint configuration", err)
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Client{
		transport: transport,
		opts:      opts,
		logger:    logger,
	}

	if err := c.Ping(ctx); err != nil {
		transport.Close()
		return nil, err
	}
	return c, nil
}

// Database returns a handle on the named database. The handle performs
// no server round trip; pass "" for the client's default database.
func (c *Client) Database(name string) *Database {
	if name == "" {
		name = c.opts.Database
	}
	return &Database{
		name:   name,
		client: c,
	}
}

// Ping verifies the endpoint is reachable and responding.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return err
	}
	if e := classifyStatus(resp); e != nil {
		return e
	}
	return nil
}

// ServerInfo returns the server's discovery document: product version,
// edition, and the endpoints it advertises.
func (c *Client) ServerInfo(ctx context.Context) (map[string]interface{}, error) {
	body, err := c.Do(ctx, http.MethodGet, "/", nil, nil)
	if err != nil {
		return nil, err
	}

	info, ok := body.(map[string]interface{})
	if !ok {
		return nil, protocolError("discovery document is not an object", nil)
	}
	return info, nil
}

// ListDatabases returns the names of all databases on the server.
func (c *Client) ListDatabases(ctx context.Context) ([]string, error) {
	result, err := c.Database("system").Query(ctx, "SHOW DATABASES")
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		if name, ok := row["name"].(string); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// Do sends a custom request to a non-statement endpoint, for server
// plugins and administrative APIs. body may be nil, raw []byte, or any
// JSON-encodable value. The response body is returned parsed when the
// server marks it as JSON, raw bytes otherwise, and nil when empty.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}, headers map[string]string) (interface{}, error) {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case []byte:
		payload = b
	default:
		var err error
		payload, err = json.Marshal(b)
		if err != nil {
			return nil, protocolError("request body not encodable", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload, headers)
	if err != nil {
		return nil, err
	}
	if e := classifyStatus(resp); e != nil {
		return nil, e
	}

	if len(resp.Body) == 0 {
		return nil, nil
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "json") {
		v, err := wire.DecodeValue(resp.Body)
		if err != nil {
			return nil, protocolError("undecodable response body", err)
		}
		return v, nil
	}
	return resp.Body, nil
}

// Close releases the transport's pooled connections. The client must
// not be used afterwards.
func (c *Client) Close() error {
	return c.transport.Close()
}

// send performs one transport exchange with merged headers. Transport
// failures come back already classified.
func (c *Client) send(ctx context.Context, method, path string, body []byte, callHeaders map[string]string) (*Response, error) {
	req := &Request{
		Method: method,
		Path:   path,
		Header: c.mergeHeaders(callHeaders),
		Body:   body,
	}

	start := time.Now()
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		e := classifyTransport(err)
		c.logger.DebugContext(ctx, "request failed",
			"method", method, "path", path, "kind", e.Kind.String(), "elapsed", time.Since(start))
		return nil, e
	}

	c.logger.DebugContext(ctx, "request completed",
		"method", method, "path", path, "status", resp.Status, "elapsed", time.Since(start))
	return resp, nil
}

// mergeHeaders layers headers lowest to highest precedence: built-in
// defaults, client-level headers, per-call headers. Colliding keys
// override, values never merge.
func (c *Client) mergeHeaders(callHeaders map[string]string) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", "neohttp-go/"+Version)
	h.Set("X-Stream", "true")
	h.Set("X-Request-Id", uuid.NewString())

	for k, v := range c.opts.Headers {
		h.Set(k, v)
	}
	for k, v := range callHeaders {
		h.Set(k, v)
	}
	return h
}
