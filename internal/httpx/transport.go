// Package httpx provides the HTTP transport used by the client.
package httpx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Request is a transport-level request. Path is resolved against the
// transport's base URL unless it is already absolute.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Response is a fully buffered transport-level response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Transport performs the actual network I/O for the client.
// Implementations must be safe for concurrent use.
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
	Close() error
}

// Options configures the default HTTP transport.
type Options struct {
	BaseURL      string
	Username     string
	Password     string
	Timeout      time.Duration
	DialTimeout  time.Duration
	PoolSize     int
	MaxIdleConns int
	Proxy        string
}

// NewTransport builds the default pooled HTTP transport.
func NewTransport(opts *Options) (Transport, error) {
	base, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", opts.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", opts.BaseURL)
	}

	proxy := http.ProxyFromEnvironment
	if opts.Proxy != "" {
		proxyURL, err := url.Parse(opts.Proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy URL %q: %w", opts.Proxy, err)
		}
		proxy = http.ProxyURL(proxyURL)
	}

	dialer := &net.Dialer{Timeout: opts.DialTimeout}
	rt := &http.Transport{
		Proxy:               proxy,
		DialContext:         dialer.DialContext,
		MaxConnsPerHost:     opts.PoolSize,
		MaxIdleConns:        opts.MaxIdleConns,
		MaxIdleConnsPerHost: opts.MaxIdleConns,
	}

	return &httpTransport{
		base:     base,
		username: opts.Username,
		password: opts.Password,
		rt:       rt,
		client: &http.Client{
			Transport: rt,
			Timeout:   opts.Timeout,
		},
	}, nil
}

type httpTransport struct {
	base     *url.URL
	username string
	password string
	rt       *http.Transport
	client   *http.Client
}

func (t *httpTransport) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := t.resolve(req.Path)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	hr, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	for key, values := range req.Header {
		hr.Header[key] = values
	}
	if t.username != "" || t.password != "" {
		hr.SetBasicAuth(t.username, t.password)
	}

	resp, err := t.client.Do(hr)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   data,
	}, nil
}

func (t *httpTransport) resolve(path string) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}

	rel, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", path, err)
	}

	target := *t.base
	target.Path = strings.TrimSuffix(t.base.Path, "/") + "/" + strings.TrimPrefix(rel.Path, "/")
	target.RawQuery = rel.RawQuery
	return target.String(), nil
}

func (t *httpTransport) Close() error {
	t.rt.CloseIdleConnections()
	return nil
}

// IsTimeout reports whether err is a deadline expiry or an I/O timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
