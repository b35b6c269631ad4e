package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTransport(t *testing.T, baseURL string, opts *Options) Transport {
	t.Helper()
	if opts == nil {
		opts = &Options{}
	}
	opts.BaseURL = baseURL
	tr, err := NewTransport(opts)
	require.NoError(t, err)
	t.Cleanup(func() { tr.Close() })
	return tr
}

func TestTransportDo(t *testing.T) {
	var gotPath, gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, nil)
	resp, err := tr.Do(context.Background(), &Request{
		Method: http.MethodPost,
		Path:   "/db/neo4j/tx/commit",
		Body:   []byte(`{"statements":[]}`),
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, `{"ok": true}`, string(resp.Body))
	assert.Equal(t, "/db/neo4j/tx/commit", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, `{"statements":[]}`, gotBody)
}

func TestTransportBasicAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "neo4j" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, &Options{Username: "neo4j", Password: "secret"})
	resp, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestTransportHeadersForwarded(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("X-Custom", "value")
	tr := newTestTransport(t, srv.URL, nil)
	_, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/", Header: header})
	require.NoError(t, err)
	assert.Equal(t, "value", got.Get("X-Custom"))
}

func TestTransportBaseURLWithPathPrefix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL+"/proxy/prefix", nil)
	_, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/db/neo4j/tx/commit"})
	require.NoError(t, err)
	assert.Equal(t, "/proxy/prefix/db/neo4j/tx/commit", gotPath)
}

func TestTransportQueryStringPreserved(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, nil)
	_, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/labels?limit=10"})
	require.NoError(t, err)
	assert.Equal(t, "limit=10", gotQuery)
}

func TestNewTransportRejectsRelativeURL(t *testing.T) {
	_, err := NewTransport(&Options{BaseURL: "localhost:7474"})
	assert.Error(t, err)
}

func TestTransportConnectionRefused(t *testing.T) {
	// A server that is immediately closed leaves a port nothing listens on.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	tr := newTestTransport(t, addr, nil)
	_, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	require.Error(t, err)
	assert.False(t, IsTimeout(err))
}

func TestIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := tr.Do(ctx, &Request{Method: http.MethodGet, Path: "/"})
	require.Error(t, err)
	assert.True(t, IsTimeout(err))

	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(errors.New("connection refused")))
}

func TestTransportClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	tr := newTestTransport(t, srv.URL, &Options{Timeout: 20 * time.Millisecond})
	_, err := tr.Do(context.Background(), &Request{Method: http.MethodGet, Path: "/"})
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}
