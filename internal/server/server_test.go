package server

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type echoReviewer struct{}

func (echoReviewer) Review(_ context.Context, source string) (*core.Submission, error) {
	if strings.TrimSpace(source) == "" {
		return nil, core.ErrEmptySource
	}
	return &core.Submission{ID: "1", Review: &core.ParsedReview{Issues: source}}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", RequestTimeout: time.Minute},
		AI:     config.AIConfig{Language: "Python"},
	}
	srv, err := NewServer(cfg, echoReviewer{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return srv
}

func TestRouter_Routes(t *testing.T) {
	h := newTestServer(t).Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		ctype      string
		wantStatus int
		wantBody   string
	}{
		{name: "Health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK, wantBody: "OK"},
		{name: "Form", method: http.MethodGet, path: "/", wantStatus: http.StatusOK, wantBody: "Submit for Review"},
		{
			name: "Form post", method: http.MethodPost, path: "/review",
			body: "code=x+%3D+1", ctype: "application/x-www-form-urlencoded",
			wantStatus: http.StatusOK, wantBody: "x = 1",
		},
		{
			name: "API", method: http.MethodPost, path: "/api/v1/review",
			body: `{"code":"y = 2"}`, ctype: "application/json",
			wantStatus: http.StatusOK, wantBody: `"issues":"y = 2"`,
		},
		{name: "Wrong method", method: http.MethodGet, path: "/api/v1/review", wantStatus: http.StatusMethodNotAllowed},
		{name: "Unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.ctype != "" {
				req.Header.Set("Content-Type", tt.ctype)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestServer_ServeAndStop(t *testing.T) {
	srv := newTestServer(t)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(l) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + l.Addr().String() + "/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "OK", string(body))

	require.NoError(t, srv.Stop())
	require.NoError(t, <-errCh)
	client.CloseIdleConnections()
}
