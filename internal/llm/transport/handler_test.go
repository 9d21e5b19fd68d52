package transport_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spawner-ai/skillbench/internal/llm/transport"
)

type stubAdapter struct {
	endpoint string
}

func (s *stubAdapter) Build(ctx context.Context, req *transport.Request) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(req.Prompt))
}

func (s *stubAdapter) Parse(httpResp *http.Response) (*transport.Response, error) {
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", httpResp.StatusCode)
	}
	return &transport.Response{Content: string(body)}, nil
}

func (s *stubAdapter) Name() string { return "stub" }

type stubRouter struct {
	adapter transport.ProviderAdapter
	err     error
}

func (r *stubRouter) Pick(_, _ string) (transport.ProviderAdapter, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.adapter, nil
}

func TestChain_ExecutionOrder(t *testing.T) {
	var order []string

	tag := func(name string) transport.Middleware {
		return func(next transport.Handler) transport.Handler {
			return transport.HandlerFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
				order = append(order, name+"_before")
				resp, err := next.Handle(ctx, req)
				order = append(order, name+"_after")
				return resp, err
			})
		}
	}

	core := transport.HandlerFunc(func(context.Context, *transport.Request) (*transport.Response, error) {
		order = append(order, "core")
		return &transport.Response{Content: "ok"}, nil
	})

	chained := transport.Chain(core, tag("outer"), tag("inner"))
	resp, err := chained.Handle(context.Background(), &transport.Request{})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, []string{"outer_before", "inner_before", "core", "inner_after", "outer_after"}, order)
}

func TestHTTPHandler_Handle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fmt.Fprintf(w, "echo:%s", body)
	}))
	defer srv.Close()

	h := transport.NewHTTPHandler(srv.Client(), &stubRouter{adapter: &stubAdapter{endpoint: srv.URL}})

	resp, err := h.Handle(context.Background(), &transport.Request{
		Operation: transport.OpJudgment,
		Provider:  "stub",
		Model:     "stub-1",
		Prompt:    "compare these",
	})

	require.NoError(t, err)
	assert.Equal(t, "echo:compare these", resp.Content)
	assert.GreaterOrEqual(t, resp.Usage.LatencyMs, int64(0))
}

func TestHTTPHandler_RouterError(t *testing.T) {
	h := transport.NewHTTPHandler(http.DefaultClient, &stubRouter{err: errors.New("unknown provider")})

	_, err := h.Handle(context.Background(), &transport.Request{Provider: "nope"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to select provider")
}

func TestHTTPHandler_PerRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	h := transport.NewHTTPHandler(srv.Client(), &stubRouter{adapter: &stubAdapter{endpoint: srv.URL}})

	_, err := h.Handle(context.Background(), &transport.Request{Timeout: 20 * time.Millisecond})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request failed")
}
