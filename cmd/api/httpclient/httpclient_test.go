package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-compare/cmd/api/trace"
)

func TestClientPropagatesTraceHeaders(t *testing.T) {
	var gotRequestID, gotSpanID, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID = r.Header.Get("X-Request-Id")
		gotSpanID = r.Header.Get("X-Span-Id")
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := New(Config{Timeout: time.Second, UserAgent: "compare-bot/1.0"})
	ctx := trace.WithRequestAndSpan(context.Background(), "req-42", 0)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "req-42", gotRequestID)
	assert.Equal(t, "1", gotSpanID)
	assert.Equal(t, "compare-bot/1.0", gotUA)
	assert.Empty(t, req.Header.Get("X-Request-Id"))
}

func TestNewZeroConfigTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, New(Config{}).Timeout)
}
