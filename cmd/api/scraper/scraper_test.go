package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-compare/cmd/api/apperr"
	"product-compare/cmd/api/httpclient"
	"product-compare/cmd/api/renderer"
	"product-compare/config"
)

const productPage = `<!DOCTYPE html>
<html><head><title>Acme Blender</title></head>
<body>
  <h1>
    Acme Blender 3000
  </h1>
  <span class="price"> $149.99 </span>
  <span class="price">$10.00</span>
  <p>A powerful blender for smoothies.</p>
  <p>Second paragraph.</p>
</body></html>`

func newTestScraper(strategy string) *Scraper {
	return NewScraper(NewHTTPFetcher(httpclient.New(httpclient.Config{Timeout: 2 * time.Second})), strategy)
}

func TestParseSelectorsFirstMatches(t *testing.T) {
	assert.Equal(t, "Acme Blender 3000. $149.99. A powerful blender for smoothies.", ParseSelectors(productPage))
}

func TestParseSelectorsMissingElements(t *testing.T) {
	assert.Equal(t, "Only title. . ", ParseSelectors("<html><body><h1>Only title</h1></body></html>"))
	assert.Equal(t, ". . ", ParseSelectors(""))
}

func TestExtractFetchesAndParses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(productPage))
	}))
	defer srv.Close()

	text, err := newTestScraper(config.StrategySelectors).Extract(context.Background(), srv.URL+"/p/1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Blender 3000. $149.99. A powerful blender for smoothies.", text)
}

func TestExtractNon2xxIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "blocked", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := newTestScraper(config.StrategySelectors).Extract(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, apperr.KindFetch, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "403")
}

func TestExtractNetworkErrorIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	_, err := newTestScraper(config.StrategySelectors).Extract(context.Background(), addr)
	require.Error(t, err)
	assert.Equal(t, apperr.KindFetch, apperr.KindOf(err))
}

func TestExtractorFallsBackToSelectors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body><h1>Tiny</h1></body></html>`))
	}))
	defer srv.Close()

	text, err := newTestScraper(config.StrategyReadability).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}

func TestChromeFetcherStatusErrorIsFetchError(t *testing.T) {
	f := NewChromeFetcher("", "", time.Second)
	f.render = func(ctx context.Context, url string, opts renderer.ChromeOptions) (string, error) {
		return "", &renderer.StatusError{URL: url, Status: http.StatusNotFound}
	}

	text, err := NewScraper(f, config.StrategySelectors).Extract(context.Background(), "https://shop.example.com/gone")
	require.Error(t, err)
	assert.Empty(t, text)
	assert.Equal(t, apperr.KindFetch, apperr.KindOf(err))

	var statusErr *renderer.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.EqualValues(t, http.StatusNotFound, statusErr.Status)
}
