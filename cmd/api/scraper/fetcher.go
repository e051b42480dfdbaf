package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"product-compare/cmd/api/apperr"
	"product-compare/cmd/api/renderer"
)

// 상품 페이지 본문 최대 크기
const maxPageBytes = 5 << 20

// Fetcher 는 URL 의 HTML 을 가져온다.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher 는 서버 렌더링 페이지용 단일 GET fetcher 다.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", apperr.Wrap(apperr.KindFetch, "", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", apperr.Wrap(apperr.KindFetch, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperr.Wrap(apperr.KindFetch, "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", apperr.Wrap(apperr.KindFetch, "", err)
	}
	return string(body), nil
}

// ChromeFetcher 는 클라이언트 렌더링이 필요한 페이지용 fetcher 다.
// 문서 응답이 2xx 가 아니면 렌더링 결과를 버리고 fetch 에러를 반환한다.
type ChromeFetcher struct {
	opts   renderer.ChromeOptions
	render func(ctx context.Context, url string, opts renderer.ChromeOptions) (string, error)
}

func NewChromeFetcher(chromePath, userAgent string, timeout time.Duration) *ChromeFetcher {
	return &ChromeFetcher{
		opts: renderer.ChromeOptions{
			ChromePath: chromePath,
			UserAgent:  userAgent,
			Timeout:    timeout,
		},
		render: renderer.RenderHTML,
	}
}

func (f *ChromeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	htmlContent, err := f.render(ctx, url, f.opts)
	if err != nil {
		return "", apperr.Wrap(apperr.KindFetch, "", err)
	}
	return htmlContent, nil
}
