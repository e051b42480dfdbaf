package renderer

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// StatusError 는 문서 응답이 2xx 가 아닐 때 반환된다.
type StatusError struct {
	URL    string
	Status int64
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.Status, e.URL)
}

const USER_AGENT = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

// ChromeOptions 는 헤드리스 브라우저 렌더링 옵션이다. 빈 값은 기본값으로 채워진다.
type ChromeOptions struct {
	ChromePath string
	UserAgent  string
	Timeout    time.Duration
}

func (o ChromeOptions) withDefaults() ChromeOptions {
	if o.ChromePath == "" {
		o.ChromePath = os.Getenv("CHROME_PATH")
	}
	if o.ChromePath == "" {
		o.ChromePath = "/usr/bin/chromium-browser" // Docker/Linux 기본
	}
	if o.UserAgent == "" {
		o.UserAgent = USER_AGENT
	}
	if o.Timeout <= 0 {
		o.Timeout = 30 * time.Second
	}
	return o
}

// RenderHTML 은 클라이언트 렌더링이 필요한 상품 페이지를 헤드리스 크롬으로 열어 최종 HTML 을 반환한다.
func RenderHTML(ctx context.Context, url string, opts ChromeOptions) (string, error) {
	opts = opts.withDefaults()

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(opts.ChromePath),
		chromedp.UserAgent(opts.UserAgent),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-crashpad", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("no-default-browser-check", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("headless", true),
	)

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()
	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()
	browserCtx, cancel = context.WithTimeout(browserCtx, opts.Timeout)
	defer cancel()

	// 에러 페이지도 정상 로드되므로 문서 응답 상태를 직접 확인한다
	resp, err := chromedp.RunResponse(browserCtx, chromedp.Navigate(url))
	if err != nil {
		return "", err
	}
	if err := checkDocumentStatus(url, resp); err != nil {
		return "", err
	}

	var htmlContent string
	err = chromedp.Run(browserCtx,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &htmlContent),
	)
	if err != nil {
		return "", err
	}
	return htmlContent, nil
}

func checkDocumentStatus(url string, resp *network.Response) error {
	if resp == nil {
		return fmt.Errorf("no document response from %s", url)
	}
	if resp.Status < 200 || resp.Status >= 300 {
		return &StatusError{URL: url, Status: resp.Status}
	}
	return nil
}
