package scraper

import (
	"context"
	"os"
	"strings"
	"time"

	"product-compare/cmd/api/httpclient"
	"product-compare/cmd/api/trace"
	"product-compare/internal/logger"
	"product-compare/config"
)

// Scraper 는 Fetcher 로 HTML 을 가져온 뒤 strategy 에 맞는 파서로 텍스트를 추출한다.
// fetch 실패만 에러로 반환하고, 파싱 실패나 요소 누락은 빈 조각으로 처리한다.
type Scraper struct {
	fetcher  Fetcher
	strategy string
}

func NewScraper(fetcher Fetcher, strategy string) *Scraper {
	strategy = strings.ToLower(strings.TrimSpace(strategy))
	if strategy == "" {
		strategy = config.StrategySelectors
	}
	return &Scraper{fetcher: fetcher, strategy: strategy}
}

// New 는 설정값으로 fetcher 와 strategy 를 골라 Scraper 를 만든다.
func New(cfg config.ScraperConfig) *Scraper {
	var fetcher Fetcher
	if cfg.RenderJS {
		fetcher = NewChromeFetcher(os.Getenv("CHROME_PATH"), cfg.UserAgent, cfg.Timeout())
	} else {
		fetcher = NewHTTPFetcher(httpclient.New(httpclient.Config{
			Timeout:   cfg.Timeout(),
			UserAgent: cfg.UserAgent,
		}))
	}
	return NewScraper(fetcher, cfg.Strategy)
}

func (s *Scraper) Extract(ctx context.Context, url string) (string, error) {
	start := time.Now()
	htmlStr, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	text := s.parse(ctx, url, htmlStr)
	logger.DebugWithFields("scraper extracted page text", trace.LogFields(ctx, logger.Fields{
		"url":        url,
		"strategy":   s.strategy,
		"chars":      len(text),
		"duration":   time.Since(start).String(),
		"html_bytes": len(htmlStr),
	}))
	return text, nil
}

func (s *Scraper) parse(ctx context.Context, url, htmlStr string) string {
	var (
		text string
		err  error
	)
	switch s.strategy {
	case config.StrategyReadability:
		text, err = ParseReadability(url, htmlStr)
	case config.StrategyTrafilatura:
		text, err = ParseTrafilatura(url, htmlStr)
	default:
		return ParseSelectors(htmlStr)
	}
	if err != nil || text == "" {
		// 본문 추출기가 실패하면 셀렉터 방식으로 대체
		fields := logger.Fields{"url": url, "strategy": s.strategy}
		if err != nil {
			fields["error"] = err.Error()
		}
		logger.WarnWithFields("content extractor returned nothing, using selectors", trace.LogFields(ctx, fields))
		return ParseSelectors(htmlStr)
	}
	return text
}
