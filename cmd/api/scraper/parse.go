package scraper

import (
	"bufio"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// 본문 추출 결과를 프롬프트에 넣을 때의 최대 길이(rune)
const maxContentRunes = 8000

// ParseSelectors 는 첫 번째 h1, 첫 번째 .price, 첫 번째 p 를 "title. price. description" 으로 이어 붙인다.
// 요소가 없으면 해당 자리는 빈 문자열이 된다.
func ParseSelectors(htmlStr string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return ". . "
	}
	title := normalizeText(doc.Find("h1").First().Text())
	price := normalizeText(doc.Find(".price").First().Text())
	description := normalizeText(doc.Find("p").First().Text())
	return fmt.Sprintf("%s. %s. %s", title, price, description)
}

// ParseReadability 는 readability 로 본문을 뽑아 "title. content" 로 반환한다.
func ParseReadability(rawURL, htmlStr string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return "", err
	}
	pageURL, _ := url.Parse(rawURL)

	article, err := readability.FromDocument(doc, pageURL)
	if err != nil {
		return "", err
	}
	return joinTitleContent(article.Title, article.TextContent), nil
}

// ParseTrafilatura 는 trafilatura 로 본문을 뽑아 "title. content" 로 반환한다.
func ParseTrafilatura(rawURL, htmlStr string) (string, error) {
	pageURL, _ := url.Parse(rawURL)
	opts := trafilatura.Options{
		OriginalURL: pageURL,
	}

	article, err := trafilatura.Extract(strings.NewReader(htmlStr), opts)
	if err != nil {
		return "", err
	}
	return joinTitleContent(article.Metadata.Title, article.ContentText), nil
}

func joinTitleContent(title, content string) string {
	title = normalizeText(title)
	content = truncateRunes(normalizeText(content), maxContentRunes)
	if title == "" {
		return content
	}
	if content == "" {
		return title
	}
	return title + ". " + content
}

// normalizeText 는 각 줄을 trim 하고 빈 줄을 제거한 뒤 공백 하나로 이어 붙인다.
func normalizeText(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	scanner := bufio.NewScanner(strings.NewReader(input))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			b.WriteString(line)
			b.WriteString(" ")
		}
	}
	return strings.TrimSpace(b.String())
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
