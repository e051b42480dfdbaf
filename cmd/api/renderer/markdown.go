package renderer

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

// raw HTML 은 렌더링하지 않는다 (goldmark 기본값, WithUnsafe 미사용).
var markdownEngine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithHardWraps(),
		htmlrenderer.WithXHTML(),
	),
)

// MarkdownToHTML 은 분석 결과 마크다운을 HTML 조각으로 변환한다.
func MarkdownToHTML(markdownText string) (string, error) {
	text := strings.TrimSpace(markdownText)
	if text == "" {
		return "", nil
	}
	var out bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// MarkdownToDocument 는 title 과 변환된 본문으로 독립 실행 가능한 HTML 문서를 만든다.
func MarkdownToDocument(title, markdownText string) (string, error) {
	body, err := MarkdownToHTML(markdownText)
	if err != nil {
		return "", err
	}
	escaped := template.HTMLEscapeString(title)
	return fmt.Sprintf(
		"<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head><body><article>%s</article></body></html>",
		escaped, body,
	), nil
}
