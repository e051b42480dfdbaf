package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-compare/cmd/api/apperr"
	"product-compare/cmd/api/renderer"
	"product-compare/cmd/api/trace"
	"product-compare/internal/logger"
	"product-compare/eventbus"
	"product-compare/events"
	"product-compare/models"
	"product-compare/repositories"
)

// 클라이언트에 내려가는 메시지. upstream 상세는 로그에만 남긴다.
const (
	MsgNoInput            = "No input provided"
	MsgURLAnalysisFailed  = "Failed to analyze product. Please try with a different URL or provide product description."
	MsgTextAnalysisFailed = "Failed to analyze product description. Please try again."
	MsgGenerateFailed     = "Failed to generate summary"
	MsgSummaryNotFound    = "Summary not found"
	MsgSummaryDeleted     = "Summary deleted"
	MsgNeedTwoIDs         = "Please provide at least 2 summary IDs."
	MsgSomeNotFound       = "Some summaries not found for this user."
	MsgCompareFailed      = "Failed to compare products"
	MsgFetchFailed        = "Failed to fetch summaries"
	MsgDeleteFailed       = "Failed to delete summary"
)

// SummaryStore 는 소유자 단위로만 접근 가능한 요약 저장소다. *repositories.SummaryRepository 가 구현한다.
type SummaryStore interface {
	Insert(ctx context.Context, s *models.Summary) error
	ListByOwner(ctx context.Context, userID primitive.ObjectID, query string) ([]models.Summary, error)
	FindByIDAndOwner(ctx context.Context, id, userID primitive.ObjectID) (*models.Summary, error)
	FindByIDsAndOwner(ctx context.Context, ids []primitive.ObjectID, userID primitive.ObjectID) ([]models.Summary, error)
	DeleteByIDAndOwner(ctx context.Context, id, userID primitive.ObjectID) error
	DeleteAllByOwner(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// Analyzer 는 completion 서비스 호출부다. *analyzer.Client 가 구현한다.
type Analyzer interface {
	IsURL(input string) bool
	Analyze(ctx context.Context, input string, isURL bool) (string, error)
	Compare(ctx context.Context, summaries []string) (string, error)
	Model() string
}

// Extractor 는 URL 분석 실패 시 사용하는 정적 스크래퍼다. *scraper.Scraper 가 구현한다.
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

type SummaryService struct {
	store     SummaryStore
	analyzer  Analyzer
	extractor Extractor
	bus       eventbus.Publisher
	topic     string
	now       func() time.Time
}

func NewSummaryService(store SummaryStore, analyzer Analyzer, extractor Extractor, bus eventbus.Publisher, topic string) *SummaryService {
	if bus == nil {
		bus = eventbus.NoopBus{}
	}
	if topic == "" {
		topic = eventbus.DefaultTopic
	}
	return &SummaryService{
		store:     store,
		analyzer:  analyzer,
		extractor: extractor,
		bus:       bus,
		topic:     topic,
		now:       time.Now,
	}
}

// CreateSummary 는 입력을 분석해 요약을 저장한다.
//
//  1. URL 이면 urlContext 로 직접 분석
//  2. 실패 시 URL 입력만 스크래핑 후 텍스트로 한 번 더 분석 (최대 1회)
//  3. 성공한 경우에만 저장
//
// 클라이언트 연결이 끊겨도 진행 중인 외부 호출과 저장은 끝까지 수행한다.
func (s *SummaryService) CreateSummary(ctx context.Context, userID primitive.ObjectID, rawInput string) (*models.Summary, error) {
	// 앞뒤 공백은 URL 판별, 스크래핑, 저장 모두에서 제거한 값으로 통일한다
	rawInput = strings.TrimSpace(rawInput)
	if rawInput == "" {
		return nil, apperr.New(apperr.KindValidation, MsgNoInput)
	}
	ctx = context.WithoutCancel(ctx)

	isURL := s.analyzer.IsURL(rawInput)
	productText, fallback, err := s.analyze(ctx, rawInput, isURL)
	if err != nil {
		return nil, err
	}

	inputType := models.InputTypeText
	var sourceURL *string
	if isURL {
		inputType = models.InputTypeURL
		u := rawInput
		sourceURL = &u
	}

	now := s.now()
	summary := &models.Summary{
		UserID:    userID,
		SourceURL: sourceURL,
		RawInput:  rawInput,
		AISummary: productText,
		AIMetadata: models.AIMetadata{
			Model:     s.analyzer.Model(),
			Timestamp: now,
			InputType: inputType,
		},
		CreatedAt: now,
	}
	if err := s.store.Insert(ctx, summary); err != nil {
		return nil, apperr.Wrap(apperr.KindServer, MsgGenerateFailed, err)
	}

	logger.InfoWithFields("summary created", trace.LogFields(ctx, logger.Fields{
		"user_id":    userID.Hex(),
		"summary_id": summary.ID.Hex(),
		"input_type": inputType,
		"fallback":   fallback,
	}))
	s.publish(ctx, userID, events.SummaryCreatedEvent{
		BaseEvent: events.NewBaseEvent(events.SummaryCreated),
		UserID:    userID,
		SummaryID: summary.ID,
		InputType: inputType,
		SourceURL: sourceURL,
		ModelName: summary.AIMetadata.Model,
		Fallback:  fallback,
	})
	return summary, nil
}

// analyze 는 분석 결과와 스크래핑 fallback 사용 여부를 반환한다.
func (s *SummaryService) analyze(ctx context.Context, rawInput string, isURL bool) (string, bool, error) {
	productText, err := s.analyzer.Analyze(ctx, rawInput, isURL)
	if err == nil {
		return productText, false, nil
	}
	s.logFailure(ctx, "direct analysis failed", err)

	if !isURL {
		return "", false, apperr.Wrap(apperr.KindAnalysis, MsgTextAnalysisFailed, err)
	}

	scraped, err := s.extractor.Extract(ctx, rawInput)
	if err != nil {
		s.logFailure(ctx, "scrape fallback failed", err)
		return "", true, apperr.Wrap(apperr.KindAnalysis, MsgURLAnalysisFailed, err)
	}
	productText, err = s.analyzer.Analyze(ctx, scraped, false)
	if err != nil {
		s.logFailure(ctx, "analysis of scraped text failed", err)
		return "", true, apperr.Wrap(apperr.KindAnalysis, MsgURLAnalysisFailed, err)
	}
	return productText, true, nil
}

// ListSummaries 는 소유자의 요약을 최신순으로 모두 반환한다. query 가 있으면 텍스트 검색으로 좁힌다.
func (s *SummaryService) ListSummaries(ctx context.Context, userID primitive.ObjectID, query string) ([]models.Summary, error) {
	list, err := s.store.ListByOwner(ctx, userID, query)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindServer, MsgFetchFailed, err)
	}
	return list, nil
}

// GetSummary 는 id 가 형식에 맞지 않거나 다른 사용자의 요약이면 NotFound 를 반환한다.
func (s *SummaryService) GetSummary(ctx context.Context, userID primitive.ObjectID, id string) (*models.Summary, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.New(apperr.KindNotFound, MsgSummaryNotFound)
	}
	summary, err := s.store.FindByIDAndOwner(ctx, oid, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, apperr.Wrap(apperr.KindNotFound, MsgSummaryNotFound, err)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindServer, "Failed to fetch summary", err)
	}
	return summary, nil
}

// RenderSummaryHTML 은 요약 마크다운을 HTML 문서로 변환한다.
func (s *SummaryService) RenderSummaryHTML(ctx context.Context, userID primitive.ObjectID, id string) (string, error) {
	summary, err := s.GetSummary(ctx, userID, id)
	if err != nil {
		return "", err
	}
	title := summary.RawInput
	if t, ok := summary.Extracted["title"].(string); ok && t != "" {
		title = t
	}
	doc, err := renderer.MarkdownToDocument(title, summary.AISummary)
	if err != nil {
		return "", apperr.Wrap(apperr.KindServer, "Failed to render summary", err)
	}
	return doc, nil
}

func (s *SummaryService) DeleteSummary(ctx context.Context, userID primitive.ObjectID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperr.New(apperr.KindNotFound, MsgSummaryNotFound)
	}
	err = s.store.DeleteByIDAndOwner(ctx, oid, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return apperr.Wrap(apperr.KindNotFound, MsgSummaryNotFound, err)
	}
	if err != nil {
		return apperr.Wrap(apperr.KindServer, MsgDeleteFailed, err)
	}

	s.publish(ctx, userID, events.SummaryDeletedEvent{
		BaseEvent: events.NewBaseEvent(events.SummaryDeleted),
		UserID:    userID,
		SummaryID: oid,
	})
	return nil
}

// CompareSummaries 는 소유자의 요약 2개 이상을 비교한다.
// 비교 순서는 저장소가 반환한 순서를 따르며 결과는 저장하지 않는다.
// 형식이 잘못된 id 와 다른 사용자의 id 는 "찾지 못함"과 동일하게 취급한다.
func (s *SummaryService) CompareSummaries(ctx context.Context, userID primitive.ObjectID, ids []string) (string, error) {
	if len(ids) < 2 {
		return "", apperr.New(apperr.KindValidation, MsgNeedTwoIDs)
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) < 2 {
		return "", apperr.New(apperr.KindNotFound, MsgSomeNotFound)
	}

	summaries, err := s.store.FindByIDsAndOwner(ctx, oids, userID)
	if err != nil {
		return "", apperr.Wrap(apperr.KindServer, "Failed to compare summaries", err)
	}
	if len(summaries) < 2 {
		return "", apperr.New(apperr.KindNotFound, MsgSomeNotFound)
	}

	texts := make([]string, 0, len(summaries))
	for _, summary := range summaries {
		texts = append(texts, summary.AISummary)
	}

	comparison, err := s.analyzer.Compare(context.WithoutCancel(ctx), texts)
	if err != nil {
		s.logFailure(ctx, "comparison failed", err)
		return "", apperr.Wrap(apperr.KindAnalysis, MsgCompareFailed, err)
	}
	return comparison, nil
}

func (s *SummaryService) publish(ctx context.Context, userID primitive.ObjectID, event any) {
	if err := eventbus.PublishDomainEvent(ctx, s.bus, s.topic, userID.Hex(), event); err != nil {
		logger.ErrorWithFields("failed to publish event", trace.LogFields(ctx, logger.Fields{
			"topic": s.topic,
			"error": err.Error(),
		}))
	}
}

func (s *SummaryService) logFailure(ctx context.Context, msg string, err error) {
	logger.ErrorWithFields(msg, trace.LogFields(ctx, logger.Fields{
		"error_kind": string(apperr.KindOf(err)),
		"error":      err.Error(),
	}))
}
