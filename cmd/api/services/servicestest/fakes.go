// Package servicestest provides in-memory stores and fakes for service and handler tests.
package servicestest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"product-compare/eventbus"
	"product-compare/models"
	"product-compare/repositories"
)

type SummaryStore struct {
	mu        sync.Mutex
	docs      []models.Summary
	InsertErr error
}

func (m *SummaryStore) Insert(ctx context.Context, s *models.Summary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertErr != nil {
		return m.InsertErr
	}
	s.ID = primitive.NewObjectID()
	m.docs = append(m.docs, *s)
	return nil
}

func (m *SummaryStore) ListByOwner(ctx context.Context, userID primitive.ObjectID, query string) ([]models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Summary{}
	for _, d := range m.docs {
		if d.UserID != userID {
			continue
		}
		if query != "" && !strings.Contains(d.AISummary, query) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *SummaryStore) FindByIDAndOwner(ctx context.Context, id, userID primitive.ObjectID) (*models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if d.ID == id && d.UserID == userID {
			doc := d
			return &doc, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *SummaryStore) FindByIDsAndOwner(ctx context.Context, ids []primitive.ObjectID, userID primitive.ObjectID) ([]models.Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := []models.Summary{}
	for _, d := range m.docs {
		if want[d.ID] && d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *SummaryStore) DeleteByIDAndOwner(ctx context.Context, id, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, d := range m.docs {
		if d.ID == id && d.UserID == userID {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (m *SummaryStore) DeleteAllByOwner(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.docs[:0]
	var deleted int64
	for _, d := range m.docs {
		if d.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	m.docs = kept
	return deleted, nil
}

func (m *SummaryStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}

type AnalyzeCall struct {
	Input string
	IsURL bool
}

// Analyzer 는 호출 순서대로 AnalyzeResults 를 돌려준다.
type Analyzer struct {
	AnalyzeResults []Result
	CompareResult  Result

	AnalyzeCalls []AnalyzeCall
	CompareCalls [][]string
}

type Result struct {
	Text string
	Err  error
}

func (f *Analyzer) IsURL(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

func (f *Analyzer) Analyze(ctx context.Context, input string, isURL bool) (string, error) {
	idx := len(f.AnalyzeCalls)
	f.AnalyzeCalls = append(f.AnalyzeCalls, AnalyzeCall{Input: input, IsURL: isURL})
	if idx >= len(f.AnalyzeResults) {
		return "", errors.New("unexpected analyze call")
	}
	r := f.AnalyzeResults[idx]
	return r.Text, r.Err
}

func (f *Analyzer) Compare(ctx context.Context, summaries []string) (string, error) {
	f.CompareCalls = append(f.CompareCalls, summaries)
	return f.CompareResult.Text, f.CompareResult.Err
}

func (f *Analyzer) Model() string { return "gemini-2.5-flash" }

type Extractor struct {
	Text  string
	Err   error
	Calls []string
}

func (f *Extractor) Extract(ctx context.Context, url string) (string, error) {
	f.Calls = append(f.Calls, url)
	return f.Text, f.Err
}

type Bus struct {
	mu     sync.Mutex
	Events []eventbus.Event
}

func (c *Bus) Publish(ctx context.Context, topic string, event eventbus.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Events = append(c.Events, event)
	return nil
}

func (c *Bus) Close() {}

func (c *Bus) Types() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.Events))
	for _, e := range c.Events {
		out = append(out, e.Type)
	}
	return out
}

type UserStore struct {
	mu    sync.Mutex
	users []models.User
}

func (m *UserStore) Insert(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	email := strings.ToLower(u.Email)
	for _, existing := range m.users {
		if existing.Email == email {
			return repositories.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	u.Email = email
	m.users = append(m.users, *u)
	return nil
}

func (m *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == strings.ToLower(strings.TrimSpace(email)) {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *UserStore) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type Tokens struct{}

func (Tokens) Sign(userID string) (string, error) { return "token-" + userID, nil }
