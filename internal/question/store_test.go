package question

import (
	"context"
	"slices"
	"sync"

	"github.com/stretchr/testify/mock"
)

// memStore is an in-memory Store that applies filters with Filter.Matches.
type memStore struct {
	mu         sync.Mutex
	questions  []Question
	categories []Category
	nextID     int
	listCalls  int
}

func newMemStore(categories []Category, questions ...Question) *memStore {
	s := &memStore{categories: categories, nextID: 1}
	for _, q := range questions {
		if q.ID == 0 {
			q.ID = s.nextID
		}
		if q.ID >= s.nextID {
			s.nextID = q.ID + 1
		}
		s.questions = append(s.questions, q)
	}
	slices.SortFunc(s.questions, func(a, b Question) int { return a.ID - b.ID })
	return s
}

func (s *memStore) ListQuestions(_ context.Context, f Filter) ([]Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls++
	var out []Question
	for _, q := range s.questions {
		if f.Matches(q) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memStore) GetQuestion(_ context.Context, id int) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.questions {
		if q.ID == id {
			return q, nil
		}
	}
	return Question{}, ErrNotFound
}

func (s *memStore) InsertQuestion(_ context.Context, q Question) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.nextID
	s.nextID++
	s.questions = append(s.questions, q)
	return q, nil
}

func (s *memStore) DeleteQuestion(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = slices.Delete(s.questions, i, i+1)
			return nil
		}
	}
	return ErrNotFound
}

func (s *memStore) ListCategories(_ context.Context) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories), nil
}

func (s *memStore) GetCategory(_ context.Context, id int) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) ListQuestions(ctx context.Context, f Filter) ([]Question, error) {
	args := m.Called(ctx, f)
	qs, _ := args.Get(0).([]Question)
	return qs, args.Error(1)
}

func (m *mockStore) GetQuestion(ctx context.Context, id int) (Question, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Question), args.Error(1)
}

func (m *mockStore) InsertQuestion(ctx context.Context, q Question) (Question, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(Question), args.Error(1)
}

func (m *mockStore) DeleteQuestion(ctx context.Context, id int) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockStore) ListCategories(ctx context.Context) ([]Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]Category)
	return cs, args.Error(1)
}

func (m *mockStore) GetCategory(ctx context.Context, id int) (Category, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(Category), args.Error(1)
}

var testCategories = []Category{
	{ID: 1, Type: "Science"},
	{ID: 2, Type: "Art"},
	{ID: 3, Type: "Geography"},
	{ID: 4, Type: "History"},
	{ID: 5, Type: "Entertainment"},
	{ID: 6, Type: "Sports"},
}

// numbered returns n questions with ids 1..n spread over categories 1..3.
func numbered(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{
			ID:         i + 1,
			Question:   "Question " + string(rune('A'+i%26)),
			Answer:     "Answer",
			Category:   i%3 + 1,
			Difficulty: i%5 + 1,
		}
	}
	return qs
}
