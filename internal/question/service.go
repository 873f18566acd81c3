package question

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// categoryLoadTimeout bounds a shared category load, which outlives the
// request that started it.
const categoryLoadTimeout = 5 * time.Second

// Service answers listing, search, mutation and quiz requests over a Store.
type Service struct {
	store    Store
	cache    CategoryCache
	selector *Selector
	pageSize int
	logger   zerolog.Logger
	sf       singleflight.Group
}

type ServiceOptions struct {
	PageSize int
	// Intn overrides the quiz randomness source (tests).
	Intn func(n int) int
}

// NewService wires the service. cache may be nil.
func NewService(store Store, cache CategoryCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Service{
		store:    store,
		cache:    cache,
		selector: NewSelector(store, opts.Intn),
		pageSize: pageSize,
		logger:   logger.With().Str("component", "question").Logger(),
	}
}

// Categories returns every category ordered by id.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("category cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	return s.loadCategories(ctx)
}

// RefreshCategories reloads categories from the store into the cache and
// returns how many were loaded. Without a cache it only reads the store.
func (s *Service) RefreshCategories(ctx context.Context) (int, error) {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return 0, err
	}
	return len(categories), nil
}

// loadCategories collapses concurrent store reads into one and writes the
// result through to the cache.
func (s *Service) loadCategories(ctx context.Context) ([]Category, error) {
	result, err, _ := s.sf.Do("categories", func() (interface{}, error) {
		// Every collapsed caller waits on this load, so it must not end with
		// the first caller's request.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), categoryLoadTimeout)
		defer cancel()

		categories, err := s.store.ListCategories(loadCtx)
		if err != nil {
			return nil, StoreError("list categories", err)
		}
		if s.cache != nil {
			if err := s.cache.Set(loadCtx, categories); err != nil {
				s.logger.Warn().Err(err).Msg("category cache write failed")
			}
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]Category), nil
}

// ListQuestions pages through all questions in ascending id order.
func (s *Service) ListQuestions(ctx context.Context, page int) (Page, error) {
	return s.page(ctx, Filter{}, page)
}

// ListByCategory pages through one category. A missing category is ErrNotFound.
func (s *Service) ListByCategory(ctx context.Context, categoryID, page int) (Page, Category, error) {
	category, err := s.store.GetCategory(ctx, categoryID)
	if err != nil {
		return Page{}, Category{}, StoreError("get category", err)
	}
	p, err := s.page(ctx, ByCategory(categoryID), page)
	if err != nil {
		return Page{}, Category{}, err
	}
	return p, category, nil
}

// Search pages through questions whose text contains term, ignoring case.
func (s *Service) Search(ctx context.Context, term string, page int) (Page, error) {
	f, err := BySubstring(term)
	if err != nil {
		return Page{}, err
	}
	return s.page(ctx, f, page)
}

// Create validates and inserts a question.
func (s *Service) Create(ctx context.Context, nq NewQuestion) (Question, error) {
	if err := validate(nq); err != nil {
		return Question{}, err
	}
	created, err := s.store.InsertQuestion(ctx, Question{
		Question:   nq.Question,
		Answer:     nq.Answer,
		Category:   *nq.Category,
		Difficulty: *nq.Difficulty,
	})
	if err != nil {
		return Question{}, StoreError("insert question", err)
	}
	s.logger.Info().Int("question_id", created.ID).Int("category", created.Category).Msg("question created")
	return created, nil
}

// Delete removes a question. A missing id is ErrNotFound and changes nothing.
func (s *Service) Delete(ctx context.Context, id int) error {
	q, err := s.store.GetQuestion(ctx, id)
	if err != nil {
		return StoreError("get question", err)
	}
	if err := s.store.DeleteQuestion(ctx, id); err != nil {
		return StoreError("delete question", err)
	}
	s.logger.Info().Int("question_id", id).Int("category", q.Category).Msg("question deleted")
	return nil
}

// Draw picks a random unseen quiz question or returns ErrExhausted.
func (s *Service) Draw(ctx context.Context, req DrawRequest) (Question, error) {
	return s.selector.Draw(ctx, req)
}

func (s *Service) page(ctx context.Context, f Filter, page int) (Page, error) {
	questions, err := s.store.ListQuestions(ctx, f)
	if err != nil {
		return Page{}, StoreError("list questions", err)
	}
	return newPage(questions, page, s.pageSize), nil
}

func validate(nq NewQuestion) error {
	switch {
	case strings.TrimSpace(nq.Question) == "":
		return invalid("question", "must not be empty")
	case strings.TrimSpace(nq.Answer) == "":
		return invalid("answer", "must not be empty")
	case nq.Category == nil:
		return invalid("category", "is required")
	case nq.Difficulty == nil:
		return invalid("difficulty", "is required")
	}
	return nil
}
