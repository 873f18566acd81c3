package question

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var quizDraws = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "trivia_quiz_draws_total",
	Help: "Quiz draws by outcome.",
}, []string{"outcome"})

// Selector picks one unseen quiz question uniformly at random.
type Selector struct {
	store Store
	intn  func(n int) int
}

// NewSelector builds a selector. A nil intn uses the goroutine-safe global
// source from math/rand/v2.
func NewSelector(store Store, intn func(n int) int) *Selector {
	if intn == nil {
		intn = rand.IntN
	}
	return &Selector{store: store, intn: intn}
}

// Draw returns a question outside req.Previous, restricted to req.Category
// when set, or ErrExhausted when none is left.
func (s *Selector) Draw(ctx context.Context, req DrawRequest) (Question, error) {
	f := Excluding(req.Previous)
	if req.Category != nil {
		f = ByCategory(*req.Category).And(f)
	}

	eligible, err := s.store.ListQuestions(ctx, f)
	if err != nil {
		quizDraws.WithLabelValues("error").Inc()
		return Question{}, StoreError("list eligible questions", err)
	}
	if len(eligible) == 0 {
		quizDraws.WithLabelValues("exhausted").Inc()
		return Question{}, ErrExhausted
	}

	picked := eligible[s.intn(len(eligible))]
	// The returned question must satisfy f even if the store did not.
	if !f.Matches(picked) {
		quizDraws.WithLabelValues("error").Inc()
		return Question{}, StoreError("list eligible questions", errors.New("store returned a question outside the filter"))
	}
	quizDraws.WithLabelValues("found").Inc()
	return picked, nil
}
