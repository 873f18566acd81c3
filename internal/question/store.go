package question

import "context"

// Store is the relational persistence behind the service. Implementations
// return ErrNotFound for missing rows and ascending-id ordering for scans.
type Store interface {
	ListQuestions(ctx context.Context, f Filter) ([]Question, error)
	GetQuestion(ctx context.Context, id int) (Question, error)
	InsertQuestion(ctx context.Context, q Question) (Question, error)
	DeleteQuestion(ctx context.Context, id int) error
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id int) (Category, error)
}

// CategoryCache keeps the read-only category list close to the service.
// Get returns (nil, nil) on a miss.
type CategoryCache interface {
	Get(ctx context.Context) ([]Category, error)
	Set(ctx context.Context, categories []Category) error
}
