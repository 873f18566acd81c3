package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// dbtx is the subset of pgxpool.Pool / pgx.Tx the repository needs.
type dbtx interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const (
	selectQuestions = `SELECT id, question, answer, category, difficulty FROM questions`

	getQuestion = selectQuestions + ` WHERE id = $1`

	insertQuestion = `INSERT INTO questions (question, answer, category, difficulty)
VALUES ($1, $2, $3, $4)
RETURNING id, question, answer, category, difficulty`

	deleteQuestion = `DELETE FROM questions WHERE id = $1`

	listCategories = `SELECT id, type FROM categories ORDER BY id`

	getCategory = `SELECT id, type FROM categories WHERE id = $1`
)

// QuestionRepository implements question.Store on PostgreSQL.
type QuestionRepository struct {
	db dbtx
}

var _ question.Store = (*QuestionRepository)(nil)

func NewQuestionRepository(db dbtx) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// ListQuestions scans questions matching f in ascending id order.
func (r *QuestionRepository) ListQuestions(ctx context.Context, f question.Filter) ([]question.Question, error) {
	query, args := buildQuestionQuery(f)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	questions, err := pgx.CollectRows(rows, pgx.RowToStructByName[question.Question])
	if err != nil {
		return nil, fmt.Errorf("scan questions: %w", err)
	}
	return questions, nil
}

// GetQuestion loads one question by id.
func (r *QuestionRepository) GetQuestion(ctx context.Context, id int) (question.Question, error) {
	var q question.Question
	err := r.db.QueryRow(ctx, getQuestion, id).Scan(&q.ID, &q.Question, &q.Answer, &q.Category, &q.Difficulty)
	if err != nil {
		return question.Question{}, notFound("get question", err)
	}
	return q, nil
}

// InsertQuestion stores q and returns it with the assigned id.
func (r *QuestionRepository) InsertQuestion(ctx context.Context, q question.Question) (question.Question, error) {
	var created question.Question
	err := r.db.QueryRow(ctx, insertQuestion, q.Question, q.Answer, q.Category, q.Difficulty).
		Scan(&created.ID, &created.Question, &created.Answer, &created.Category, &created.Difficulty)
	if err != nil {
		return question.Question{}, fmt.Errorf("insert question: %w", err)
	}
	return created, nil
}

// DeleteQuestion removes a question; no matching row is question.ErrNotFound.
func (r *QuestionRepository) DeleteQuestion(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, deleteQuestion, id)
	if err != nil {
		return fmt.Errorf("delete question: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return question.ErrNotFound
	}
	return nil
}

// ListCategories returns every category ordered by id.
func (r *QuestionRepository) ListCategories(ctx context.Context) ([]question.Category, error) {
	rows, err := r.db.Query(ctx, listCategories)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowToStructByName[question.Category])
	if err != nil {
		return nil, fmt.Errorf("scan categories: %w", err)
	}
	return categories, nil
}

// GetCategory loads one category by id.
func (r *QuestionRepository) GetCategory(ctx context.Context, id int) (question.Category, error) {
	var c question.Category
	if err := r.db.QueryRow(ctx, getCategory, id).Scan(&c.ID, &c.Type); err != nil {
		return question.Category{}, notFound("get category", err)
	}
	return c, nil
}

// buildQuestionQuery renders f as a WHERE clause over the questions table.
func buildQuestionQuery(f question.Filter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Unsatisfiable() {
		conditions = append(conditions, "FALSE")
	}
	if category, ok := f.Category(); ok {
		conditions = append(conditions, "category = "+arg(category))
	}
	if ids := f.ExcludedIDs(); len(ids) > 0 {
		conditions = append(conditions, "NOT (id = ANY("+arg(ids)+"))")
	}
	for _, term := range f.Terms() {
		conditions = append(conditions, `question ILIKE `+arg("%"+escapeLike(term)+"%")+` ESCAPE '\'`)
	}

	query := selectQuestions
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	return query + " ORDER BY id ASC", args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return question.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
