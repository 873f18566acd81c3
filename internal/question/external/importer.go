package external

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/question"
)

// RemoteQuestion is a question as published by a public trivia source.
type RemoteQuestion struct {
	Category   string
	Difficulty string
	Question   string
	Answer     string
}

// Source is a public trivia feed.
type Source interface {
	Name() string
	Fetch(ctx context.Context, amount int) ([]RemoteQuestion, error)
}

// Target is where imported questions are created.
type Target interface {
	Categories(ctx context.Context) ([]question.Category, error)
	Create(ctx context.Context, nq question.NewQuestion) (question.Question, error)
}

// Result counts the outcome of one import run.
type Result struct {
	Fetched  int
	Imported int
	Skipped  int
}

var difficulties = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// Remote category keywords that belong to the local Entertainment category.
var entertainmentAliases = []string{"film", "music", "television", "tv", "video game", "video_game", "celebrit", "comics", "anime", "board game"}

// Importer copies remote questions into the local categories.
type Importer struct {
	source Source
	target Target
	logger zerolog.Logger
}

func NewImporter(source Source, target Target, logger zerolog.Logger) *Importer {
	return &Importer{
		source: source,
		target: target,
		logger: logger.With().Str("component", "importer").Str("source", source.Name()).Logger(),
	}
}

// Run fetches amount questions and creates every one whose category maps to
// a local category. Questions that fail validation are skipped.
func (i *Importer) Run(ctx context.Context, amount int) (Result, error) {
	categories, err := i.target.Categories(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("load categories: %w", err)
	}
	remote, err := i.source.Fetch(ctx, amount)
	if err != nil {
		return Result{}, fmt.Errorf("fetch from %s: %w", i.source.Name(), err)
	}

	res := Result{Fetched: len(remote)}
	for _, rq := range remote {
		nq, ok := toNewQuestion(rq, categories)
		if !ok {
			i.logger.Debug().Str("category", rq.Category).Msg("no matching category")
			res.Skipped++
			continue
		}
		if _, err := i.target.Create(ctx, nq); err != nil {
			if errors.Is(err, question.ErrValidation) {
				i.logger.Debug().Err(err).Msg("skipping invalid question")
				res.Skipped++
				continue
			}
			return res, err
		}
		res.Imported++
	}
	i.logger.Info().Int("fetched", res.Fetched).Int("imported", res.Imported).Int("skipped", res.Skipped).Msg("import finished")
	return res, nil
}

func toNewQuestion(rq RemoteQuestion, categories []question.Category) (question.NewQuestion, bool) {
	categoryID, ok := matchCategory(rq.Category, categories)
	if !ok {
		return question.NewQuestion{}, false
	}
	difficulty, ok := difficulties[strings.ToLower(rq.Difficulty)]
	if !ok {
		difficulty = difficulties["medium"]
	}
	return question.NewQuestion{
		Question:   strings.TrimSpace(rq.Question),
		Answer:     strings.TrimSpace(rq.Answer),
		Category:   &categoryID,
		Difficulty: &difficulty,
	}, true
}

// matchCategory maps a remote label such as "Science & Nature" or
// "sport_and_leisure" onto a local category id.
func matchCategory(remote string, categories []question.Category) (int, bool) {
	label := strings.ToLower(remote)
	words := strings.FieldsFunc(label, func(r rune) bool { return !unicode.IsLetter(r) })
	for _, c := range categories {
		local := strings.TrimSuffix(strings.ToLower(c.Type), "s")
		if local == "" {
			continue
		}
		for _, w := range words {
			if w == local || w == local+"s" {
				return c.ID, true
			}
		}
	}
	for _, alias := range entertainmentAliases {
		if !strings.Contains(label, alias) {
			continue
		}
		for _, c := range categories {
			if strings.EqualFold(c.Type, "Entertainment") {
				return c.ID, true
			}
		}
	}
	return 0, false
}
