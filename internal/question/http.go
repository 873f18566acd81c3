package question

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandler exposes the trivia REST endpoints.
type HTTPHandler struct {
	svc       *Service
	logger    zerolog.Logger
	normalize bool
}

type HandlerOptions struct {
	// NormalizeErrors maps outcomes to one status per error class instead of
	// the per-endpoint codes the web client expects.
	NormalizeErrors bool
}

// NewHTTPHandler constructs the trivia HTTP handler.
func NewHTTPHandler(svc *Service, opts HandlerOptions, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:       svc,
		logger:    logger.With().Str("component", "question_http").Logger(),
		normalize: opts.NormalizeErrors,
	}
}

// Routes registers the endpoints on r.
func (h *HTTPHandler) Routes(r chi.Router) {
	r.Get("/", h.GetCategories)
	r.Get("/categories", h.GetCategories)
	r.Get("/categories/{id:[0-9]+}/questions", h.GetCategoryQuestions)
	r.Get("/questions", h.GetQuestions)
	r.Post("/questions", h.CreateQuestion)
	r.Post("/questions/search", h.SearchQuestions)
	r.Delete("/questions/{id:[0-9]+}", h.DeleteQuestion)
	r.Post("/quizzes", h.PlayQuiz)
}

type categoriesResponse struct {
	Success    bool           `json:"success"`
	Categories map[int]string `json:"categories"`
}

type listResponse struct {
	Success         bool           `json:"success"`
	Questions       []Question     `json:"questions"`
	Categories      map[int]string `json:"categories"`
	TotalQuestions  int            `json:"total_questions"`
	CurrentCategory string         `json:"current_category"`
}

type questionsResponse struct {
	Success         bool       `json:"success"`
	Questions       []Question `json:"questions"`
	TotalQuestions  int        `json:"total_questions"`
	CurrentCategory string     `json:"current_category"`
}

type createResponse struct {
	Success          bool             `json:"success"`
	Questions        []Question       `json:"questions"`
	InsertedQuestion insertedQuestion `json:"inserted_question"`
	TotalQuestions   int              `json:"total_questions"`
}

type insertedQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int    `json:"category"`
	Difficulty int    `json:"difficulty"`
}

type deleteResponse struct {
	Success        bool       `json:"success"`
	Questions      []Question `json:"questions"`
	TotalQuestions int        `json:"total_questions"`
	Deleted        int        `json:"deleted"`
}

type quizResponse struct {
	Success  bool     `json:"success"`
	Question Question `json:"question"`
}

type createRequest struct {
	Question   *string  `json:"question"`
	Answer     *string  `json:"answer"`
	Category   *flexInt `json:"category"`
	Difficulty *flexInt `json:"difficulty"`
}

type searchRequest struct {
	SearchTerm *string `json:"searchTerm"`
}

type quizRequest struct {
	QuizCategory *struct {
		ID *flexInt `json:"id"`
	} `json:"quiz_category"`
	PreviousQuestions *[]flexInt `json:"previous_questions"`
}

// GetCategories handles GET /categories and GET /
func (h *HTTPHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.Categories(r.Context())
	if err != nil {
		h.fail(w, r, http.StatusNotFound, err)
		return
	}
	if len(categories) == 0 {
		h.fail(w, r, http.StatusNotFound, ErrNotFound)
		return
	}
	writeJSON(w, categoriesResponse{Success: true, Categories: Labels(categories)})
}

// GetQuestions handles GET /questions?page=N
func (h *HTTPHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	page, err := h.svc.ListQuestions(ctx, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, http.StatusNotFound, err)
		return
	}
	if page.Empty() {
		h.fail(w, r, http.StatusNotFound, ErrNotFound)
		return
	}
	categories, err := h.svc.Categories(ctx)
	if err != nil {
		h.fail(w, r, http.StatusNotFound, err)
		return
	}
	writeJSON(w, listResponse{
		Success:         true,
		Questions:       page.Questions,
		Categories:      Labels(categories),
		TotalQuestions:  page.Total,
		CurrentCategory: "",
	})
}

// GetCategoryQuestions handles GET /categories/{id}/questions?page=N
func (h *HTTPHandler) GetCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, http.StatusUnprocessableEntity, ErrNotFound)
		return
	}
	page, category, err := h.svc.ListByCategory(r.Context(), id, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if page.Total == 0 {
		h.fail(w, r, http.StatusUnprocessableEntity, ErrNotFound)
		return
	}
	writeJSON(w, questionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: category.Type,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, invalid("body", err.Error()))
		return
	}
	if req.SearchTerm == nil {
		h.fail(w, r, http.StatusUnprocessableEntity, invalid("searchTerm", "is required"))
		return
	}
	page, err := h.svc.Search(r.Context(), *req.SearchTerm, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	if page.Total == 0 {
		h.fail(w, r, http.StatusUnprocessableEntity, ErrNotFound)
		return
	}
	writeJSON(w, questionsResponse{
		Success:         true,
		Questions:       page.Questions,
		TotalQuestions:  page.Total,
		CurrentCategory: "",
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, http.StatusBadRequest, invalid("body", err.Error()))
		return
	}

	nq := NewQuestion{
		Category:   req.Category.ptr(),
		Difficulty: req.Difficulty.ptr(),
	}
	if req.Question != nil {
		nq.Question = *req.Question
	}
	if req.Answer != nil {
		nq.Answer = *req.Answer
	}

	ctx := r.Context()
	created, err := h.svc.Create(ctx, nq)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}
	page, err := h.svc.ListQuestions(ctx, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, createResponse{
		Success:   true,
		Questions: page.Questions,
		InsertedQuestion: insertedQuestion{
			Question:   created.Question,
			Answer:     created.Answer,
			Category:   created.Category,
			Difficulty: created.Difficulty,
		},
		TotalQuestions: page.Total,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.fail(w, r, http.StatusUnprocessableEntity, ErrNotFound)
		return
	}
	ctx := r.Context()
	if err := h.svc.Delete(ctx, id); err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	page, err := h.svc.ListQuestions(ctx, ParsePage(r.URL.Query().Get("page")))
	if err != nil {
		h.fail(w, r, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, deleteResponse{
		Success:        true,
		Questions:      page.Questions,
		TotalQuestions: page.Total,
		Deleted:        id,
	})
}

// PlayQuiz handles POST /quizzes
func (h *HTTPHandler) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req quizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, http.StatusNotFound, invalid("body", err.Error()))
		return
	}
	if req.QuizCategory == nil || req.QuizCategory.ID == nil {
		h.fail(w, r, http.StatusNotFound, invalid("quiz_category", "is required"))
		return
	}
	if req.PreviousQuestions == nil {
		h.fail(w, r, http.StatusNotFound, invalid("previous_questions", "is required"))
		return
	}

	draw := DrawRequest{Previous: make([]int, 0, len(*req.PreviousQuestions))}
	for _, id := range *req.PreviousQuestions {
		draw.Previous = append(draw.Previous, int(id))
	}
	// The web client sends category id 0 for "All".
	if id := int(*req.QuizCategory.ID); id != 0 {
		draw.Category = &id
	}

	q, err := h.svc.Draw(r.Context(), draw)
	if err != nil {
		if errors.Is(err, ErrExhausted) {
			h.fail(w, r, http.StatusUnprocessableEntity, err)
			return
		}
		h.fail(w, r, http.StatusNotFound, err)
		return
	}
	writeJSON(w, quizResponse{Success: true, Question: q})
}

// fail writes the error envelope. legacy is the status the web client expects
// from this endpoint; it is replaced by a per-class status when normalizing.
func (h *HTTPHandler) fail(w http.ResponseWriter, r *http.Request, legacy int, err error) {
	status := legacy
	if h.normalize {
		status = normalizedStatus(err)
	}

	logger := logging.FromContextOr(r.Context(), h.logger)
	if errors.Is(err, ErrStoreUnavailable) {
		logger.Error().Err(err).Str("path", r.URL.Path).Int("status", status).Msg("store failure")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	httperrors.RespondError(w, status)
}

func normalizedStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrExhausted):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// pathID parses the {id} route parameter. Ids too large for int cannot exist
// and report false.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// writeJSON encodes payload before touching w, so an encoding failure can
// still produce a clean 500 envelope.
func writeJSON(w http.ResponseWriter, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		httperrors.RespondInternalError(w)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(append(data, '\n'))
}
