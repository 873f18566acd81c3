package question

// DefaultPageSize is the number of questions returned per page.
const DefaultPageSize = 10

// Question is the formatted payload delivered to clients.
type Question struct {
	ID         int    `json:"id" db:"id"`
	Question   string `json:"question" db:"question"`
	Answer     string `json:"answer" db:"answer"`
	Category   int    `json:"category" db:"category"`
	Difficulty int    `json:"difficulty" db:"difficulty"`
}

// Category is a read-only question grouping.
type Category struct {
	ID   int    `json:"id" db:"id"`
	Type string `json:"type" db:"type"`
}

// NewQuestion carries the fields required to insert a question.
// Pointers distinguish a missing field from a zero value.
type NewQuestion struct {
	Question   string
	Answer     string
	Category   *int
	Difficulty *int
}

// Page is a bounded slice of an ordered question set.
type Page struct {
	Questions []Question
	Number    int
	Size      int
	Total     int
}

// Empty reports whether the page holds no questions.
func (p Page) Empty() bool {
	return len(p.Questions) == 0
}

// DrawRequest describes one quiz draw. A nil Category means any category.
type DrawRequest struct {
	Category *int
	Previous []int
}

// Labels flattens categories into the id -> label map sent to clients.
func Labels(categories []Category) map[int]string {
	out := make(map[int]string, len(categories))
	for _, c := range categories {
		out[c.ID] = c.Type
	}
	return out
}
