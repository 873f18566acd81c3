//go:build integration
// +build integration

package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestHealthz(t *testing.T) {
	resp, err := http.Get(fmt.Sprintf("%s/healthz", baseURL()))
	if err != nil {
		t.Fatalf("health check request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
}

func TestCategories(t *testing.T) {
	status, out := call(t, http.MethodGet, "/categories", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	categories, _ := out["categories"].(map[string]interface{})
	if categories["1"] != "Science" {
		t.Fatalf("expected category 1 to be Science, got %v", categories["1"])
	}
}

func TestQuestionLifecycle(t *testing.T) {
	text := fmt.Sprintf("Integration question %d?", time.Now().UnixNano())
	id := createQuestion(t, text, 4)

	status, out := call(t, http.MethodGet, "/categories/4/questions", nil)
	if status != http.StatusOK {
		t.Fatalf("category listing: expected 200, got %d", status)
	}
	if out["current_category"] != "History" {
		t.Fatalf("expected current_category History, got %v", out["current_category"])
	}

	status, out = call(t, http.MethodPost, "/quizzes", map[string]interface{}{
		"previous_questions": []int{},
		"quiz_category":      map[string]interface{}{"type": "History", "id": "4"},
	})
	if status != http.StatusOK {
		t.Fatalf("quiz: expected 200, got %d (%v)", status, out)
	}
	drawn := out["question"].(map[string]interface{})
	if int(drawn["category"].(float64)) != 4 {
		t.Fatalf("quiz returned question outside category: %v", drawn)
	}

	status, out = call(t, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil)
	if status != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", status)
	}
	if int(out["deleted"].(float64)) != id {
		t.Fatalf("expected deleted %d, got %v", id, out["deleted"])
	}

	status, _ = call(t, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("second delete: expected 422, got %d", status)
	}
}

func TestErrorEnvelopes(t *testing.T) {
	testCases := []struct {
		name    string
		method  string
		path    string
		payload interface{}
		status  int
	}{
		{"page past end", http.MethodGet, "/questions?page=100000", nil, http.StatusNotFound},
		{"unknown category", http.MethodGet, "/categories/100000/questions", nil, http.StatusUnprocessableEntity},
		{"missing fields", http.MethodPost, "/questions", map[string]string{"question": "q"}, http.StatusBadRequest},
		{"blank search", http.MethodPost, "/questions/search", map[string]string{"searchTerm": ""}, http.StatusUnprocessableEntity},
		{"malformed quiz", http.MethodPost, "/quizzes", map[string]string{}, http.StatusNotFound},
		{"wrong method", http.MethodPatch, "/questions", nil, http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := call(t, tc.method, tc.path, tc.payload)
			if status != tc.status {
				t.Fatalf("expected %d, got %d (%v)", tc.status, status, out)
			}
			if out["success"] != false {
				t.Fatalf("expected success=false, got %v", out["success"])
			}
			if int(out["error"].(float64)) != tc.status {
				t.Fatalf("expected error=%d, got %v", tc.status, out["error"])
			}
		})
	}
}
