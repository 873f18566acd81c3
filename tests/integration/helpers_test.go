//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:5000")
}

// call sends method to path with an optional JSON payload and decodes the
// JSON response body.
func call(t *testing.T, method, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, baseURL()+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func createQuestion(t *testing.T, text string, category int) int {
	t.Helper()

	status, out := call(t, http.MethodPost, "/questions", map[string]interface{}{
		"question":   text,
		"answer":     "integration answer",
		"category":   category,
		"difficulty": 2,
	})
	if status != http.StatusOK {
		t.Fatalf("create question: status %d, body %v", status, out)
	}

	// The insert response omits the id; the newest question has the highest id.
	_, list := call(t, http.MethodPost, "/questions/search", map[string]string{"searchTerm": text})
	questions, _ := list["questions"].([]interface{})
	if len(questions) == 0 {
		t.Fatalf("created question %q not found by search", text)
	}
	last := questions[len(questions)-1].(map[string]interface{})
	return int(last["id"].(float64))
}
