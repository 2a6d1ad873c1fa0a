package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"ainewsagg/internal/config"
	"ainewsagg/internal/models"
)

// newMockBackend serves an OpenAI-compatible chat completion endpoint
// whose assistant reply is the given content.
func newMockBackend(t *testing.T, content string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"id":     "chatcmpl-test",
			"object": "chat.completion",
			"model":  "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index": 0,
					"message": map[string]interface{}{
						"role":    "assistant",
						"content": content,
					},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			t.Errorf("Failed to encode mock response: %v", err)
		}
	}))
}

func newTestClassifier(baseURL string) *Classifier {
	return New(config.LLMConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: baseURL + "/v1",
	})
}

func TestClassify(t *testing.T) {
	server := newMockBackend(t, `{"category":"breakthrough","score":85,"industries":["technology","medical"]}`)
	defer server.Close()

	c := newTestClassifier(server.URL)
	result := c.Classify(context.Background(), "GPT-5 released", "A major step forward")

	if result.Category != models.CategoryBreakthrough {
		t.Errorf("Expected category breakthrough, got %q", result.Category)
	}
	if result.Score != 85 {
		t.Errorf("Expected score 85, got %d", result.Score)
	}
	if len(result.Industries) != 2 {
		t.Errorf("Expected 2 industries, got %d", len(result.Industries))
	}
}

func TestClassifyClampsScore(t *testing.T) {
	tests := []struct {
		raw  int
		want int
	}{
		{150, 100},
		{-10, 0},
		{50, 50},
	}

	for _, tt := range tests {
		server := newMockBackend(t, fmt.Sprintf(`{"category":"other","score":%d,"industries":[]}`, tt.raw))

		c := newTestClassifier(server.URL)
		result := c.Classify(context.Background(), "Title", "Description")
		server.Close()

		if result.Score != tt.want {
			t.Errorf("Expected score %d clamped to %d, got %d", tt.raw, tt.want, result.Score)
		}
	}
}

func TestClassifyDropsUnknownValues(t *testing.T) {
	server := newMockBackend(t, `{"category":"gossip","score":60,"industries":["technology","astrology"]}`)
	defer server.Close()

	c := newTestClassifier(server.URL)
	result := c.Classify(context.Background(), "Title", "Description")

	if result.Category != models.CategoryOther {
		t.Errorf("Expected unknown category to degrade to other, got %q", result.Category)
	}
	if len(result.Industries) != 1 || result.Industries[0] != models.IndustryTechnology {
		t.Errorf("Expected unknown industries to be dropped, got %v", result.Industries)
	}
}

func TestClassifyTruncatesMultibyteDescription(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if len(req.Messages) == 2 {
			prompt = req.Messages[1].Content
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"category\":\"other\",\"score\":50,\"industries\":[]}"}}]}`))
	}))
	defer server.Close()

	c := newTestClassifier(server.URL)

	// 600 bytes of three-byte runes: the 500-byte cap lands mid-rune.
	description := strings.Repeat("日", 200)
	c.Classify(context.Background(), "Title", description)

	if prompt == "" {
		t.Fatal("Expected the user prompt to be captured")
	}
	if !utf8.ValidString(prompt) {
		t.Error("Expected truncated description to remain valid UTF-8 in the prompt")
	}
}

func TestClassifyBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClassifier(server.URL)
	result := c.Classify(context.Background(), "Title", "Description")

	if result.Category != models.CategoryOther || result.Score != 50 {
		t.Errorf("Expected default classification on backend failure, got %+v", result)
	}
}

func TestClassifyMalformedResponse(t *testing.T) {
	server := newMockBackend(t, "this is not json")
	defer server.Close()

	c := newTestClassifier(server.URL)
	result := c.Classify(context.Background(), "Title", "Description")

	if result.Category != models.CategoryOther || result.Score != 50 {
		t.Errorf("Expected default classification on malformed response, got %+v", result)
	}
}

func TestSummarize(t *testing.T) {
	server := newMockBackend(t, "A concise two sentence summary. It covers the key points.")
	defer server.Close()

	c := newTestClassifier(server.URL)
	article := &models.Article{Title: "Test", Description: "Some description"}

	summary, err := c.Summarize(context.Background(), article)
	if err != nil {
		t.Fatalf("Failed to summarize: %v", err)
	}
	if summary == "" {
		t.Error("Expected non-empty summary")
	}
}

func TestSummarizeBackendFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend down", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClassifier(server.URL)
	article := &models.Article{Title: "Test"}

	if _, err := c.Summarize(context.Background(), article); err == nil {
		t.Error("Expected error when backend fails")
	}
}
