package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/code-explainer-api/internal/constants"
	"github.com/yukikurage/code-explainer-api/internal/logging"
)

const validAnalysis = `{
  "heading": "Prints one",
  "summary": "Writes the number 1 to stdout.",
  "logic_breakdown": ["Call print with 1"],
  "potential_issues": [],
  "time_complexity": {"notation": "O(1)", "explanation": "Single call."},
  "space_complexity": {"notation": "O(1)", "explanation": "No allocation."},
  "improvements": ["None needed"]
}`

// fakeCompletionServer answers /chat/completions with content, or with
// status when it is not 200.
func fakeCompletionServer(t *testing.T, status int, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if captured != nil {
			_ = json.NewDecoder(r.Body).Decode(captured)
		}
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded","type":"server_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestAIService(baseURL string) *AIService {
	return NewAIService(AIConfig{APIKey: "test-key", BaseURL: baseURL, Model: "test-model"}, logging.Discard())
}

func TestAIService_AnalyzeCode_Success(t *testing.T) {
	var req map[string]any
	srv := fakeCompletionServer(t, http.StatusOK, validAnalysis, &req)

	result := newTestAIService(srv.URL).AnalyzeCode(context.Background(), "print(1)")

	require.False(t, result.Failed())
	assert.Equal(t, "Prints one", result.Heading)
	assert.Equal(t, []string{"Call print with 1"}, result.LogicBreakdown)
	require.NotNil(t, result.TimeComplexity)
	assert.Equal(t, "O(1)", result.TimeComplexity.Notation)

	assert.Equal(t, "test-model", req["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, req["response_format"])
	messages := req["messages"].([]any)
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1].(map[string]any)["content"], "print(1)")
	assert.Contains(t, messages[0].(map[string]any)["content"], "logic_breakdown")
}

func TestAIService_AnalyzeCode_FencedJSON(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusOK, "```json\n"+validAnalysis+"\n```", nil)

	result := newTestAIService(srv.URL).AnalyzeCode(context.Background(), "print(1)")

	require.False(t, result.Failed())
	assert.Equal(t, "Prints one", result.Heading)
}

func TestAIService_AnalyzeCode_FailuresBecomeSentinel(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"upstream error", http.StatusInternalServerError, ""},
		{"not json", http.StatusOK, "Sure! Here is your analysis: it prints 1."},
		{"json array", http.StatusOK, `["heading"]`},
		{"empty object", http.StatusOK, `{}`},
		{"model claims error", http.StatusOK, `{"error":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeCompletionServer(t, tt.status, tt.content, nil)

			result := newTestAIService(srv.URL).AnalyzeCode(context.Background(), "print(1)")

			require.NotNil(t, result)
			assert.True(t, result.Failed())
			assert.Equal(t, constants.AnalysisFailedReason, result.Error)
			assert.Empty(t, result.Heading)
		})
	}
}

func TestAIService_AnalyzeCode_NotConfigured(t *testing.T) {
	svc := NewAIService(AIConfig{}, logging.Discard())

	result := svc.AnalyzeCode(context.Background(), "print(1)")

	assert.True(t, result.Failed())
	assert.Equal(t, constants.AnalysisFailedReason, result.Error)
}

func TestAIService_AnalyzeCode_CancelledContext(t *testing.T) {
	srv := fakeCompletionServer(t, http.StatusOK, validAnalysis, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := newTestAIService(srv.URL).AnalyzeCode(ctx, "print(1)")

	assert.True(t, result.Failed())
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence(`{"a":1}`))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("  ```\n{\"a\":1}```  "))
}
