package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/models"
)

func sampleIssues() []models.Issue {
	return []models.Issue{
		{Type: models.SeverityInfo, Title: "Info one", Description: "i1"},
		{Type: models.SeverityCritical, Title: "Eval", Description: "eval is dangerous", Line: 3, Suggestion: "remove eval"},
		{Type: models.SeverityWarning, Title: "Console", Description: "too many logs"},
		{Type: models.SeverityCritical, Title: "C2", Description: "c2"},
		{Type: models.SeverityWarning, Title: "W2", Description: "w2"},
		{Type: models.SeverityWarning, Title: "W3", Description: "w3"},
		{Type: models.SeverityCritical, Title: "C3", Description: "c3"},
		{Type: models.SeverityCritical, Title: "C4", Description: "c4"},
	}
}

func titles(issues []models.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Title)
	}
	return out
}

func Test_SelectIssues(t *testing.T) {
	got := SelectIssues(sampleIssues(), 5)
	assert.Equal(t, []string{"Eval", "C2", "C3", "Console", "W2"}, titles(got))

	assert.Len(t, SelectIssues(sampleIssues(), 2), 2)
	assert.Empty(t, SelectIssues([]models.Issue{{Type: models.SeverityInfo}}, 5))
}

func Test_SummarizeIssues(t *testing.T) {
	issues := sampleIssues()[1:3]
	assert.Equal(t, "1. Eval (Line 3): eval is dangerous\n2. Console: too many logs", SummarizeIssues(issues, 0))
	assert.Equal(t, "1. Eval (Line 3): eval is dangerous", SummarizeIssues(issues, 1))
	assert.Empty(t, SummarizeIssues(nil, 5))
}

func Test_FixPrompt(t *testing.T) {
	p := FixPrompt("eval(x)", "javascript", sampleIssues()[1:2])
	assert.True(t, strings.HasPrefix(p, "You are an expert code reviewer. Analyze the following javascript code"))
	assert.Contains(t, p, "CODE:\n```javascript\neval(x)\n```\n\nISSUES TO FIX:\n1. Eval (Line 3): eval is dangerous\n\n")
	assert.Contains(t, p, `"fullCorrectedCode"`)
}

func Test_ChatContext(t *testing.T) {
	assert.Equal(t, chatSystemPrompt, ChatContext("", "", nil))

	r := &models.AnalysisResult{Score: 72, Issues: sampleIssues()[1:3]}
	got := ChatContext("x()", "python", r)
	want := chatSystemPrompt +
		"\n\nUser's code (python):\n```python\nx()\n```" +
		"\n\nCode Analysis Results:\n- Quality Score: 72/100" +
		"\n\nIssues Found:" +
		"\n1. [critical] Eval: eval is dangerous (Line 3)\n   Suggestion: remove eval" +
		"\n2. [warning] Console: too many logs"
	assert.Equal(t, want, got)
}

func Test_ParseFixResponse(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		fixes    int
		fullCode string
	}{
		{"object", `{"fixes":[{"issue":"a","fixedCode":"b","explanation":"c"}],"fullCorrectedCode":"all"}`, 1, "all"},
		{"fenced json", "```json\n{\"fixes\":[],\"fullCorrectedCode\":\"x\"}\n```", 0, "x"},
		{"bare fence", "```\n[{\"issue\":\"a\"},{\"issue\":\"b\"}]\n```", 2, ""},
		{"array", `[{"issue":"a","fixedCode":"b","explanation":"c"}]`, 1, ""},
		{"malformed", `{"fixes": [`, 0, ""},
		{"prose", "Sorry, I cannot help", 0, ""},
		{"missing fixes", `{"fullCorrectedCode":"y"}`, 0, "y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFixResponse(tt.content)
			require.NotNil(t, got.Fixes)
			assert.Len(t, got.Fixes, tt.fixes)
			assert.Equal(t, tt.fullCode, got.FullCorrectedCode)
		})
	}
}

func newTestClient(t *testing.T, h http.HandlerFunc) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Setenv("CODESCOPE_TEST_KEY", "sk-test")
	c, err := NewOpenAIClient(configs.LLMConfig{
		BaseURL:   srv.URL + "/v1/",
		Model:     "test-model",
		APIKeyEnv: "CODESCOPE_TEST_KEY",
		MaxIssues: 5,
		Timeout:   5,
	})
	require.NoError(t, err)
	return c
}

func Test_FixResult_Markdown(t *testing.T) {
	md := FixResult{
		Fixes: []Fix{{Issue: "Use of eval()", FixedCode: "JSON.parse(s)\n", Explanation: "eval runs arbitrary code."}},
		FullCorrectedCode: "const v = JSON.parse(s);",
	}.Markdown("javascript")

	assert.Contains(t, md, "## 1. Use of eval()")
	assert.Contains(t, md, "eval runs arbitrary code.")
	assert.Contains(t, md, "```javascript\nJSON.parse(s)\n```")
	assert.Contains(t, md, "## Full corrected code")

	assert.Contains(t, FixResult{}.Markdown("go"), "No fix suggestions")
}

func Test_NewOpenAIClient_NotConfigured(t *testing.T) {
	t.Setenv("CODESCOPE_EMPTY_KEY", "")
	_, err := NewOpenAIClient(configs.LLMConfig{APIKeyEnv: "CODESCOPE_EMPTY_KEY"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func Test_Suggest(t *testing.T) {
	var gotReq struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &gotReq))

		content := "```json\n{\"fixes\":[{\"issue\":\"Eval\",\"fixedCode\":\"JSON.parse(x)\",\"explanation\":\"safer\"}],\"fullCorrectedCode\":\"JSON.parse(x)\"}\n```"
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []any{map[string]any{"index": 0, "message": map[string]any{"role": "assistant", "content": content}, "finish_reason": "stop"}},
		})
	})

	res, err := c.Suggest(context.Background(), "eval(x)", "javascript", sampleIssues())
	require.NoError(t, err)
	require.Len(t, res.Fixes, 1)
	assert.Equal(t, "Eval", res.Fixes[0].Issue)
	assert.Equal(t, "JSON.parse(x)", res.FullCorrectedCode)

	assert.Equal(t, "test-model", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, fixSystemPrompt, gotReq.Messages[0].Content)
	assert.Contains(t, gotReq.Messages[1].Content, "5. W2: w2")
	assert.NotContains(t, gotReq.Messages[1].Content, "C4")
}

func Test_Suggest_NoIssues(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.Suggest(context.Background(), "x", "go", []models.Issue{{Type: models.SeverityInfo, Title: "i"}})
	require.ErrorIs(t, err, ErrNoIssues)
}

func Test_Suggest_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusPaymentRequired, ErrPaymentRequired},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = fmt.Fprint(w, `{"error":{"message":"nope","type":"limit"}}`)
			})
			_, err := c.Suggest(context.Background(), "eval(x)", "javascript", sampleIssues())
			require.ErrorIs(t, err, tt.want)
		})
	}

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	_, err := c.Suggest(context.Background(), "eval(x)", "javascript", sampleIssues())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRateLimited)
}

func Test_Chat(t *testing.T) {
	var system string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Stream   bool `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &req))
		assert.True(t, req.Stream)
		require.Len(t, req.Messages, 4)
		system = req.Messages[0].Content
		assert.Equal(t, "user", req.Messages[3].Role)

		w.Header().Set("Content-Type", "text/event-stream")
		for _, part := range []string{"Use ", "", "JSON.parse"} {
			chunk := map[string]any{
				"id":      "c1",
				"object":  "chat.completion.chunk",
				"choices": []any{map[string]any{"index": 0, "delta": map[string]any{"content": part}}},
			}
			b, _ := json.Marshal(chunk)
			_, _ = fmt.Fprintf(w, "data: %s\n\n", b)
		}
		_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
	})

	history := []Message{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	var deltas []string
	full, err := c.Chat(context.Background(), append(history, Message{Role: "user", Content: "fix eval?"}), "eval(x)", "javascript",
		&models.AnalysisResult{Score: 40}, func(d string) { deltas = append(deltas, d) })
	require.NoError(t, err)
	assert.Equal(t, "Use JSON.parse", full)
	assert.Equal(t, []string{"Use ", "JSON.parse"}, deltas)
	assert.Contains(t, system, "- Quality Score: 40/100")
}

func Test_Chat_RateLimited(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = fmt.Fprint(w, `{"error":{"message":"slow down","type":"rate_limit"}}`)
	})
	_, err := c.Chat(context.Background(), nil, "", "", nil, nil)
	require.ErrorIs(t, err, ErrRateLimited)
}
