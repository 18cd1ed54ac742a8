package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/codescope/pkg/configs"
	cctx "github.com/yeisme/codescope/pkg/context"
	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/llm"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/source"
	"github.com/yeisme/codescope/pkg/utils/log"
)

const pythonSnippet = "def main():\n    print('hello world')\n\nif __name__ == '__main__':\n    main()\n"

func withTestContext(t *testing.T, analysis configs.AnalysisConfig) {
	t.Helper()
	prev := csCtx
	csCtx = &cctx.CodescopeContext{
		Context: context.Background(),
		Config:  &configs.Config{Analysis: analysis, App: configs.AppConfig{NoColor: true}},
		Logger:  log.GetLogger(),
	}
	t.Cleanup(func() { csCtx = prev })
}

func Test_parseReportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    reportFormat
		wantErr bool
	}{
		{"", formatText, false},
		{"JSON", formatJSON, false},
		{"yml", formatYAML, false},
		{"md", formatMarkdown, false},
		{"share", formatShare, false},
		{"export", formatExport, false},
		{"html", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseReportFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	f, ok := formatTOML.structured()
	assert.True(t, ok)
	assert.Equal(t, configs.FormatTOML, f)
	_, ok = formatShare.structured()
	assert.False(t, ok)
}

func Test_resolveLanguage(t *testing.T) {
	withTestContext(t, configs.AnalysisConfig{MinDetectLength: 20, DefaultLanguage: "go"})

	tests := []struct {
		name  string
		in    source.Input
		flags languageFlags
		want  lang.Language
	}{
		{"flag wins", source.Input{Code: pythonSnippet, Language: lang.Ruby, FromExt: true}, languageFlags{lang: "ts"}, lang.TypeScript},
		{"extension", source.Input{Code: pythonSnippet, Language: lang.Ruby, FromExt: true}, languageFlags{}, lang.Ruby},
		{"detected", source.Input{Code: pythonSnippet, Language: lang.Default}, languageFlags{}, lang.Python},
		{"too short", source.Input{Code: "x = 1", Language: lang.Default}, languageFlags{}, lang.Go},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveLanguage(tt.in, tt.flags)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_resolveLanguage_Unknown(t *testing.T) {
	withTestContext(t, configs.AnalysisConfig{})

	_, err := resolveLanguage(source.Input{Code: "x"}, languageFlags{lang: "pythn"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean")
	assert.Contains(t, err.Error(), "python")
}

func Test_supportedLanguages(t *testing.T) {
	infos := supportedLanguages()
	require.Len(t, infos, len(lang.All()))

	byID := make(map[string]languageInfo)
	for _, info := range infos {
		byID[info.ID] = info
	}
	assert.Equal(t, []string{".cc", ".cpp", ".cxx", ".hpp"}, byID["cpp"].Extensions)
	assert.Equal(t, "C#", byID["csharp"].Name)
}

// fakeClient 按脚本回复的 llm.Client
type fakeClient struct {
	replies []string
	err     error
	seen    [][]llm.Message
}

func (f *fakeClient) Suggest(context.Context, string, string, []models.Issue) (llm.FixResult, error) {
	return llm.FixResult{}, nil
}

func (f *fakeClient) Chat(_ context.Context, history []llm.Message, _, _ string, _ *models.AnalysisResult, onDelta func(string)) (string, error) {
	f.seen = append(f.seen, append([]llm.Message(nil), history...))
	if f.err != nil {
		return "", f.err
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	for _, w := range strings.SplitAfter(reply, " ") {
		onDelta(w)
	}
	return reply, nil
}

func Test_chatSession_repl(t *testing.T) {
	client := &fakeClient{replies: []string{"Use JSON.parse instead.", "Yes."}}
	var out bytes.Buffer
	s := &chatSession{client: client, result: &models.AnalysisResult{Score: 70}, out: &out}

	err := s.repl(context.Background(), strings.NewReader("  \nhow do I fix eval?\nanything else?\nexit\nignored\n"), io.Discard)
	require.NoError(t, err)

	require.Len(t, client.seen, 2)
	assert.Len(t, client.seen[0], 1)
	assert.Equal(t, []llm.Message{
		{Role: "user", Content: "how do I fix eval?"},
		{Role: "assistant", Content: "Use JSON.parse instead."},
		{Role: "user", Content: "anything else?"},
	}, client.seen[1])
	assert.Equal(t, "Use JSON.parse instead.\nYes.\n", out.String())
	assert.Len(t, s.history, 4)
}

func Test_chatSession_RateLimited(t *testing.T) {
	client := &fakeClient{err: llm.ErrRateLimited}
	var prompt bytes.Buffer
	s := &chatSession{client: client, result: &models.AnalysisResult{}, out: io.Discard}

	err := s.repl(context.Background(), strings.NewReader("one\ntwo\n"), &prompt)
	require.NoError(t, err)
	assert.Len(t, client.seen, 2)
	assert.Empty(t, s.history)
	assert.Contains(t, prompt.String(), "rate limit exceeded")
}

func Test_chatSession_Fails(t *testing.T) {
	s := &chatSession{client: &fakeClient{err: llm.ErrNotConfigured}, result: &models.AnalysisResult{}, out: io.Discard}
	err := s.repl(context.Background(), strings.NewReader("hi\n"), io.Discard)
	assert.ErrorIs(t, err, llm.ErrNotConfigured)
}

func Test_analyzeCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "codescope.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("app:\n  quiet: true\n"), 0o644))
	src := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(src, []byte(pythonSnippet), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--config", cfg, "--no-color", "analyze", src, "--format", "json"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		analyzeFormat = string(formatText)
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	var doc analyzeOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &doc))
	assert.Equal(t, src, doc.Path)
	assert.Equal(t, "python", doc.Language)
	require.NotNil(t, doc.Result)
	assert.Equal(t, 6, doc.Result.Metrics.LinesOfCode)
	assert.Nil(t, doc.CICD)
}

func Test_configSchemaCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "codescope.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("app:\n  quiet: true\n"), 0o644))

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(io.Discard)
		rootCmd.SetArgs(append([]string{"--config", cfg, "config", "schema"}, args...))
		err := rootCmd.ExecuteContext(context.Background())
		return out.String(), err
	}
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	out, err := run()
	require.NoError(t, err)
	assert.Contains(t, out, "min_detect_length")

	out, err = run("cicd")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Contains(t, doc, "$schema")

	_, err = run("tools")
	assert.ErrorContains(t, err, "unknown schema kind")
}

func Test_analyzeCommand_TOML(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "codescope.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("app:\n  quiet: true\n"), 0o644))
	src := filepath.Join(dir, "main.py")
	require.NoError(t, os.WriteFile(src, []byte(pythonSnippet), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--config", cfg, "--no-color", "analyze", src, "--format", "toml"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		analyzeFormat = string(formatText)
	})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	text := out.String()
	assert.Contains(t, text, "[result.metrics]")
	assert.Contains(t, text, "lines_of_code = 6")
	assert.Contains(t, text, "[result.ai_detection]")
	assert.NotContains(t, text, "LinesOfCode")
	assert.NotContains(t, text, "cicd")
}
