package detect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeisme/codescope/pkg/lang"
)

const pythonSample = `import os

def main():
    print("hello")

if __name__ == "__main__":
    main()
`

const goSample = `package main

import "fmt"

func main() {
	x := 1
	fmt.Println(x)
}
`

func Test_DetectLanguage_Empty(t *testing.T) {
	for _, in := range []string{"", "   \n\t  "} {
		res := DetectLanguage(in)
		assert.Equal(t, "javascript", res.DetectedLanguage)
		assert.Equal(t, 0, res.Confidence)
		assert.NotNil(t, res.Scores)
		assert.Empty(t, res.Scores)
	}
}

func Test_DetectLanguage_Python(t *testing.T) {
	res := DetectLanguage(pythonSample)
	assert.Equal(t, "python", res.DetectedLanguage)
	assert.GreaterOrEqual(t, res.Confidence, 50)
	assert.LessOrEqual(t, res.Confidence, 100)
}

func Test_DetectLanguage_Go(t *testing.T) {
	res := DetectLanguage(goSample)
	assert.Equal(t, "go", res.DetectedLanguage)
	assert.Greater(t, res.Confidence, 0)
}

func Test_DetectLanguage_RankingShape(t *testing.T) {
	res := DetectLanguage(goSample)
	require.Len(t, res.Scores, TopN)
	assert.Equal(t, res.DetectedLanguage, res.Scores[0].Language)
	for i := 1; i < len(res.Scores); i++ {
		assert.GreaterOrEqual(t, res.Scores[i-1].Score, res.Scores[i].Score)
	}
}

func Test_DetectLanguage_Deterministic(t *testing.T) {
	a := DetectLanguage(pythonSample)
	b := DetectLanguage(pythonSample)
	assert.Equal(t, a, b)
}

func Test_DetectLanguage_NoSignal(t *testing.T) {
	res := DetectLanguage("~~~ ~~~")
	assert.Equal(t, string(lang.Signatures()[0].Language), res.DetectedLanguage)
	assert.Equal(t, "python", res.DetectedLanguage)
	assert.Equal(t, 0, res.Confidence)
	require.Len(t, res.Scores, TopN)
	for _, s := range res.Scores {
		assert.Zero(t, s.Score)
	}
}

func Test_DetectLanguage_WhitespaceShuffle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		edit func(string) string
	}{
		{"python blank lines", pythonSample, func(s string) string { return strings.ReplaceAll(s, "\n", "\n\n") }},
		{"python leading space", pythonSample, func(s string) string { return "\n\n" + s + "\n\n" }},
		{"go tabs to spaces", goSample, func(s string) string { return strings.ReplaceAll(s, "\t", "    ") }},
		{"go blank lines", goSample, func(s string) string { return strings.ReplaceAll(s, "\n", "\n\n\n") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := DetectLanguage(tt.in).DetectedLanguage
			assert.Equal(t, want, DetectLanguage(tt.edit(tt.in)).DetectedLanguage)
		})
	}
}

func Test_confidence(t *testing.T) {
	assert.Equal(t, 0, confidence(0, 0))
	// 只有一个语言得分：dominance=1，top>50 时封顶
	assert.Equal(t, 100, confidence(80, 0))
	// 10 分且无竞争：70 + 6
	assert.Equal(t, 76, confidence(10, 0))
	// 势均力敌：dominance=0
	assert.Equal(t, 30, confidence(60, 60))
}

func Test_Score_Weight(t *testing.T) {
	var goSig lang.Signature
	for _, s := range lang.Signatures() {
		if s.Language == lang.Go {
			goSig = s
		}
	}
	// 仅命中 fmt.Println 这一强特征
	assert.InDelta(t, 20*1.7, Score(goSig, `fmt.Println(1)`), 1e-9)
}

func Test_CheckMismatch(t *testing.T) {
	_, ok := CheckMismatch("x = 1", lang.JavaScript, 20, 50)
	assert.False(t, ok, "short text should not warn")

	m, ok := CheckMismatch(pythonSample, lang.JavaScript, 20, 50)
	require.True(t, ok)
	assert.Equal(t, lang.Python, m.Detected)
	assert.Contains(t, m.Message(), "Python")

	_, ok = CheckMismatch(pythonSample, lang.Python, 20, 50)
	assert.False(t, ok)
}
