package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/yeisme/codescope/pkg/models"
)

// Export JSON 导出文档
type Export struct {
	AnalysisResult *models.AnalysisResult     `json:"analysisResult"`
	CICDAnalysis   *models.CICDAnalysisResult `json:"cicdAnalysis,omitempty"`
	Timestamp      time.Time                  `json:"timestamp"`
}

// NewExport 组装导出文档，时间统一为 UTC
func NewExport(r *models.AnalysisResult, cicd *models.CICDAnalysisResult, now time.Time) Export {
	return Export{AnalysisResult: r, CICDAnalysis: cicd, Timestamp: now.UTC()}
}

// WriteJSON 以两空格缩进写出
func (e Export) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encode export: %w", err)
	}
	return nil
}

// ExportFileName 导出文件名，按 UTC 日期命名
func ExportFileName(now time.Time) string {
	return "code-analysis-" + now.UTC().Format(time.DateOnly) + ".json"
}
