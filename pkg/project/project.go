// Package project 对整个目录做批量分析
package project

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sort"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/yeisme/codescope/pkg/analysis"
	"github.com/yeisme/codescope/pkg/configs"
	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/utils/log"
)

// Options 批量分析选项
type Options struct {
	Include          []string
	Exclude          []string
	RespectGitignore bool
	// <= 0 时使用 CPU 数
	Concurrency int
	MaxFileSize int64
	// 内容相同的文件只分析一次
	Dedupe bool
}

// OptionsFromConfig 由配置文件的 project 段构造选项
func OptionsFromConfig(c configs.ProjectConfig) Options {
	return Options{
		Include:          c.Include,
		Exclude:          c.Exclude,
		RespectGitignore: c.RespectGitignore,
		Concurrency:      c.Concurrency,
		MaxFileSize:      c.MaxFileSize,
		Dedupe:           c.Dedupe,
	}
}

// AnalyzeFunc 单文件分析函数，默认为 analysis.Analyze
type AnalyzeFunc func(code, language string) *models.AnalysisResult

// Analyzer 目录分析器，可复用：结果缓存跨多次 AnalyzeDir 生效
type Analyzer struct {
	analyze AnalyzeFunc
	cache   *resultCache
	flight  singleflight.Group
}

// NewAnalyzer 创建分析器，cacheSize 为缓存的结果条数，<= 0 时不缓存
func NewAnalyzer(cacheSize int64) (*Analyzer, error) {
	a := &Analyzer{analyze: analysis.Analyze}
	if cacheSize > 0 {
		c, err := newResultCache(cacheSize)
		if err != nil {
			return nil, fmt.Errorf("create result cache: %w", err)
		}
		a.cache = c
	}
	return a, nil
}

// Close 释放缓存
func (a *Analyzer) Close() {
	a.cache.Close()
}

// AnalyzeDir 遍历 root 并分析其中每个可识别语言的源文件
//
// 结果按相对路径排序；内容与语言都相同的文件共享同一份结果，后出现者标记为 Duplicate
func (a *Analyzer) AnalyzeDir(ctx context.Context, root string, opts Options) (*models.ProjectReport, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	gi := loadGitIgnore(root, opts.RespectGitignore)
	walked, err := collectFiles(ctx, root, opts, gi)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	log.Debug().Str("root", root).Int("files", len(walked.files)).Int("skipped", walked.skipped).Msg("collected files")

	reports := make([]models.FileReport, len(walked.files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prepareConcurrency(opts.Concurrency))
	for i, c := range walked.files {
		g.Go(func() error {
			r, err := a.processFile(gctx, c, opts.Dedupe)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return aggregate(root, reports, walked.skipped), nil
}

// processFile 读取、计算指纹并分析单个文件
func (a *Analyzer) processFile(ctx context.Context, c candidate, dedupe bool) (models.FileReport, error) {
	if err := ctx.Err(); err != nil {
		return models.FileReport{}, err
	}
	data, err := os.ReadFile(c.abs)
	if err != nil {
		return models.FileReport{}, fmt.Errorf("read %s: %w", c.rel, err)
	}
	code := string(data)
	fp := Fingerprint(c.language, data)
	report := models.FileReport{Path: c.rel, Language: string(c.language), Fingerprint: fp}

	if !dedupe {
		report.Result = a.analyze(code, string(c.language))
		return report, nil
	}

	v, _, _ := a.flight.Do(fp, func() (any, error) {
		if r, ok := a.cache.Get(fp); ok {
			log.Debug().Str("file", c.rel).Str("fingerprint", fp).Msg("cache hit")
			return r, nil
		}
		r := a.analyze(code, string(c.language))
		a.cache.Set(fp, r)
		return r, nil
	})
	report.Result = v.(*models.AnalysisResult)
	return report, nil
}

// Fingerprint 语言与内容的 xxhash 指纹
func Fingerprint(l lang.Language, data []byte) string {
	d := xxhash.New()
	_, _ = d.WriteString(string(l))
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(data)
	return fmt.Sprintf("%016x", d.Sum64())
}

// prepareConcurrency 用户指定正数时使用该值，否则为 CPU 核心数且至少为 1
func prepareConcurrency(c int) int {
	if c > 0 {
		return c
	}
	return max(runtime.NumCPU(), 1)
}

// aggregate 排序、标记重复并按语言汇总
func aggregate(root string, files []models.FileReport, skipped int) *models.ProjectReport {
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	rep := &models.ProjectReport{
		Root:      root,
		Files:     files,
		Languages: make(map[string]*models.LanguageSummary),
		Skipped:   skipped,
	}
	seen := make(map[string]struct{}, len(files))
	for i := range files {
		f := &files[i]
		if _, dup := seen[f.Fingerprint]; dup {
			f.Duplicate = true
			rep.Duplicates++
		}
		seen[f.Fingerprint] = struct{}{}

		ls, ok := rep.Languages[f.Language]
		if !ok {
			ls = &models.LanguageSummary{}
			rep.Languages[f.Language] = ls
		}
		ls.AddFile(f.Result)
		rep.Total.AddFile(f.Result)
	}
	return rep
}
