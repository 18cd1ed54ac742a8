package project

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yeisme/codescope/pkg/lang"
	"github.com/yeisme/codescope/pkg/source"
	"github.com/yeisme/codescope/pkg/utils/gitignore"
	"github.com/yeisme/codescope/pkg/utils/log"
)

// candidate 遍历阶段收集到的待分析文件
type candidate struct {
	abs      string
	rel      string
	language lang.Language
}

// walkResult 遍历结果，skipped 统计因过滤而未分析的文件数
type walkResult struct {
	files   []candidate
	skipped int
}

// collectFiles 递归遍历 root，按 .gitignore、include/exclude、大小与扩展名筛选文件
func collectFiles(ctx context.Context, root string, opts Options, gi *gitignore.GitIgnore) (walkResult, error) {
	res := walkResult{files: make([]candidate, 0, 256)}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if shouldSkipDir(toRelSlash(root, path), opts, gi) {
				return filepath.SkipDir
			}
			return nil
		}

		// 符号链接与设备文件等一律不跟随
		if !d.Type().IsRegular() {
			return nil
		}

		rel := toRelSlash(root, path)
		l, ok := source.LanguageForPath(rel)
		if !ok {
			return nil
		}
		if !shouldIncludeFile(rel, opts, gi) {
			res.skipped++
			return nil
		}
		if overSize(d, opts.MaxFileSize) {
			res.skipped++
			return nil
		}
		res.files = append(res.files, candidate{abs: path, rel: rel, language: l})
		return nil
	})
	if err != nil {
		return walkResult{}, err
	}
	return res, nil
}

// toRelSlash 转为相对 root、以 / 分隔的路径，保证模式匹配跨平台一致
func toRelSlash(root, path string) string {
	rel, _ := filepath.Rel(root, path)
	return filepath.ToSlash(rel)
}

// shouldSkipDir 判断是否整体跳过一个目录
//
// 任意层级的 .git 总是跳过；Include 为空时 exclude 规则才作用于目录，
// 避免排除目录后其下被 include 的文件永远不可达
func shouldSkipDir(rel string, opts Options, gi *gitignore.GitIgnore) bool {
	if rel == ".git" || strings.HasSuffix(rel, "/.git") {
		return true
	}
	if gi.IsIgnored(rel, true) {
		return true
	}
	if len(opts.Include) == 0 {
		// "**/vendor/**" 这类模式需要以目录内的路径来试探
		return matchesAny(rel, opts.Exclude) || matchesAny(rel+"/x", opts.Exclude)
	}
	return false
}

// shouldIncludeFile 判断文件是否参与分析
//
//  1. 被 .gitignore 忽略的不包含
//  2. Include 非空时只包含匹配的文件
//  3. 匹配 Exclude 的不包含
func shouldIncludeFile(rel string, opts Options, gi *gitignore.GitIgnore) bool {
	if gi.IsIgnored(rel, false) {
		return false
	}
	if len(opts.Include) > 0 && !matchesAny(rel, opts.Include) {
		return false
	}
	return !matchesAny(rel, opts.Exclude)
}

// matchesAny 用 doublestar 语法匹配；不含 / 的模式同时匹配文件名
func matchesAny(rel string, patterns []string) bool {
	base := filepath.Base(filepath.FromSlash(rel))
	for _, raw := range patterns {
		p := normalizePattern(raw)
		if p == "" {
			continue
		}
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, base); ok {
				return true
			}
		}
		// "pkg/" 表示该目录及其所有内容
		if prefix, ok := strings.CutSuffix(p, "/"); ok {
			if rel == prefix || strings.HasPrefix(rel, prefix+"/") {
				return true
			}
		}
	}
	return false
}

// normalizePattern 统一为 / 分隔并去掉前导 ./
func normalizePattern(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, "\\", "/")
	p, _ = strings.CutPrefix(p, "./")
	return p
}

// overSize 文件大小超过 limit 时返回 true，limit <= 0 表示不限
func overSize(d fs.DirEntry, limit int64) bool {
	if limit <= 0 {
		return false
	}
	info, err := d.Info()
	if err != nil {
		return false
	}
	return info.Size() > limit
}

func loadGitIgnore(root string, respect bool) *gitignore.GitIgnore {
	if !respect {
		return nil
	}
	gi, err := gitignore.LoadFromDir(root)
	if err != nil {
		log.Warn().Err(err).Str("root", root).Msg("failed to read .gitignore, ignoring it")
		return nil
	}
	log.Debug().Strs("patterns", gi.Patterns()).Msg("gitignore loaded")
	return gi
}
