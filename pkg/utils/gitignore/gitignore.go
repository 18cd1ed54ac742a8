// Package gitignore provides utilities for parsing and matching .gitignore patterns.
package gitignore

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// rule 一条解析后的 gitignore 规则
type rule struct {
	raw      string
	glob     string
	negate   bool
	dirOnly  bool
	anchored bool
}

// GitIgnore represents a collection of gitignore patterns
type GitIgnore struct {
	rules []rule
}

// Load 从任意 reader 解析 gitignore 内容
func Load(r io.Reader) (*GitIgnore, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ParseLines(lines), nil
}

// LoadFile loads and parses a .gitignore file; a missing file yields an empty matcher
func LoadFile(p string) (*GitIgnore, error) {
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &GitIgnore{}, nil
		}
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// LoadFromDir loads .gitignore file from the specified directory
func LoadFromDir(dir string) (*GitIgnore, error) {
	return LoadFile(filepath.Join(dir, ".gitignore"))
}

// ParseLines parses gitignore patterns from a slice of strings
func ParseLines(lines []string) *GitIgnore {
	gi := &GitIgnore{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		gi.rules = append(gi.rules, parseRule(line))
	}
	return gi
}

func parseRule(line string) rule {
	r := rule{raw: line}
	p := line
	if after, ok := strings.CutPrefix(p, "!"); ok {
		r.negate = true
		p = after
	}
	if strings.HasSuffix(p, "/") {
		r.dirOnly = true
		p = strings.TrimSuffix(p, "/")
	}
	// 含有 / 的规则相对仓库根匹配，否则匹配任意层级的名字
	if strings.Contains(p, "/") {
		r.anchored = true
		p = strings.TrimPrefix(p, "/")
	}
	r.glob = p
	return r
}

// Patterns returns all loaded patterns in source order
func (gi *GitIgnore) Patterns() []string {
	out := make([]string, 0, len(gi.rules))
	for _, r := range gi.rules {
		out = append(out, r.raw)
	}
	return out
}

// IsIgnored 判断相对仓库根的路径是否被忽略
//
// 路径的任一父目录被忽略时，路径本身也被忽略。规则按顺序求值，后出现的覆盖先出现的
func (gi *GitIgnore) IsIgnored(rel string, isDir bool) bool {
	if gi == nil || len(gi.rules) == 0 {
		return false
	}
	rel = strings.TrimPrefix(filepath.ToSlash(rel), "./")
	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		if gi.match(strings.Join(parts[:i], "/"), true) {
			return true
		}
	}
	return gi.match(rel, isDir)
}

func (gi *GitIgnore) match(rel string, isDir bool) bool {
	ignored := false
	for _, r := range gi.rules {
		if r.dirOnly && !isDir {
			continue
		}
		if r.matches(rel) {
			ignored = !r.negate
		}
	}
	return ignored
}

func (r rule) matches(rel string) bool {
	if r.anchored {
		ok, _ := doublestar.Match(r.glob, rel)
		return ok
	}
	ok, _ := doublestar.Match(r.glob, path.Base(rel))
	return ok
}
