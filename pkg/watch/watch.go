// Package watch 监听源文件变更，防抖后触发重新分析
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/yeisme/codescope/pkg/source"
	"github.com/yeisme/codescope/pkg/utils/log"
)

// Hook 变更稳定后以发生变化的文件路径调用
type Hook func(path string)

// Watcher 监听单个文件或一个目录（非递归）
//
// 监听文件时实际监听其所在目录，编辑器以 rename 方式保存也能收到事件
type Watcher struct {
	target   string
	isDir    bool
	debounce time.Duration
	fsw      *fsnotify.Watcher

	// 最近一次触发时的内容指纹，内容未变的写入不会触发 hook
	states  map[string]uint64
	pending map[string]struct{}
	timer   *time.Timer
	fire    chan struct{}
}

// New 创建并注册监听，返回后即可收到事件
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	dir := abs
	if !st.IsDir() {
		dir = filepath.Dir(abs)
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{
		target:   abs,
		isDir:    st.IsDir(),
		debounce: max(debounce, 0),
		fsw:      fsw,
		states:   make(map[string]uint64),
		pending:  make(map[string]struct{}),
		fire:     make(chan struct{}, 1),
	}
	if !w.isDir {
		if sum, ok := fileSum(abs); ok {
			w.states[abs] = sum
		}
	}
	return w, nil
}

// Target 监听目标的绝对路径
func (w *Watcher) Target() string { return w.target }

// IsDir 目标是否为目录
func (w *Watcher) IsDir() bool { return w.isDir }

// Watch 监听 path 直到 ctx 结束
func Watch(ctx context.Context, path string, debounce time.Duration, hook Hook) error {
	w, err := New(path, debounce)
	if err != nil {
		return err
	}
	return w.Run(ctx, hook)
}

// Run 处理事件循环；hook 在调用 Run 的 goroutine 中同步执行。ctx 结束时关闭监听并返回 nil
func (w *Watcher) Run(ctx context.Context, hook Hook) error {
	defer w.close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.relevant(event) {
				w.pending[filepath.Clean(event.Name)] = struct{}{}
				w.armOrResetDebounce()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				log.Warn().Err(err).Msg("watch event queue overflowed")
				continue
			}
			log.Error().Err(err).Str("path", w.target).Msg("watcher error")
		case <-w.fire:
			w.onDebounceFire(hook)
		}
	}
}

// relevant 只关心写入与创建；监听目录时仅关心可识别语言的文件
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name := filepath.Clean(event.Name)
	if !w.isDir {
		return name == w.target
	}
	_, ok := source.LanguageForPath(name)
	return ok
}

// armOrResetDebounce 启动或重置防抖定时器
func (w *Watcher) armOrResetDebounce() {
	if w.timer != nil {
		w.timer.Reset(w.debounce)
		return
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.fire <- struct{}{}:
		default:
		}
	})
}

// onDebounceFire 对内容确实变化的文件调用 hook
func (w *Watcher) onDebounceFire(hook Hook) {
	for name := range w.pending {
		delete(w.pending, name)
		sum, ok := fileSum(name)
		if !ok {
			continue
		}
		if prev, seen := w.states[name]; seen && prev == sum {
			log.Debug().Str("file", name).Msg("content unchanged, skipping")
			continue
		}
		w.states[name] = sum
		log.Debug().Str("file", name).Msg("change detected")
		hook(name)
	}
}

func (w *Watcher) close() {
	if w.timer != nil {
		w.timer.Stop()
	}
	if err := w.fsw.Close(); err != nil {
		log.Debug().Err(err).Msg("close watcher")
	}
}

// fileSum 文件内容的 xxhash，读取失败返回 false
func fileSum(path string) (uint64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	return xxhash.Sum64(data), true
}
