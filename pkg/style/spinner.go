package style

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Spinner 长任务期间的终端旋转指示器，可以随时更新提示文字
// 输出目标不是终端时只在结束时打印一行
type Spinner struct {
	out      io.Writer
	interval time.Duration
	animate  bool

	mu  sync.Mutex
	msg string

	stopCh chan struct{}
	doneCh chan struct{}
	once   sync.Once
}

// NewSpinner 创建 Spinner，out 一般为 cmd.ErrOrStderr()
func NewSpinner(out io.Writer, msg string) *Spinner {
	return &Spinner{
		out:      out,
		msg:      msg,
		interval: 120 * time.Millisecond,
		animate:  IsTerminal(out),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// SetMessage 更新提示文字
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	s.msg = msg
	s.mu.Unlock()
}

func (s *Spinner) message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.msg
}

// Start 启动动画，直到 Stop 被调用
func (s *Spinner) Start() {
	go func() {
		defer close(s.doneCh)
		if !s.animate {
			<-s.stopCh
			return
		}
		frames := []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for i := 0; ; i = (i + 1) % len(frames) {
			_, _ = fmt.Fprintf(s.out, "\r\033[K%c %s", frames[i], s.message())
			select {
			case <-s.stopCh:
				_, _ = fmt.Fprint(s.out, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop 停止动画并打印结束行，ok 决定结束符号；可以重复调用
func (s *Spinner) Stop(ok bool) {
	s.once.Do(func() {
		close(s.stopCh)
		<-s.doneCh
		mark := lipgloss.NewStyle().Foreground(ColorSuccess).Render("✔")
		if !ok {
			mark = lipgloss.NewStyle().Foreground(ColorCritical).Render("✘")
		}
		_, _ = fmt.Fprintf(s.out, "%s %s\n", mark, s.message())
	})
}
