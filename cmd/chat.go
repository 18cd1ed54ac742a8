package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yeisme/codescope/pkg/analysis"
	"github.com/yeisme/codescope/pkg/llm"
	"github.com/yeisme/codescope/pkg/models"
	"github.com/yeisme/codescope/pkg/style"
)

var (
	chatLang    languageFlags
	chatMessage string

	chatCmd = &cobra.Command{
		Use:   "chat FILE",
		Short: "Ask questions about a file and its analysis",
		Long: `codescope chat analyzes FILE and starts a conversation with a language model
that sees the code, its quality score and the issues found. Answers are
streamed as they arrive.

Questions are read line by line from stdin; type "exit" or "quit" or send EOF
(Ctrl+D) to leave. With --message a single question is answered and the
command exits.

Examples:
  codescope chat app.js
  codescope chat main.go -m "why is the complexity so high?"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := loadInput(args[0])
			if err != nil {
				return err
			}
			language, err := resolveLanguage(in, chatLang)
			if err != nil {
				return err
			}
			result := analysis.Analyze(in.Code, string(language))

			client, err := llm.NewOpenAIClient(csCtx.Config.LLM)
			if err != nil {
				return err
			}
			s := &chatSession{
				client:   client,
				code:     in.Code,
				language: string(language),
				result:   result,
				out:      cmd.OutOrStdout(),
			}

			if chatMessage != "" {
				return s.ask(cmd.Context(), chatMessage)
			}
			return s.repl(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr())
		},
	}
)

// chatSession 一次对话，保存历史消息
type chatSession struct {
	client   llm.Client
	code     string
	language string
	result   *models.AnalysisResult
	history  []llm.Message
	out      io.Writer
}

// ask 发送问题并流式输出回答；失败时丢弃这条提问，以便重试
func (s *chatSession) ask(ctx context.Context, question string) error {
	s.history = append(s.history, llm.Message{Role: "user", Content: question})
	reply, err := s.client.Chat(ctx, s.history, s.code, s.language, s.result, func(delta string) {
		_, _ = io.WriteString(s.out, delta)
	})
	fmt.Fprintln(s.out)
	if err != nil {
		s.history = s.history[:len(s.history)-1]
		return err
	}
	s.history = append(s.history, llm.Message{Role: "assistant", Content: reply})
	return nil
}

func (s *chatSession) repl(ctx context.Context, r io.Reader, prompt io.Writer) error {
	fmt.Fprintf(prompt, "%s\n", style.Muted(fmt.Sprintf("Score %d/100, %d issues. Ask about the code, \"exit\" to quit.", s.result.Score, len(s.result.Issues))))
	sc := bufio.NewScanner(r)
	for {
		fmt.Fprint(prompt, "> ")
		if !sc.Scan() {
			fmt.Fprintln(prompt)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		err := s.ask(ctx, line)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return nil
		case errors.Is(err, llm.ErrRateLimited), errors.Is(err, llm.ErrPaymentRequired):
			fmt.Fprintln(prompt, style.SeverityBadge(models.SeverityWarning), err)
		default:
			return err
		}
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatLang.register(chatCmd)
	chatCmd.Flags().StringVarP(&chatMessage, "message", "m", "", "ask a single question and exit")
}
