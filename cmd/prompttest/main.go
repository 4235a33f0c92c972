package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"saarthi-backend/internal/artifacts"
	"saarthi-backend/internal/bootstrap"
	"saarthi-backend/internal/extract"
	"saarthi-backend/internal/generation"
	"saarthi-backend/internal/shared/config"
	"saarthi-backend/internal/shared/telemetry"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	mock       bool
	provider   string
	model      string
	length     string
	tone       string
	difficulty string
	count      int
	outPath    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "prompttest",
		Short:        "Run the chat, summary and quiz prompts against a local file",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&opts.mock, "mock", false, "use the mock generator")
	root.PersistentFlags().StringVar(&opts.provider, "provider", "", "LLM provider (openai or gemini)")
	root.PersistentFlags().StringVar(&opts.model, "model", "", "LLM model")
	root.PersistentFlags().StringVar(&opts.outPath, "out", "", "write the artifact JSON to this path")

	chatCmd := &cobra.Command{
		Use:   "chat <file> <question>",
		Short: "Ask a question about the file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args[0], func(ctx context.Context, c *generation.Client, text string) (any, generation.Mode) {
				return c.Chat(ctx, text, args[1], opts.mock)
			})
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summarize <file>",
		Short: "Summarize the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			so := artifacts.SummaryOptions{Length: artifacts.SummaryLength(opts.length), Tone: opts.tone}
			return run(cmd.Context(), opts, args[0], func(ctx context.Context, c *generation.Client, text string) (any, generation.Mode) {
				return c.Summarize(ctx, text, so, opts.mock)
			})
		},
	}
	summaryCmd.Flags().StringVar(&opts.length, "length", "short", "short or detailed")
	summaryCmd.Flags().StringVar(&opts.tone, "tone", artifacts.DefaultTone, "summary tone")

	quizCmd := &cobra.Command{
		Use:   "quiz <file>",
		Short: "Generate a quiz from the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			qo := artifacts.QuizOptions{NumQuestions: opts.count, Difficulty: artifacts.Difficulty(opts.difficulty)}
			return run(cmd.Context(), opts, args[0], func(ctx context.Context, c *generation.Client, text string) (any, generation.Mode) {
				return c.Quiz(ctx, text, qo, opts.mock)
			})
		},
	}
	quizCmd.Flags().StringVar(&opts.difficulty, "difficulty", "medium", "easy, medium or hard")
	quizCmd.Flags().IntVar(&opts.count, "count", artifacts.DefaultQuestions, "number of questions")

	root.AddCommand(chatCmd, summaryCmd, quizCmd)
	return root
}

type generateFunc func(ctx context.Context, c *generation.Client, text string) (any, generation.Mode)

func run(ctx context.Context, opts *options, path string, gen generateFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := config.Load().WithModelOverrides(opts.provider, opts.model)
	cfg.MockMode = cfg.MockMode || opts.mock
	if err := telemetry.Init(cfg.LogMode); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer telemetry.Sync()

	res := extract.Extract(ctx, path, "")
	if !res.Success {
		return fmt.Errorf("extract %s: %s", path, res.Reason)
	}

	client, err := bootstrap.BuildGeneration(cfg)
	if err != nil {
		return err
	}

	artifact, mode := gen(ctx, client, res.Text)
	raw, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}
	fmt.Fprintf(os.Stderr, "mode=%s chars=%d\n", mode, len([]rune(res.Text)))

	if opts.outPath != "" {
		if err := os.WriteFile(opts.outPath, raw, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	fmt.Println(string(raw))
	return nil
}
