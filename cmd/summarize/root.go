package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
	"github.com/yanqian/multilingual-summarizer/internal/domain/textstats"
	"github.com/yanqian/multilingual-summarizer/internal/infra/config"
	"github.com/yanqian/multilingual-summarizer/internal/infra/summaryapi"
	"github.com/yanqian/multilingual-summarizer/pkg/logger"
)

type clipboardWriter interface {
	Copy(text string) bool
}

type options struct {
	language  string
	sentences int
	endpoint  string
	timeout   time.Duration
	copy      bool
	statsOnly bool
	sample    bool
}

func newRootCmd(newCopier func(*slog.Logger) clipboardWriter) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Summarize text in English, Hindi or Marathi",
		Long: `summarize reads text from a file, stdin or the built-in sample, prints its
statistics and asks the summarization service for a summary in the chosen language.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, args, opts, newCopier)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.language, "language", "l", "", "output language (en, hi, mr)")
	flags.IntVarP(&opts.sentences, "sentences", "n", 0, "number of summary sentences")
	flags.StringVar(&opts.endpoint, "endpoint", "", "summarization service URL")
	flags.DurationVar(&opts.timeout, "timeout", 0, "request timeout")
	flags.BoolVar(&opts.copy, "copy", false, "copy the summary to the clipboard")
	flags.BoolVar(&opts.statsOnly, "stats-only", false, "print text statistics without summarizing")
	flags.BoolVar(&opts.sample, "sample", false, "use the built-in sample paragraph")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options, newCopier func(*slog.Logger) clipboardWriter) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewWithWriter(cmd.ErrOrStderr()).With("component", "cli")

	text, err := readInput(cmd, args, opts.sample)
	if err != nil {
		return err
	}

	sumCfg := summarizer.Config{
		Timeout:          cfg.Summarizer.Timeout,
		MinSentences:     cfg.Summarizer.MinSentences,
		DefaultLanguage:  summarizer.Language(cfg.Summarizer.DefaultLanguage),
		DefaultSentences: cfg.Summarizer.DefaultSentences,
	}
	if opts.timeout > 0 {
		sumCfg.Timeout = opts.timeout
	}
	endpoint := cfg.Summarizer.Endpoint
	if opts.endpoint != "" {
		endpoint = opts.endpoint
	}

	session := summarizer.NewSession(uuid.New(), sumCfg, summaryapi.NewClient(endpoint), log)
	stats := session.OnTextChanged(text)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatStats(stats))
	if opts.statsOnly {
		return nil
	}

	lang := sumCfg.DefaultLanguage
	if opts.language != "" {
		if lang, err = summarizer.ParseLanguage(strings.ToLower(opts.language)); err != nil {
			return fmt.Errorf("%w: %q", err, opts.language)
		}
	}
	count := opts.sentences
	if count <= 0 {
		count = cfg.Summarizer.DefaultSentences
	}

	st, err := session.OnSubmit(cmd.Context(), lang, count)
	if err != nil {
		return err
	}
	if st.Status == summarizer.StatusFailed {
		return errors.New(st.Message)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, st.Summary)

	if opts.copy {
		if newCopier(log).Copy(st.Summary) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Copied!")
		} else {
			fmt.Fprintln(cmd.ErrOrStderr(), "Clipboard unavailable")
		}
	}
	return nil
}

func readInput(cmd *cobra.Command, args []string, sample bool) (string, error) {
	switch {
	case sample:
		return summarizer.SampleText, nil
	case len(args) == 1 && args[0] != "-":
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
}

func formatStats(stats textstats.Stats) string {
	return fmt.Sprintf("%d characters • %d words • %d sentences", stats.Characters, stats.Words, stats.Sentences)
}
