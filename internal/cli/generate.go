package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/quill-dev/quill/internal/cache"
	"github.com/quill-dev/quill/internal/config"
	"github.com/quill-dev/quill/internal/gitctx"
	"github.com/quill-dev/quill/internal/message"
	"github.com/quill-dev/quill/internal/output"
	"github.com/quill-dev/quill/internal/providers"
	"github.com/spf13/cobra"
)

// Shared generate flags
var (
	flagProvider      string
	flagModel         string
	flagFormat        string
	flagOut           string
	flagPaths         string
	flagExclude       string
	flagContextLines  int
	flagMaxPatchBytes int
	flagStyle         string
	flagBody          bool
	flagCommit        bool
	flagDryRun        bool
	flagNoRedact      bool
	flagNoCache       bool
	flagVerbose       bool
)

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagPaths, "paths", "", "Include file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().IntVar(&flagContextLines, "context-lines", 0, "Number of context lines in diff")
	cmd.Flags().IntVar(&flagMaxPatchBytes, "max-patch-bytes", 0, "Maximum per-file patch size sent to the model")
	cmd.Flags().StringVar(&flagStyle, "style", "", "Style pack file path (default: .quill.yaml at repo root)")
	cmd.Flags().BoolVar(&flagBody, "body", false, "Also draft an extended commit body")
	cmd.Flags().BoolVar(&flagCommit, "commit", false, "Run git commit with the drafted message (opens editor)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the message but never commit")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Bypass the response cache")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Print progress to stderr")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagMaxPatchBytes > 0 {
		m["maxPatchBytes"] = fmt.Sprintf("%d", flagMaxPatchBytes)
	}
	if flagContextLines > 0 {
		m["contextLines"] = fmt.Sprintf("%d", flagContextLines)
	}
	if flagStyle != "" {
		m["styleFile"] = flagStyle
	}
	if flagBody {
		m["body"] = "true"
	}
	return m
}

func buildDiffOpts(cfg config.Config) gitctx.DiffOptions {
	opts := gitctx.DiffOptions{
		ContextLines:     cfg.ContextLines,
		Include:          cfg.Include,
		Exclude:          cfg.Exclude,
		IgnoreWhitespace: cfg.IgnoreWhitespace,
	}
	if flagPaths != "" {
		opts.Include = splitComma(flagPaths)
	}
	if flagExclude != "" {
		opts.Exclude = append(opts.Exclude, splitComma(flagExclude)...)
	}
	return opts
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Draft a commit message from the staged diff",
	Long:  "Generate summarizes each staged file with the configured LLM provider, then drafts a Conventional Commits title over the summaries.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		runGenerate(cfg)
		return nil
	},
}

func runGenerate(cfg config.Config) {
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}

	startTime := time.Now()

	gitStart := time.Now()
	changes, err := gitctx.Staged(buildDiffOpts(cfg))
	gitMs := time.Since(gitStart).Milliseconds()
	if err != nil {
		if errors.Is(err, gitctx.ErrNoStagedChanges) {
			fmt.Fprintln(os.Stderr, "quill: nothing staged, run git add first")
			exitCode = ExitNoChanges
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	msg, llmMs, err := draftMessage(context.Background(), changes, &cfg)
	if err != nil {
		if config.IsMissingKey(err) || providers.IsAuthError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitConfigError
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	report := output.BuildReport(version, changes.Repo, cfg.Provider, cfg.Model, msg, output.Timing{
		GitMs:   gitMs,
		LLMMs:   llmMs,
		TotalMs: time.Since(startTime).Milliseconds(),
	})

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if flagCommit && !flagDryRun {
		if err := gitctx.Commit(msg.Title, msg.Description()); err != nil {
			fmt.Fprintf(os.Stderr, "Error running git commit: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
	}
}

// draftMessage runs the generation pipeline for a change set. Whitespace-only
// change sets get a fixed message without touching the provider.
func draftMessage(ctx context.Context, changes gitctx.ChangeSet, cfg *config.Config) (*message.Message, int64, error) {
	if changes.WhitespaceOnly {
		return &message.Message{Title: message.WhitespaceOnlyTitle}, 0, nil
	}

	if cfg.StyleFile == "" {
		cfg.StyleFile = message.FindStyleFile(changes.Repo.Root)
	}

	creds, err := config.LoadCredentials()
	if err != nil {
		return nil, 0, err
	}
	completer, err := providers.New(cfg.Provider, cfg.Model, creds)
	if err != nil {
		return nil, 0, err
	}

	store, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "quill: cache unavailable: %v\n", err)
		store = nil
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "quill: summarizing %d file(s) with %s/%s\n",
			len(changes.Files), cfg.Provider, cfg.Model)
	}

	llmStart := time.Now()
	msg, err := message.Generate(ctx, changes, *cfg, completer, store)
	if err != nil {
		return nil, 0, err
	}
	return msg, time.Since(llmStart).Milliseconds(), nil
}

func init() {
	addGenerateFlags(generateCmd)
}
