package output

import (
	"fmt"
	"io"
	"os"

	"github.com/quill-dev/quill/internal/gitctx"
	"github.com/quill-dev/quill/internal/message"
)

// Report is the top-level output structure.
type Report struct {
	Tool     string           `json:"tool"`
	Version  string           `json:"version"`
	Repo     RepoInfo         `json:"repo"`
	Provider string           `json:"provider"`
	Model    string           `json:"model"`
	Message  *message.Message `json:"message"`
	Timing   Timing           `json:"timing"`
}

// RepoInfo contains repository metadata.
type RepoInfo struct {
	Root   string `json:"root"`
	Head   string `json:"head"`
	Branch string `json:"branch"`
}

// Timing contains performance metrics.
type Timing struct {
	GitMs   int64 `json:"gitMs"`
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// BuildReport assembles a Report from the pipeline results.
func BuildReport(version string, repo gitctx.RepoMeta, provider, model string, msg *message.Message, timing Timing) *Report {
	return &Report{
		Tool:     "quill",
		Version:  version,
		Repo:     RepoInfo{Root: repo.Root, Head: repo.Head, Branch: repo.Branch},
		Provider: provider,
		Model:    model,
		Message:  msg,
		Timing:   timing,
	}
}

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}
