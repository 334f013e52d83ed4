package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inquest/internal/analysis"
	"inquest/internal/report"
)

const (
	formatRich     = "rich"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func normalizeFormat(value string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", formatRich:
		return formatRich, nil
	case formatJSON:
		return formatJSON, nil
	case formatMarkdown, "md":
		return formatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected rich, json, or markdown)", value)
	}
}

// displayResult renders a completed analysis in the requested format,
// writing to outputPath when one is given. The rich format always renders to
// the terminal and saves a JSON copy alongside it when outputPath is set.
func displayResult(cmd *cobra.Command, result *analysis.Result, format, outputPath string) error {
	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		if outputPath == "" {
			return report.EncodeJSON(out, result)
		}
		if err := writeResultJSON(outputPath, result); err != nil {
			return err
		}
		fmt.Fprintf(out, "Results saved to: %s\n", outputPath)
	case formatMarkdown:
		content := report.Markdown(result, time.Now())
		if outputPath == "" {
			fmt.Fprint(out, content)
			return nil
		}
		if err := writeTextFile(outputPath, content); err != nil {
			return err
		}
		fmt.Fprintf(out, "Markdown report saved to: %s\n", outputPath)
	default:
		report.RenderConsole(out, result, report.ShouldDecorate(out))
		if outputPath != "" {
			if err := writeResultJSON(outputPath, result); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nResults also saved to: %s\n", outputPath)
		}
	}
	return nil
}

func writeResultJSON(path string, result *analysis.Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	if err := report.EncodeJSON(file, result); err != nil {
		file.Close()
		return fmt.Errorf("encode results: %w", err)
	}
	return file.Close()
}

func writeTextFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

func truncateCell(value string, max int) string {
	value = strings.TrimSpace(value)
	if max <= 0 || len(value) <= max {
		return value
	}
	if max <= 1 {
		return value[:max]
	}
	return value[:max-1] + "…"
}
