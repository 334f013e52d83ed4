package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"inquest/internal/config"
	"inquest/internal/history"
	"inquest/internal/preflight"
	"inquest/internal/report"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

type doctorCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

type doctorReport struct {
	ConfigPath   string                  `json:"config_path,omitempty"`
	ConfigExists bool                    `json:"config_exists"`
	LoadError    string                  `json:"load_error,omitempty"`
	Checks       []doctorCheck           `json:"checks,omitempty"`
	History      *history.DatabaseHealth `json:"history,omitempty"`
	Problems     int                     `json:"problems"`
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var online bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:         "doctor",
		Short:       "Diagnose configuration, credentials, and storage health",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			diagnosis := runDoctor(cmd, ctx, online)
			if jsonOut {
				if err := writeJSON(cmd, diagnosis); err != nil {
					return err
				}
			} else {
				printDoctorReport(cmd.OutOrStdout(), diagnosis)
			}
			if diagnosis.Problems > 0 {
				return fmt.Errorf("%d problem(s) found", diagnosis.Problems)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&online, "online", false, "Also probe the YouTube Data API with the configured key")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the diagnosis as JSON")
	return cmd
}

func runDoctor(cmd *cobra.Command, ctx *commandContext, online bool) doctorReport {
	diagnosis := doctorReport{}

	cfg, path, exists, err := config.Load(ctx.flagPath())
	if err != nil {
		diagnosis.ConfigPath = doctorConfigPath(ctx)
		diagnosis.LoadError = err.Error()
		diagnosis.Problems = 1
		return diagnosis
	}
	diagnosis.ConfigPath = path
	diagnosis.ConfigExists = exists

	if err := cfg.EnsureDirectories(); err != nil {
		diagnosis.Checks = append(diagnosis.Checks, doctorCheck{Name: "Directories", Detail: err.Error()})
		diagnosis.Problems++
	}

	for _, result := range preflight.RunAll(cfg) {
		diagnosis.Checks = append(diagnosis.Checks, doctorCheck{Name: result.Name, Passed: result.Passed, Detail: result.Detail})
		if !result.Passed {
			diagnosis.Problems++
		}
	}

	if online {
		result := preflight.CheckYouTubeAPI(cmd.Context(), cfg.YouTube.BaseURL, cfg.YouTube.APIKey)
		diagnosis.Checks = append(diagnosis.Checks, doctorCheck{Name: result.Name, Passed: result.Passed, Detail: result.Detail})
		if !result.Passed {
			diagnosis.Problems++
		}
	}

	if cfg.History.Enabled {
		store, err := history.Open(cfg)
		if err != nil {
			diagnosis.Checks = append(diagnosis.Checks, doctorCheck{Name: "History database", Detail: err.Error()})
			diagnosis.Problems++
			return diagnosis
		}
		health, healthErr := store.CheckHealth(cmd.Context())
		store.Close()
		if healthErr != nil && health.Error == "" {
			health.Error = healthErr.Error()
		}
		diagnosis.History = &health
		if !historyHealthy(health) {
			diagnosis.Problems++
		}
	}

	return diagnosis
}

func printDoctorReport(out io.Writer, diagnosis doctorReport) {
	colorize := report.ShouldDecorate(out)

	printSection(out, "Configuration", colorize)
	if diagnosis.ConfigPath != "" {
		fmt.Fprintln(out, renderStatusLine("Config path", statusInfo, diagnosis.ConfigPath, colorize))
	}
	switch {
	case diagnosis.LoadError != "":
		fmt.Fprintln(out, renderStatusLine("Config", statusError, diagnosis.LoadError, colorize))
		return
	case diagnosis.ConfigExists:
		fmt.Fprintln(out, renderStatusLine("Config file", statusOK, "loaded", colorize))
	default:
		fmt.Fprintln(out, renderStatusLine("Config file", statusWarn, "not found; defaults and environment keys in use", colorize))
	}

	fmt.Fprintln(out)
	printSection(out, "Readiness", colorize)
	for _, check := range diagnosis.Checks {
		kind := statusError
		if check.Passed {
			kind = statusOK
		}
		fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
	}

	if diagnosis.History != nil {
		fmt.Fprintln(out)
		printSection(out, "History Database", colorize)
		printDatabaseHealth(out, *diagnosis.History)
	}

	if diagnosis.Problems == 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "No problems found")
	}
}

func printDatabaseHealth(out io.Writer, health history.DatabaseHealth) {
	fmt.Fprintf(out, "Database path: %s\n", health.DBPath)
	fmt.Fprintf(out, "Database exists: %s\n", yesNo(health.DatabaseExists))
	fmt.Fprintf(out, "Readable: %s\n", yesNo(health.DatabaseReadable))
	fmt.Fprintf(out, "Schema version: %s\n", health.SchemaVersion)
	fmt.Fprintf(out, "analysis_runs table present: %s\n", yesNo(health.TableExists))
	if len(health.ColumnsPresent) > 0 {
		cols := append([]string(nil), health.ColumnsPresent...)
		sort.Strings(cols)
		fmt.Fprintf(out, "Columns: %s\n", strings.Join(cols, ", "))
	}
	if len(health.MissingColumns) > 0 {
		missing := append([]string(nil), health.MissingColumns...)
		sort.Strings(missing)
		fmt.Fprintf(out, "Missing columns: %s\n", strings.Join(missing, ", "))
	} else {
		fmt.Fprintln(out, "Missing columns: none")
	}
	fmt.Fprintf(out, "Integrity check: %s\n", yesNo(health.IntegrityCheck))
	fmt.Fprintf(out, "Total runs: %d\n", health.TotalRuns)
	if health.Error != "" {
		fmt.Fprintf(out, "Error: %s\n", health.Error)
	}
}

func historyHealthy(health history.DatabaseHealth) bool {
	return health.DatabaseExists &&
		health.DatabaseReadable &&
		health.TableExists &&
		len(health.MissingColumns) == 0 &&
		health.IntegrityCheck &&
		health.Error == ""
}

func doctorConfigPath(ctx *commandContext) string {
	if target := strings.TrimSpace(ctx.flagPath()); target != "" {
		if expanded, err := config.ExpandPath(target); err == nil {
			return expanded
		}
		return target
	}
	if defaultPath, err := config.DefaultConfigPath(); err == nil {
		return defaultPath
	}
	return ""
}

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := fmt.Sprintf("[%s]", statusKindLabel(kind))
	if message != "" {
		statusText += " " + message
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func printSection(out io.Writer, title string, colorize bool) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	fmt.Fprintln(out, line)
	fmt.Fprintln(out, rule)
}
