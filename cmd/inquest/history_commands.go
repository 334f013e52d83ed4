package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"inquest/internal/history"
	"inquest/internal/report"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Browse archived analysis runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryRemoveCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func openHistory(ctx *commandContext) (*history.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if !cfg.History.Enabled {
		return nil, errors.New("history is disabled; set history.enabled = true in the configuration")
	}
	return history.Open(cfg)
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses, err := parseHistoryStatus(statusFlag)
			if err != nil {
				return err
			}

			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			records, err := store.List(cmd.Context(), statuses...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "History is empty")
				return nil
			}

			rows := make([][]string, 0, len(records))
			for _, record := range records {
				rows = append(rows, []string{
					record.RunID,
					record.VideoID,
					truncateCell(record.Title, 40),
					string(record.Status),
					strconv.Itoa(record.QuestionCount),
					record.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(out, report.RenderTable(
				[]string{"Run ID", "Video", "Title", "Status", "Questions", "Created"},
				rows,
				[]report.ColumnAlignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignLeft},
			))

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d completed, %d failed\n", stats[history.StatusCompleted], stats[history.StatusFailed])
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status: completed or failed")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Re-render an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := strings.TrimSpace(args[0])
			format, err := normalizeFormat(formatFlag)
			if err != nil {
				return err
			}

			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			record, err := store.GetByRunID(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("no run found with id %s", runID)
			}

			if record.Status == history.StatusFailed {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run %s failed at %s\n", record.RunID, record.CreatedAt.Local().Format("2006-01-02 15:04"))
				if record.VideoURL != "" {
					fmt.Fprintf(out, "URL: %s\n", record.VideoURL)
				}
				if record.ErrorMessage != "" {
					fmt.Fprintf(out, "Error: %s\n", record.ErrorMessage)
				}
				return nil
			}

			result, err := record.Result()
			if err != nil {
				return err
			}
			if result == nil {
				return fmt.Errorf("run %s has no stored result", runID)
			}
			return displayResult(cmd, result, format, "")
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "rich", "Output format: rich, json, or markdown")
	return cmd
}

func newHistoryRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <run-id>",
		Short: "Remove one archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := strings.TrimSpace(args[0])

			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Remove(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if !removed {
				return fmt.Errorf("no run found with id %s", runID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed run %s from history\n", runID)
			return nil
		},
	}
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all archived runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d runs from history\n", count)
			return nil
		},
	}
}

func parseHistoryStatus(value string) ([]history.Status, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return nil, nil
	case string(history.StatusCompleted):
		return []history.Status{history.StatusCompleted}, nil
	case string(history.StatusFailed):
		return []history.Status{history.StatusFailed}, nil
	default:
		return nil, fmt.Errorf("unknown status %q (expected completed or failed)", value)
	}
}
