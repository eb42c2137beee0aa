package main

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"hometunes/internal/api"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent downloads",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := cmdCtx.apiClient()
			if err != nil {
				return err
			}

			resp, err := client.History(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(resp.Entries) == 0 {
				fmt.Fprintln(out, "No downloads recorded")
				return nil
			}

			fmt.Fprintln(out, renderHistoryTable(resp.Entries))
			fmt.Fprintf(out, "%d of %d downloads shown\n", len(resp.Entries), resp.Total)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show")
	return cmd
}

func renderHistoryTable(entries []api.HistoryEntry) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Video", "Title", "Artist", "Duration", "Quality", "Size", "Downloaded"})
	for _, entry := range entries {
		tw.AppendRow(table.Row{
			entry.ID,
			entry.YoutubeID,
			entry.Title,
			entry.Artist,
			formatSeconds(entry.DurationSeconds),
			entry.Quality,
			formatBytes(entry.FileSize),
			entry.CreatedAt,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "ID", Align: text.AlignRight},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Quality", Align: text.AlignRight},
		{Name: "Size", Align: text.AlignRight},
	})
	return tw.Render()
}

func formatSeconds(seconds int) string {
	d := time.Duration(seconds) * time.Second
	if d >= time.Hour {
		return fmt.Sprintf("%d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	}
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
