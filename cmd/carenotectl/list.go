package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"carenote/backend/internal/dto"
	"carenote/backend/internal/model"
	"carenote/backend/internal/query"
)

func newListCmd() *cobra.Command {
	var (
		req    dto.ReportQueryRequest
		format string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports with optional filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			page, err := a.svc.Report.Query(cmd.Context(), &req)
			if err != nil {
				return err
			}

			if format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(page)
			}
			outputTable(cmd.OutOrStdout(), page, terminalWidth())
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Search, "search", "", "Search name, location and event (case-insensitive)")
	cmd.Flags().StringVar(&req.Date, "date", "", "Exact date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Location, "location", "", "Location substring")
	cmd.Flags().IntVar(&req.Page, "page", 1, "Page number")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

func terminalWidth() int {
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		return n
	}
	return 120
}

// truncate 按显示宽度截断；泰文附加符号不占宽度，按字节或 rune 计数会错位
func truncate(s string, maxWidth int) string {
	s = strings.Join(strings.Fields(s), " ")
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, "…")
}

func outputTable(w io.Writer, page *query.Page, termWidth int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	// 编号、日期、时间列定宽，其余宽度由姓名、地点、事件均分
	const fixed = 4 + 10 + 18
	rest := termWidth - fixed - 6*3
	if rest < 45 {
		rest = 45
	}
	nameW, locW := rest/5, rest/4
	eventW := rest - nameW - locW

	t.AppendHeader(table.Row{"ID", "Date", "Time", "Name", "Location", "Event"})
	for _, r := range page.Reports {
		t.AppendRow(reportRow(r, nameW, locW, eventW))
	}
	t.Render()

	switch {
	case page.TotalReports == 0:
		fmt.Fprintln(w, "No reports yet.")
	case page.Total == 0:
		fmt.Fprintf(w, "No reports match the filters (%d in total).\n", page.TotalReports)
	default:
		fmt.Fprintf(w, "Showing %d-%d of %d (page %d/%d, %d reports in total)\n",
			page.From, page.To, page.Total, page.Page, page.TotalPages, page.TotalReports)
	}
}

func reportRow(r model.Report, nameW, locW, eventW int) table.Row {
	return table.Row{
		r.ID,
		r.Date,
		truncate(r.Time, 18),
		truncate(r.Name, nameW),
		truncate(r.Location, locW),
		truncate(r.Event, eventW),
	}
}
