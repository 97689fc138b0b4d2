package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"carenote/backend/internal/dto"
)

func newExportCmd() *cobra.Command {
	var (
		req dto.ReportQueryRequest
		out string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export filtered reports to an .xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			buf, filename, err := a.svc.Export.ExportReports(cmd.Context(), &req)
			if err != nil {
				return err
			}
			if out == "" {
				out = filename
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Search, "search", "", "Search name, location and event")
	cmd.Flags().StringVar(&req.Date, "date", "", "Exact date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.Location, "location", "", "Location substring")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default รายงาน_<today>.xlsx)")

	return cmd
}
