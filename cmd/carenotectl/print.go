package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"carenote/backend/internal/printview"
)

func newPrintCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "print <id>",
		Short: "Render a report as a printable HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid report id: %s", args[0])
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			doc, err := a.svc.Print.Document(cmd.Context(), id)
			if err != nil {
				return err
			}

			if out == "" {
				return printview.Render(cmd.OutOrStdout(), doc)
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			if err := printview.Render(f, doc); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default stdout)")

	return cmd
}
