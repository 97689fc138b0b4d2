package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"carenote/backend/internal/dto"
)

func newOptionsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show the shift times and locations offered by the report form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if format == "json" {
				encoder := json.NewEncoder(w)
				encoder.SetIndent("", "  ")
				return encoder.Encode(dto.OptionsResponse{Times: dto.TimeOptions, Locations: dto.LocationOptions})
			}

			fmt.Fprintln(w, "Times:")
			for _, t := range dto.TimeOptions {
				fmt.Fprintf(w, "  %s\n", t)
			}
			fmt.Fprintln(w, "Locations:")
			for _, l := range dto.LocationOptions {
				fmt.Fprintf(w, "  %s\n", l)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")

	return cmd
}
