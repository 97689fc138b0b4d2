package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var embedImage bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one report as JSON",
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

			detail, err := a.svc.Report.Get(cmd.Context(), id, embedImage)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(detail)
		},
	}

	cmd.Flags().BoolVar(&embedImage, "embed-image", false, "Resolve the image into a data URI")

	return cmd
}
