package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newReportsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Show recent enforcement reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ReportList
			if err := client.Get(fmt.Sprintf("/api/v1/reports?limit=%d", limit), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "Maximum number of reports")

	return cmd
}
