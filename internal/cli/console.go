package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newConsoleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "console <command> [args...]",
		Short: "Run a server console command",
		Long: `Run one of the server console commands, exactly as it would be typed
into the game server console:

  css_set_roster <steamid64> <t|ct>
  css_force_team <steamid64> <t|ct>
  css_clear_rosters
  css_apply_rosters
  css_list_rosters`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"command": strings.Join(args, " ")}
			var result ConsoleResult

			if err := client.Post("/api/v1/console", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
