package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster management commands",
	}

	cmd.AddCommand(newRosterListCmd())
	cmd.AddCommand(newRosterSetCmd())
	cmd.AddCommand(newRosterForceCmd())
	cmd.AddCommand(newRosterClearCmd())
	cmd.AddCommand(newRosterApplyCmd())

	return cmd
}

func newRosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List roster entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RosterList
			if err := client.Get("/api/v1/rosters", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRosterSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <steamid64> <t|ct>",
		Short: "Pin a player to a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"team": args[1]}
			var result RosterEntry

			if err := client.Put("/api/v1/rosters/"+url.PathEscape(args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRosterForceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force <steamid64> <t|ct>",
		Short: "Pin a player and move them now, even from spectator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"team": args[1]}
			var result RosterEntry

			if err := client.Post("/api/v1/rosters/"+url.PathEscape(args[0])+"/force", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRosterClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every roster entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ClearResult
			if err := client.Delete("/api/v1/rosters", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRosterApplyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Move every connected rostered player onto their team",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SweepResult
			if err := client.Post("/api/v1/rosters/apply", nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
