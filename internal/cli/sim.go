package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newSimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Drive the simulated game server",
		Long: `Drive the simulated game server. Only available when the server runs
with HOST_MODE=sim.`,
	}

	cmd.AddCommand(newSimPlayersCmd())
	cmd.AddCommand(newSimConnectCmd())
	cmd.AddCommand(newSimDisconnectCmd())
	cmd.AddCommand(newSimJoinCmd())
	cmd.AddCommand(newSimRoundStartCmd())
	cmd.AddCommand(newSimPhaseCmd())

	return cmd
}

func newSimPlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "players",
		Short: "List connected players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result SimPlayers
			if err := client.Get("/api/v1/sim/players", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSimConnectCmd() *cobra.Command {
	var (
		team     string
		alive    bool
		bot      bool
		observer bool
	)

	cmd := &cobra.Command{
		Use:   "connect <steamid64>",
		Short: "Connect a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"player_id": args[0],
				"team":      team,
				"alive":     alive,
				"bot":       bot,
				"observer":  observer,
			}
			var result SimPlayer

			if err := client.Post("/api/v1/sim/players", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "none", "Initial team: none, spec, t, ct")
	cmd.Flags().BoolVar(&alive, "alive", true, "Connect alive")
	cmd.Flags().BoolVar(&bot, "bot", false, "Connect as a bot")
	cmd.Flags().BoolVar(&observer, "observer", false, "Connect as an HLTV observer")

	return cmd
}

func newSimDisconnectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <steamid64>",
		Short: "Disconnect a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/sim/players/"+url.PathEscape(args[0]), nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Disconnected " + args[0])
			return nil
		},
	}
}

func newSimJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <steamid64> <token>",
		Short: "Pick a team from the team menu (token: 0-3 or none, spec, t, ct)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"token": args[1]}
			var result JoinResult

			if err := client.Post("/api/v1/sim/players/"+url.PathEscape(args[0])+"/join", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newSimRoundStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round-start",
		Short: "Start a new round",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/sim/round-start", nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Round started")
			return nil
		},
	}
}

func newSimPhaseCmd() *cobra.Command {
	var phase PhaseResult

	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Set the game phase flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PhaseResult
			if err := client.Put("/api/v1/sim/phase", phase, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&phase.Warmup, "warmup", false, "Warmup active")
	cmd.Flags().BoolVar(&phase.FreezeTime, "freeze-time", false, "Freeze time active")
	cmd.Flags().BoolVar(&phase.Paused, "paused", false, "Match paused")

	return cmd
}
