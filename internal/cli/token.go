package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/forceteam/internal/dependencies/random"
	"github.com/mcoot/forceteam/internal/services/auth"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Admin token helpers",
	}

	cmd.AddCommand(newTokenGenerateCmd())
	cmd.AddCommand(newTokenHashCmd())

	return cmd
}

func newTokenGenerateCmd() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate an admin token and its ADMIN_TOKEN_HASH value",
		RunE: func(cmd *cobra.Command, args []string) error {
			token := auth.GenerateToken(random.New())
			hash, err := auth.HashToken(token)
			if err != nil {
				return err
			}

			if save {
				if err := cfg.SaveToken(token); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
			}

			NewOutput(cfg.Output).Print(TokenResult{Token: token, Hash: hash})
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "Save the token to the token file")

	return cmd
}

func newTokenHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <token>",
		Short: "Hash an existing token for ADMIN_TOKEN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashToken(args[0])
			if err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(TokenResult{Hash: hash})
			return nil
		},
	}
}
