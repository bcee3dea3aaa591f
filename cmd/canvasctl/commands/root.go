// Package commands implements the canvasctl command tree.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inamate/canvas/internal/board"
	"github.com/inamate/canvas/internal/config"
	"github.com/inamate/canvas/internal/store"
)

type globals struct {
	databaseURL string
	jwtSecret   string
}

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:   "canvasctl",
		Short: "Inspect canvas documents and manage stored boards",
		Long: `canvasctl works with canvas board documents.

Document commands (sample, inspect, validate) operate on JSON files.
Board commands talk to the same store the server uses, selected by
--db or DATABASE_URL.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("db") {
				g.databaseURL = cfg.DatabaseURL
			}
			if !cmd.Flags().Changed("secret") {
				g.jwtSecret = cfg.JWTSecret
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.databaseURL, "db", "", "store URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&g.jwtSecret, "secret", "", "token signing secret (defaults to JWT_SECRET)")

	rootCmd.AddCommand(newSampleCommand())
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newTokenCommand(g))
	rootCmd.AddCommand(newBoardsCommand(g))

	return rootCmd
}

// boardService opens the configured store. The caller closes it.
func (g *globals) boardService(ctx context.Context) (*board.Service, store.Store, error) {
	st, err := store.Open(ctx, g.databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return board.NewService(st, nil), st, nil
}
