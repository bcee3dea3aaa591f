package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newBoardsCommand(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "boards",
		Short: "Manage stored boards",
	}

	cmd.AddCommand(newBoardsListCommand(g))
	cmd.AddCommand(newBoardsCreateCommand(g))
	cmd.AddCommand(newBoardsExportCommand(g))
	cmd.AddCommand(newBoardsImportCommand(g))

	return cmd
}

func newBoardsListCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List boards, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, err := g.boardService(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			boards, err := svc.List(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tUPDATED")
			for _, b := range boards {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, b.Name, b.UpdatedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}
}

func newBoardsCreateCommand(g *globals) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a board, optionally seeded from a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, err := g.boardService(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			b, err := svc.Create(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if from != "" {
				env, err := readEnvelope(cmd, from)
				if err != nil {
					return err
				}
				if _, err := svc.ReplaceDocument(cmd.Context(), b.ID, env); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "seed document file, or - for stdin")

	return cmd
}

func newBoardsExportCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "export <board-id>",
		Short: "Print the latest document of a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, err := g.boardService(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			snap, err := svc.LatestSnapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeEnvelope(cmd.OutOrStdout(), &snap.Document)
		},
	}
}

func newBoardsImportCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "import <board-id> <file|->",
		Short: "Store a document as the next version of a board",
		Long: `Store a document as the next version of a board.

Importing while the server has the board open is not detected here; the
live session will overwrite the import on its next save.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, st, err := g.boardService(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			env, err := readEnvelope(cmd, args[1])
			if err != nil {
				return err
			}
			version, err := svc.ReplaceDocument(cmd.Context(), args[0], env)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", version)
			return nil
		},
	}
}
