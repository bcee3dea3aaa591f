package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/inamate/canvas/internal/document"
	"github.com/inamate/canvas/internal/engine"
)

// readEnvelope decodes and validates a document from path, or stdin for "-".
func readEnvelope(cmd *cobra.Command, path string) (*document.Envelope, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return document.Decode(r)
}

func writeEnvelope(w io.Writer, env *document.Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func newSampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print the sample document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeEnvelope(cmd.OutOrStdout(), document.NewSampleEnvelope())
		},
	}
}

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file|->",
		Short: "Check a document's structure and frame topology",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := readEnvelope(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d elements\n", len(env.Elements))
			return nil
		},
	}
}

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <file|->",
		Short:   "List a document's elements with their world positions",
		Example: "  canvasctl sample | canvasctl inspect -",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := readEnvelope(cmd, args[0])
			if err != nil {
				return err
			}
			return inspect(cmd.OutOrStdout(), env)
		},
	}
}

// inspect prints the element tree in paint order, children indented
// under their frame.
func inspect(w io.Writer, env *document.Envelope) error {
	eng := engine.New()
	eng.ImportData(*env)

	vp := env.Viewport
	fmt.Fprintf(w, "viewport: zoom %.2f offset (%.0f, %.0f)\n", vp.Zoom, vp.X, vp.Y)

	byParent := make(map[string][]document.Element)
	for _, el := range eng.Elements() {
		byParent[el.ParentID] = append(byParent[el.ParentID], el)
	}
	for _, group := range byParent {
		sort.SliceStable(group, func(i, j int) bool { return group[i].ZIndex < group[j].ZIndex })
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tZ\tWORLD\tSIZE")

	var walk func(parentID string, depth int)
	walk = func(parentID string, depth int) {
		for _, el := range byParent[parentID] {
			pos, _ := eng.ElementWorldPos(el.ID)
			fmt.Fprintf(tw, "%s%s\t%s\t%d\t(%.0f, %.0f)\t%.0fx%.0f\n",
				strings.Repeat("  ", depth), el.ID, el.Type, el.ZIndex, pos.X, pos.Y, el.Width, el.Height)
			walk(el.ID, depth+1)
		}
	}
	walk("", 0)

	return tw.Flush()
}
