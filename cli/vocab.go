package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/uyouii/ocean-profiles/vocab"
)

func newVocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab [name...]",
		Short: "Show vocabulary identifiers of variable names",
		Long: `Print the vocabulary identifier of each name, and the reference name an
exchange name maps to. Without names the whole vocabulary is listed.

Examples:
  profilegrid vocab
  profilegrid vocab CTDSAL OXYGEN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := vocab.Default()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				args = dict.Names()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tIDENTIFIER\tREFERENCE")
			for _, name := range args {
				dt, ok := dict.Get(name)
				if !ok {
					w.Flush()
					return fmt.Errorf("unknown variable %q", name)
				}
				parent := "-"
				if dt.Parent != nil {
					parent = dt.Parent.Name
				} else if dt.IsReference {
					parent = dt.Name
				}
				fmt.Fprintf(w, "%v\t%v\t%v\n", dt.Name, dt.Identifier, parent)
			}
			return w.Flush()
		},
	}
}
