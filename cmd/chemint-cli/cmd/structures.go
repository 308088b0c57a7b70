package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var structuresCmd = &cobra.Command{
	Use:   "structures",
	Short: "List the structures that can be picked as the complex",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		items := rt.Controller.Menu().Structures.Items
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No structures found.")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME")
		for _, b := range items {
			fmt.Fprintf(tw, "%s\t%s\n", b.ID, b.Text)
		}
		return tw.Flush()
	},
}

var ligandsCmd = &cobra.Command{
	Use:   "ligands <structure>",
	Short: "List the ligands available for a complex",
	Long: `Select the complex and list the ligands it offers: the other
structures first, then its own hetero residues.

Examples:
  chemint-cli ligands 1tyl
  chemint-cli ligands structure:0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := selectStructure(cmd.Context(), args[0]); err != nil {
			return err
		}

		items := rt.Controller.Menu().Ligands.Items
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No ligands found.")
			return nil
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tLABEL")
		for _, b := range items {
			fmt.Fprintf(tw, "%s\t%s\n", b.ID, b.Text)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(structuresCmd)
	rootCmd.AddCommand(ligandsCmd)
}
