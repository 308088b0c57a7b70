package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chemint/internal/domain"
)

var calcCmd = &cobra.Command{
	Use:   "calc <structure> <ligand>",
	Short: "Detect the interactions between a complex and a ligand",
	Long: `Select the complex and the ligand, run the detector and print
the lines of every visible category.

Structures and ligands are given by button id or by label.

Examples:
  chemint-cli --sample calc 1str STR
  chemint-cli calc 1tyl ligand:0:A/301/ABC`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := calculate(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		return printLines(cmd, rt.Controller.Lines())
	},
}

func printLines(cmd *cobra.Command, lines []domain.Line) error {
	out := cmd.OutOrStdout()
	if len(lines) == 0 {
		fmt.Fprintln(out, "No interactions in the visible categories.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tLIGAND ATOM\tPARTNER ATOM\tDISTANCE")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\n", l.Category, l.From.Label(), l.To.Label(), l.Distance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	counts := domain.CountByCategory(lines)
	var tally []string
	for _, c := range domain.DefaultCategories {
		if n := counts[c.Name]; n > 0 {
			tally = append(tally, fmt.Sprintf("%s %d", c.Name, n))
		}
	}
	fmt.Fprintf(out, "\n%d lines (%s)\n", len(lines), strings.Join(tally, ", "))
	return nil
}

func init() {
	rootCmd.AddCommand(calcCmd)
}
