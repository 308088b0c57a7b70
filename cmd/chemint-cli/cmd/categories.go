package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"chemint/internal/domain"
)

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"cat"},
	Short:   "List the interaction categories and their display settings",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printCategories(cmd)
	},
}

var categoryToggleCmd = &cobra.Command{
	Use:   "toggle <category>",
	Short: "Show or hide the lines of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.Controller.ToggleCategoryVisibility(cmd.Context(), args[0]); err != nil {
			return err
		}
		return printCategories(cmd)
	},
}

var categoryColorCmd = &cobra.Command{
	Use:   "color <category> <color>",
	Short: "Change the line color of a category",
	Long: `Change the line color of a category. The color must be one of
the palette names listed by "chemint-cli categories colors".`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.Controller.SetCategoryColor(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		return printCategories(cmd)
	},
}

var categoryAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Show every category, or hide every category when all are shown",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := rt.Controller.ToggleAll(cmd.Context()); err != nil {
			return err
		}
		return printCategories(cmd)
	},
}

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the palette colors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, c := range domain.Palette {
			fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.RGB.Hex())
		}
		return tw.Flush()
	},
}

func printCategories(cmd *cobra.Command) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tVISIBLE\tCOLOR")
	for _, c := range rt.Controller.Categories() {
		visible := "no"
		if c.Visible {
			visible = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Name, c.Label, visible, c.Color)
	}
	return tw.Flush()
}

func init() {
	categoriesCmd.AddCommand(categoryToggleCmd)
	categoriesCmd.AddCommand(categoryColorCmd)
	categoriesCmd.AddCommand(categoryAllCmd)
	categoriesCmd.AddCommand(colorsCmd)
	rootCmd.AddCommand(categoriesCmd)
}
