package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chemint/internal/adapters/snapshot"
)

var (
	snapshotOut    string
	snapshotSize   int
	snapshotLabels bool
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <structure> <ligand>",
	Short: "Render the interactions of a ligand to a PNG image",
	Long: `Calculate the interactions like calc does, then draw the
visible lines in their category colors.

Example:
  chemint-cli --sample snapshot 1str STR -o 1str.png`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		structure, err := selectStructure(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		ligand, err := selectLigand(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		if err := rt.Controller.Submit(cmd.Context()); err != nil {
			return err
		}

		cfg := snapshot.DefaultConfig()
		if snapshotSize > 0 {
			cfg.Width, cfg.Height = snapshotSize, snapshotSize
		}
		cfg.Labels = snapshotLabels

		scene := snapshot.Scene{
			Title: structure.Text + " / " + ligand.Text,
			Lines: rt.Controller.Lines(),
		}
		if err := snapshot.RenderFile(snapshotOut, scene, cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", len(scene.Lines), snapshotOut)
		return nil
	},
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "interactions.png", "output PNG file")
	snapshotCmd.Flags().IntVar(&snapshotSize, "size", 0, "image width and height in pixels (default 800)")
	snapshotCmd.Flags().BoolVar(&snapshotLabels, "labels", true, "label partner residues")
	rootCmd.AddCommand(snapshotCmd)
}
