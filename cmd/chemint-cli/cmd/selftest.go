package cmd

import (
	"github.com/spf13/cobra"

	"chemint/internal/bootstrap"
)

var (
	selftestExpect int
	selftestLigand int
)

var selftestCmd = &cobra.Command{
	Use:   "selftest [file.pdb]",
	Short: "Run a full calculation and check the number of lines",
	Long: `Load a single structure, select its first residue ligand (see
--ligand), calculate with the default category settings and compare the
number of drawn lines with --expect.

Without a file the bundled sample complex is used.`,
	Args:        cobra.MaximumNArgs(1),
	Annotations: map[string]string{annotationStandalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error
		rt, err = bootstrap.New(bootstrap.Options{
			Config:    cfg,
			Presenter: presenter,
			Logger:    logger,
			Files:     args,
			Sample:    len(args) == 0,
			NoScan:    true,
			Ephemeral: true,
		})
		if err != nil {
			return err
		}

		_, err = rt.SelfTest(cmd.Context(), presenter, selftestLigand, selftestExpect)
		return err
	},
}

func init() {
	selftestCmd.Flags().IntVar(&selftestExpect, "expect", bootstrap.DefaultSelfTestLines, "expected number of lines")
	selftestCmd.Flags().IntVar(&selftestLigand, "ligand", 0, "index of the residue ligand to use")
	rootCmd.AddCommand(selftestCmd)
}
