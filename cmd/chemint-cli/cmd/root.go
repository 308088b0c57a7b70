package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"chemint/internal/adapters/headless"
	"chemint/internal/application"
	"chemint/internal/bootstrap"
	"chemint/internal/config"
	"chemint/internal/logging"
	"chemint/internal/ports"
)

var (
	configPath   string
	workspaceDir string
	extraFiles   []string
	useSample    bool
	detectorName string
	cutoff       float64
	logLevel     string

	cfg       *config.Config
	logger    logging.Logger
	presenter *headless.Presenter
	rt        *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "chemint-cli",
	Short: "Inspect protein-ligand interactions from the command line",
	Long: `chemint-cli finds ligands in PDB structures and detects the
non-covalent interactions between a ligand and a complex.

Structures come from the workspace directory (see --workspace), from
files passed with --file and, with --sample, from the bundled sample.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		if err := setup(cmd); err != nil {
			return err
		}
		if cmd.Annotations[annotationStandalone] != "" {
			return nil
		}

		var err error
		rt, err = bootstrap.New(bootstrap.Options{
			Config:    cfg,
			Presenter: presenter,
			Logger:    logger,
			Files:     extraFiles,
			Sample:    useSample,
		})
		if err != nil {
			return err
		}
		return rt.Controller.Load(cmd.Context())
	},
}

// annotationStandalone marks commands that build their own runtime
const annotationStandalone = "standalone"

// setup loads the configuration, applies flag overrides and creates the logger
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("workspace") {
		cfg.Workspace = config.ExpandHome(workspaceDir)
	}
	if flags.Changed("detector") {
		cfg.Detector = detectorName
	}
	if flags.Changed("cutoff") {
		cfg.Cutoff = cutoff
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err = logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		return err
	}
	logging.SetDefault(logger)
	// Notifications are printed, not logged
	presenter = headless.NewPresenter(nil)
	return nil
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	printNotifications(os.Stderr)
	if rt != nil {
		if cerr := rt.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", application.UserMessage(err))
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default $XDG_CONFIG_HOME/chemint/config.yaml)")
	flags.StringVarP(&workspaceDir, "workspace", "w", ".", "directory of PDB files")
	flags.StringSliceVarP(&extraFiles, "file", "f", nil, "additional PDB file (repeatable)")
	flags.BoolVar(&useSample, "sample", false, "add the bundled sample complex")
	flags.StringVar(&detectorName, "detector", config.DetectorGeometric, "interaction detector: geometric or arpeggio")
	flags.Float64Var(&cutoff, "cutoff", 5.0, "geometric detector distance cutoff in Angstrom")
	flags.StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// printNotifications writes pending notifications, one per line
func printNotifications(w io.Writer) {
	if presenter == nil {
		return
	}
	for _, n := range presenter.Drain() {
		if n.Severity == ports.SeverityMessage {
			fmt.Fprintln(w, n.Message)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", n.Severity, n.Message)
	}
}
