package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"chemint/internal/adapters/editor"
	"chemint/internal/adapters/tui"
	"chemint/internal/bootstrap"
	"chemint/internal/config"
	"chemint/internal/logging"
)

func main() {
	configFlag := flag.String("config", "", "path to the config file")
	workspaceFlag := flag.String("workspace", "", "directory of PDB files (overrides the config)")
	sampleFlag := flag.Bool("sample", false, "add the bundled sample complex")
	flag.Parse()

	if err := run(*configFlag, *workspaceFlag, *sampleFlag, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, workspaceDir string, sample bool, files []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if workspaceDir != "" {
		cfg.Workspace = config.ExpandHome(workspaceDir)
	}

	// The terminal belongs to the UI
	output := cfg.Log.Output
	if output == "stderr" || output == "stdout" {
		output = filepath.Join(os.TempDir(), "chemint.log")
	}
	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: "json", Output: output})
	if err != nil {
		return err
	}
	logging.SetDefault(log)
	defer log.Sync()

	presenter := tui.NewPresenter()
	defer presenter.Close()

	rt, err := bootstrap.New(bootstrap.Options{
		Config:    cfg,
		Presenter: presenter,
		Logger:    log,
		Files:     files,
		Sample:    sample,
	})
	if err != nil {
		return err
	}
	defer rt.Close()
	rt.Scene.OnChange(presenter.ShowLines)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := rt.Controller.WatchStructures(ctx); err != nil {
			log.Warn("structure watch stopped", logging.Err(err))
		}
	}()

	app := tui.NewApp(ctx, rt.Controller, editor.NewOpener(), rt.Workspace.Path)
	p := tea.NewProgram(app, tea.WithAltScreen())
	presenter.Attach(p)

	_, err = p.Run()
	return err
}
