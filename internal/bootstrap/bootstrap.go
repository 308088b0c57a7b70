// Package bootstrap wires configuration, adapters and the menu controller
// for the chemint executables
package bootstrap

import (
	"errors"
	"fmt"

	"chemint/internal/adapters/arpeggio"
	"chemint/internal/adapters/detect"
	"chemint/internal/adapters/pdbio"
	"chemint/internal/adapters/sqlite"
	"chemint/internal/adapters/workspace"
	"chemint/internal/application/menu"
	"chemint/internal/config"
	"chemint/internal/logging"
	"chemint/internal/ports"
)

var ErrDetectorUnavailable = errors.New("interaction detector unavailable")

// Options selects what the runtime serves
type Options struct {
	Config    *config.Config
	Presenter ports.Presenter
	Logger    logging.Logger // defaults to a no-op logger
	Files     []string       // extra PDB files outside the workspace
	Sample    bool           // add the bundled sample complex
	NoScan    bool           // serve only Files and the sample
	Ephemeral bool           // do not persist category settings
}

// Runtime holds the wired components
type Runtime struct {
	Controller *menu.Controller
	Workspace  *workspace.Repository
	Scene      *workspace.Scene
	Codec      *pdbio.Codec
	Log        logging.Logger

	store *sqlite.Store
}

// New builds a runtime. The caller owns it and must Close it.
func New(opts Options) (*Runtime, error) {
	if opts.Config == nil {
		return nil, errors.New("bootstrap: config is required")
	}
	if opts.Presenter == nil {
		return nil, errors.New("bootstrap: presenter is required")
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}

	codec := pdbio.NewCodec()

	calc, err := NewCalculator(opts.Config, codec, log)
	if err != nil {
		return nil, err
	}

	dir := opts.Config.Workspace
	if opts.NoScan {
		dir = ""
	}
	repoOpts := []workspace.Option{workspace.WithLogger(log.Named("workspace"))}
	if opts.Sample {
		repoOpts = append(repoOpts, workspace.WithSample())
	}
	repo := workspace.NewRepository(dir, codec, repoOpts...)
	for _, f := range opts.Files {
		if _, err := repo.Add(f); err != nil {
			return nil, err
		}
	}

	rt := &Runtime{
		Workspace: repo,
		Scene:     workspace.NewScene(),
		Codec:     codec,
		Log:       log,
	}

	var settings ports.SettingsStore
	if !opts.Ephemeral && opts.Config.SettingsDB != "" {
		store, err := sqlite.Open(opts.Config.SettingsDB)
		if err != nil {
			// Settings are a convenience; run with defaults
			log.Warn("settings store unavailable", logging.String("path", opts.Config.SettingsDB), logging.Err(err))
		} else {
			rt.store = store
			settings = store
		}
	}

	rt.Controller = menu.NewController(menu.Deps{
		Source:     repo,
		Presenter:  opts.Presenter,
		Scene:      rt.Scene,
		Codec:      codec,
		Extractor:  pdbio.NewLigandExtractor(codec),
		Calculator: calc,
		Settings:   settings,
		Logger:     log.Named("menu"),
	})
	return rt, nil
}

// NewCalculator returns the detector named in the configuration
func NewCalculator(cfg *config.Config, codec *pdbio.Codec, log logging.Logger) (ports.InteractionCalculator, error) {
	switch cfg.Detector {
	case config.DetectorArpeggio:
		d := arpeggio.NewDetector(cfg.Arpeggio.Command, codec, arpeggio.WithLogger(log.Named("arpeggio")))
		if !d.IsAvailable() {
			return nil, fmt.Errorf("%w: %s not found in PATH", ErrDetectorUnavailable, cfg.Arpeggio.Command)
		}
		return d, nil
	case config.DetectorGeometric, "":
		return detect.NewGeometric(cfg.Cutoff), nil
	default:
		return nil, fmt.Errorf("%w: unknown detector %q", ErrDetectorUnavailable, cfg.Detector)
	}
}

// Close releases the settings store
func (r *Runtime) Close() error {
	if r.store == nil {
		return nil
	}
	return r.store.Close()
}
