package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chemint/internal/adapters/detect"
	"chemint/internal/adapters/headless"
	"chemint/internal/adapters/pdbio"
	"chemint/internal/config"
	"chemint/internal/logging"
	"chemint/internal/ports"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Workspace:  t.TempDir(),
		Detector:   config.DetectorGeometric,
		Cutoff:     detect.DefaultCutoff,
		SettingsDB: filepath.Join(t.TempDir(), "settings.db"),
		Arpeggio:   config.ArpeggioConfig{Command: "chemint-no-such-arpeggio"},
	}
}

func TestNew_SampleEndToEnd(t *testing.T) {
	presenter := headless.NewPresenter(nil)
	rt, err := New(Options{Config: testConfig(t), Presenter: presenter, Sample: true})
	require.NoError(t, err)
	defer rt.Close()

	ctx := context.Background()
	ctrl := rt.Controller
	require.NoError(t, ctrl.Load(ctx))

	structures := presenter.Menu().Structures.Items
	require.Len(t, structures, 1)
	require.NoError(t, ctrl.ToggleStructure(ctx, structures[0].ID))

	ligands := presenter.Menu().Ligands.Items
	require.NotEmpty(t, ligands)
	assert.Equal(t, "STR", ligands[0].Text)
	require.NoError(t, ctrl.ToggleLigand(ctx, ligands[0].ID))

	require.NoError(t, ctrl.Submit(ctx))
	assert.Len(t, rt.Scene.Lines(), 9)
}

func TestNew_RequiresPresenter(t *testing.T) {
	_, err := New(Options{Config: testConfig(t)})
	assert.Error(t, err)
}

func TestNewCalculator(t *testing.T) {
	cfg := testConfig(t)
	codec := pdbio.NewCodec()

	calc, err := NewCalculator(cfg, codec, logging.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &detect.Geometric{}, calc)

	cfg.Detector = config.DetectorArpeggio
	_, err = NewCalculator(cfg, codec, logging.NewNop())
	assert.ErrorIs(t, err, ErrDetectorUnavailable)

	cfg.Detector = "psychic"
	_, err = NewCalculator(cfg, codec, logging.NewNop())
	assert.ErrorIs(t, err, ErrDetectorUnavailable)
}

func TestSelfTest(t *testing.T) {
	tests := []struct {
		name    string
		ligand  int
		expect  int
		wantErr error
	}{
		{name: "sample passes", ligand: 0, expect: DefaultSelfTestLines},
		{name: "wrong count", ligand: 0, expect: 3, wantErr: ErrSelfTestFailed},
		{name: "ligand out of range", ligand: 5, expect: DefaultSelfTestLines, wantErr: ErrSelfTestFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presenter := headless.NewPresenter(nil)
			rt, err := New(Options{Config: testConfig(t), Presenter: presenter, Sample: true, NoScan: true, Ephemeral: true})
			require.NoError(t, err)
			defer rt.Close()

			count, err := rt.SelfTest(context.Background(), presenter, tt.ligand, tt.expect)
			last, ok := presenter.Last()
			require.True(t, ok)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, ports.SeverityError, last.Severity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DefaultSelfTestLines, count)
			assert.Equal(t, ports.SeveritySuccess, last.Severity)
		})
	}
}

func TestSelfTest_NoStructures(t *testing.T) {
	presenter := headless.NewPresenter(nil)
	rt, err := New(Options{Config: testConfig(t), Presenter: presenter, NoScan: true, Ephemeral: true})
	require.NoError(t, err)

	_, err = rt.SelfTest(context.Background(), presenter, 0, DefaultSelfTestLines)
	assert.ErrorIs(t, err, ErrSelfTestFailed)
}
