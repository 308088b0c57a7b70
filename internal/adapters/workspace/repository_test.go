package workspace

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chemint/internal/adapters/pdbio"
	"chemint/internal/application"
	"chemint/internal/domain"
)

func writeSample(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(pdbio.SamplePDB()), 0o644))
}

func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeSample(t, filepath.Join(dir, "b.pdb"))
	writeSample(t, filepath.Join(dir, "a.pdb"))
	writeSample(t, filepath.Join(dir, "nested", "c.ent"))
	writeSample(t, filepath.Join(dir, ".hidden", "d.pdb"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	return dir
}

func names(structures []domain.Structure) []string {
	out := make([]string, len(structures))
	for i, s := range structures {
		out[i] = s.Name
	}
	return out
}

func TestListStructures(t *testing.T) {
	repo := NewRepository(setupWorkspace(t), pdbio.NewCodec())

	got, err := repo.ListStructures(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, names(got))
	for i, s := range got {
		assert.Equal(t, i, s.Index)
		assert.True(t, s.IsShallow())
	}
}

func TestListStructures_EmptyDirectory(t *testing.T) {
	repo := NewRepository(t.TempDir(), pdbio.NewCodec())

	got, err := repo.ListStructures(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListStructures_IndicesAreStable(t *testing.T) {
	dir := setupWorkspace(t)
	repo := NewRepository(dir, pdbio.NewCodec())

	_, err := repo.ListStructures(context.Background())
	require.NoError(t, err)

	// A file sorting first must not shift the others
	writeSample(t, filepath.Join(dir, "0first.pdb"))
	require.NoError(t, os.Remove(filepath.Join(dir, "b.pdb")))

	got, err := repo.ListStructures(context.Background())
	require.NoError(t, err)

	byName := make(map[string]int)
	for _, s := range got {
		byName[s.Name] = s.Index
	}
	assert.Equal(t, map[string]int{"a": 0, "c": 2, "0first": 3}, byName)
}

func TestListStructures_WithSample(t *testing.T) {
	repo := NewRepository("", pdbio.NewCodec(), WithSample())

	got, err := repo.ListStructures(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pdbio.SampleName, got[0].Name)
	assert.Equal(t, SampleSource, got[0].Source)

	deep, err := repo.FetchStructures(context.Background(), []int{0})
	require.NoError(t, err)
	require.Len(t, deep, 1)
	assert.False(t, deep[0].IsShallow())
	assert.NotEmpty(t, deep[0].Atoms)

	_, err = repo.Path(0)
	assert.Error(t, err)
}

func TestFetchStructures(t *testing.T) {
	repo := NewRepository(setupWorkspace(t), pdbio.NewCodec())
	_, err := repo.ListStructures(context.Background())
	require.NoError(t, err)

	got, err := repo.FetchStructures(context.Background(), []int{1, 0})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Name)
	assert.Equal(t, 1, got[0].Index)
	assert.Equal(t, "a", got[1].Name)
	assert.True(t, got[1].Deep)
	assert.Len(t, got[1].Atoms, 19)
}

func TestFetchStructures_Unknown(t *testing.T) {
	repo := NewRepository(setupWorkspace(t), pdbio.NewCodec())
	_, err := repo.ListStructures(context.Background())
	require.NoError(t, err)

	_, err = repo.FetchStructures(context.Background(), []int{42})
	assert.ErrorIs(t, err, application.ErrNotFound)
}

func TestFetchStructures_Cancelled(t *testing.T) {
	repo := NewRepository(setupWorkspace(t), pdbio.NewCodec())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FetchStructures(ctx, []int{0})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAdd(t *testing.T) {
	outside := filepath.Join(t.TempDir(), "extra.pdb")
	writeSample(t, outside)
	repo := NewRepository(setupWorkspace(t), pdbio.NewCodec())

	s, err := repo.Add(outside)
	require.NoError(t, err)
	assert.Equal(t, "extra", s.Name)

	again, err := repo.Add(outside)
	require.NoError(t, err)
	assert.Equal(t, s.Index, again.Index)

	path, err := repo.Path(s.Index)
	require.NoError(t, err)
	assert.Equal(t, outside, path)

	_, err = repo.Add(filepath.Join(t.TempDir(), "missing.pdb"))
	assert.Error(t, err)
}

func TestWatch_ReportsModifiedFile(t *testing.T) {
	dir := setupWorkspace(t)
	repo := NewRepository(dir, pdbio.NewCodec())
	listed, err := repo.ListStructures(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan domain.Structure, 16)
	done := make(chan error, 1)
	go func() {
		done <- repo.Watch(ctx, func(s domain.Structure) { updates <- s })
	}()

	target := filepath.Join(dir, "a.pdb")
	var got domain.Structure
	require.Eventually(t, func() bool {
		writeSample(t, target)
		select {
		case got = <-updates:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, listed[0].Index, got.Index)
	assert.True(t, got.Deep)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestFetchStructures_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, filepath.Join(dir, "a.pdb"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.pdb"), nil, 0o644))

	repo := NewRepository(dir, pdbio.NewCodec())
	listed, err := repo.ListStructures(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "empty"}, names(listed))

	_, err = repo.FetchStructures(context.Background(), []int{listed[1].Index})
	assert.ErrorIs(t, err, pdbio.ErrEmptyStructure)
}

func TestWatch_SkipsPartialWrites(t *testing.T) {
	dir := setupWorkspace(t)
	repo := NewRepository(dir, pdbio.NewCodec())
	_, err := repo.ListStructures(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan domain.Structure, 64)
	done := make(chan error, 1)
	go func() {
		done <- repo.Watch(ctx, func(s domain.Structure) { updates <- s })
	}()

	full := pdbio.SamplePDB()
	partial := full[:strings.Index(full, "HETATM")+20]
	target := filepath.Join(dir, "a.pdb")

	var got domain.Structure
	require.Eventually(t, func() bool {
		require.NoError(t, os.WriteFile(target, nil, 0o644))
		require.NoError(t, os.WriteFile(target, []byte(partial), 0o644))
		writeSample(t, target)
		for {
			select {
			case got = <-updates:
				if len(got.Atoms) == 19 {
					return true
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, "a", got.Name)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestScene(t *testing.T) {
	scene := NewScene()
	var notified [][]domain.Line
	scene.OnChange(func(lines []domain.Line) { notified = append(notified, lines) })

	scene.DrawLines([]domain.Line{{Category: domain.CategoryHBond}})
	scene.DrawLines([]domain.Line{{Category: domain.CategoryIonic}})
	assert.Len(t, scene.Lines(), 2)

	scene.ClearLines()
	assert.Empty(t, scene.Lines())
	require.Len(t, notified, 3)
	assert.Len(t, notified[1], 2)
	assert.Empty(t, notified[2])
}
