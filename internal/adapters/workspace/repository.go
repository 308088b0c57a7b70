// Package workspace serves PDB files from a directory as the host structures
package workspace

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"chemint/internal/adapters/pdbio"
	"chemint/internal/application"
	"chemint/internal/domain"
	"chemint/internal/logging"
	"chemint/internal/ports"
)

// SampleSource marks the bundled sample in Structure.Source
const SampleSource = "embedded:" + pdbio.SampleName

type entry struct {
	path   string // SampleSource for the bundled sample
	name   string
	gone   bool
	sample bool
}

// Repository implements ports.StructureSource over a directory of PDB files.
// Every file gets an index the first time it is seen and keeps it for the
// lifetime of the repository.
type Repository struct {
	root  string
	codec *pdbio.Codec
	log   logging.Logger

	mu      sync.Mutex
	entries []entry
	byPath  map[string]int
}

var _ ports.StructureSource = (*Repository)(nil)

// Option configures the Repository
type Option func(*Repository)

// WithLogger sets the logger
func WithLogger(l logging.Logger) Option {
	return func(r *Repository) {
		r.log = l
	}
}

// WithSample registers the bundled sample complex as the first structure
func WithSample() Option {
	return func(r *Repository) {
		r.entries = append(r.entries, entry{path: SampleSource, name: pdbio.SampleName, sample: true})
		r.byPath[SampleSource] = len(r.entries) - 1
	}
}

// NewRepository creates a repository rooted at dir. An empty dir disables
// directory scanning.
func NewRepository(dir string, codec *pdbio.Codec, opts ...Option) *Repository {
	if strings.HasPrefix(dir, "~") {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, dir[1:])
	}
	if dir != "" {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	r := &Repository{
		root:   dir,
		codec:  codec,
		log:    logging.NewNop(),
		byPath: make(map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the scanned directory
func (r *Repository) Root() string {
	return r.root
}

// IsStructureFile reports whether path names a PDB file
func IsStructureFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".pdb" || ext == ".ent"
}

// scan walks the root and registers new files in sorted path order
func (r *Repository) scan() error {
	if r.root == "" {
		return nil
	}

	var found []string
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip unreadable entries
		}
		if d.IsDir() {
			if path != r.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsStructureFile(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan workspace: %w", err)
	}
	sort.Strings(found)

	present := make(map[string]bool, len(found))
	for _, path := range found {
		present[path] = true
		r.registerLocked(path)
	}
	for i := range r.entries {
		if !r.entries[i].sample {
			r.entries[i].gone = !present[r.entries[i].path]
		}
	}
	return nil
}

func (r *Repository) registerLocked(path string) int {
	if i, ok := r.byPath[path]; ok {
		r.entries[i].gone = false
		return i
	}
	r.entries = append(r.entries, entry{path: path, name: pdbio.StructureName(path)})
	i := len(r.entries) - 1
	r.byPath[path] = i
	r.log.Debug("registered structure", logging.Int("index", i), logging.String("path", path))
	return i
}

// ListStructures rescans the directory and returns shallow structures in index order
func (r *Repository) ListStructures(ctx context.Context) ([]domain.Structure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.scan(); err != nil {
		return nil, err
	}

	out := make([]domain.Structure, 0, len(r.entries))
	for i, e := range r.entries {
		if e.gone {
			continue
		}
		out = append(out, domain.Structure{Index: i, Name: e.name, Source: e.path})
	}
	return out, nil
}

// FetchStructures parses the requested files
func (r *Repository) FetchStructures(ctx context.Context, indices []int) ([]domain.Structure, error) {
	out := make([]domain.Structure, 0, len(indices))
	for _, idx := range indices {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := r.load(idx)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *Repository) load(index int) (domain.Structure, error) {
	e, ok := r.entry(index)
	if !ok {
		return domain.Structure{}, fmt.Errorf("structure %d: %w", index, application.ErrNotFound)
	}
	if e.sample {
		s, err := pdbio.Sample(index)
		if err != nil {
			return domain.Structure{}, err
		}
		s.Source = SampleSource
		return s, nil
	}
	return r.codec.ReadFile(e.path, index)
}

func (r *Repository) entry(index int) (entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if index < 0 || index >= len(r.entries) || r.entries[index].gone {
		return entry{}, false
	}
	return r.entries[index], true
}

// Add registers a file outside the scanned directory and returns it shallow
func (r *Repository) Add(path string) (domain.Structure, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Structure{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return domain.Structure{}, fmt.Errorf("failed to add %s: %w", path, err)
	}
	if info.IsDir() {
		return domain.Structure{}, fmt.Errorf("failed to add %s: is a directory", path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.registerLocked(abs)
	return domain.Structure{Index: i, Name: r.entries[i].name, Source: abs}, nil
}

// Path returns the file a structure was loaded from
func (r *Repository) Path(index int) (string, error) {
	e, ok := r.entry(index)
	if !ok {
		return "", fmt.Errorf("structure %d: %w", index, application.ErrNotFound)
	}
	if e.sample {
		return "", fmt.Errorf("structure %d is the bundled sample and has no file", index)
	}
	return e.path, nil
}

// lookup returns the index registered for path
func (r *Repository) lookup(path string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.byPath[path]
	return i, ok
}
