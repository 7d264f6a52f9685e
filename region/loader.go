package region

import (
	"fmt"
	"os"
	"path/filepath"
)

// Coord is a region coordinate pair, in units of 32x32 chunks.
type Coord struct {
	X, Z int
}

// Loader resolves a region coordinate to an open Region, and enumerates the
// coordinates available without opening every file.
type Loader interface {
	Region(x, z int) (*Region, error)
	List() ([]Coord, error)
}

// FileLoader is a Loader backed by a directory of "r.<x>.<z>.mca" files, the
// on-disk layout vanilla-compatible world saves use for a dimension's region
// files.
type FileLoader struct {
	dir  string
	opts []Option
}

// NewFileLoader returns a Loader over dir. opts are applied to every Region
// it opens.
func NewFileLoader(dir string, opts ...Option) *FileLoader {
	return &FileLoader{dir: dir, opts: opts}
}

// Region opens the region file for coordinate (x, z) with the loader's
// options, so by default a missing file is created empty. Unlike fastanvil's
// RegionLoader::region, which collapses a missing or unreadable file to
// None, an open failure returns an error wrapping both
// errs.ErrRegionOpenFailed and the underlying OS error; with
// WithCreateIfMissing(false) among the options, errors.Is(err,
// fs.ErrNotExist) tells a missing file apart from other I/O failures.
func (l *FileLoader) Region(x, z int) (*Region, error) {
	path := filepath.Join(l.dir, Filename(x, z))
	return Open(path, l.opts...)
}

// List returns every region coordinate present in the directory, determined
// by filename pattern alone (a zero-length placeholder file still counts;
// callers that care should Stat it themselves).
func (l *FileLoader) List() ([]Coord, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("region: listing %s: %w", l.dir, err)
	}

	var coords []Coord
	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		x, z, err := ParseFilename(e.Name())
		if err != nil {
			continue
		}

		coords = append(coords, Coord{X: x, Z: z})
	}

	return coords, nil
}

var _ Loader = (*FileLoader)(nil)
