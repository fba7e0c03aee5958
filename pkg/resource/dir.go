package resource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/matzehuels/fascia/pkg/scaffold"
)

// DirSource lists images in a local directory.
type DirSource struct {
	Dir string
}

// NewDirSource returns a source reading dir.
func NewDirSource(dir string) *DirSource {
	return &DirSource{Dir: dir}
}

// List returns the images in the directory. A missing directory yields an
// empty list; subdirectories are ignored.
func (s *DirSource) List(ctx context.Context) ([]scaffold.ExternalResource, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []scaffold.ExternalResource{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.Dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	return FromNames(names), nil
}

// Exists reports whether the directory is present.
func (s *DirSource) Exists() bool {
	info, err := os.Stat(s.Dir)
	return err == nil && info.IsDir()
}

func (s *DirSource) String() string { return s.Dir }

var _ Source = (*DirSource)(nil)
