package importer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/avrellant/internal/content"
)

// File is one content text file read from a Source.
type File struct {
	Kind content.Kind
	Path string
	Text string
}

// Source reads content files from a format-specific source directory.
//
// Postcondition: returns at least one File, or a non-nil error.
type Source interface {
	Load(ctx context.Context, sourceDir string) ([]File, error)
}

var _ Source = (*DirSource)(nil)

// DirSource implements Source for the plain-text content layout:
//
//	sourceDir/
//	  races/        <- any number of *.txt files
//	  classes/
//	  backgrounds/
//	  talents/
//	  races.txt     <- optional single file per kind
//
// Files are read concurrently, bounded by Workers.
type DirSource struct {
	// Workers caps concurrent file reads; values below 1 mean 4.
	Workers int
}

// NewDirSource constructs a DirSource with the default worker count.
func NewDirSource() *DirSource { return &DirSource{Workers: 4} }

// Load discovers and reads every content file under sourceDir. Files are
// returned in kind order, then path order, regardless of read completion order.
//
// Precondition: sourceDir must exist.
// Postcondition: returns at least one File or a non-nil error.
func (s *DirSource) Load(ctx context.Context, sourceDir string) ([]File, error) {
	if _, err := os.Stat(sourceDir); err != nil {
		return nil, fmt.Errorf("source directory not accessible: %w", err)
	}

	files, err := discover(sourceDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no content files found in %s", sourceDir)
	}

	workers := s.Workers
	if workers < 1 {
		workers = 4
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i := range files {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(files[i].Path)
			if err != nil {
				return fmt.Errorf("reading %s file %s: %w", files[i].Kind, files[i].Path, err)
			}
			files[i].Text = string(data)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

func discover(root string) ([]File, error) {
	var out []File
	for _, k := range content.Kinds() {
		var paths []string

		single := filepath.Join(root, string(k)+".txt")
		if info, err := os.Stat(single); err == nil && !info.IsDir() {
			paths = append(paths, single)
		}

		dir := filepath.Join(root, string(k))
		entries, err := os.ReadDir(dir)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		default:
			for _, e := range entries {
				if !e.IsDir() && filepath.Ext(e.Name()) == ".txt" {
					paths = append(paths, filepath.Join(dir, e.Name()))
				}
			}
		}

		sort.Strings(paths)
		for _, p := range paths {
			out = append(out, File{Kind: k, Path: p})
		}
	}
	return out, nil
}
