// Package importer turns a directory of content text files into a content
// library and hands it to one or more sinks.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/avrellant/internal/content"
)

// Sink receives an imported library. storage.Store satisfies it.
type Sink interface {
	SaveContent(ctx context.Context, lib *content.Library) error
}

// Report summarises an import run.
type Report struct {
	Files   int
	Counts  map[content.Kind]int
	Elapsed time.Duration
}

// Importer orchestrates content import from a Source to Sinks.
type Importer struct {
	source Source
	logger *zap.Logger
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source and logger must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source, logger *zap.Logger) *Importer {
	return &Importer{source: source, logger: logger}
}

// Load reads every file from sourceDir and parses it into one library, in
// kind order then file order.
//
// Postcondition: returns a non-nil library or a non-nil error.
func (imp *Importer) Load(ctx context.Context, sourceDir string) (*content.Library, int, error) {
	t0 := time.Now()
	files, err := imp.source.Load(ctx, sourceDir)
	if err != nil {
		return nil, 0, fmt.Errorf("loading source: %w", err)
	}
	imp.logger.Info("read content files",
		zap.Int("files", len(files)),
		zap.Duration("elapsed", time.Since(t0).Round(time.Millisecond)),
	)

	lib := content.NewLibrary()
	for _, f := range files {
		part, err := content.Parse(f.Kind, f.Text)
		if err != nil {
			return nil, 0, fmt.Errorf("parsing %s: %w", f.Path, err)
		}
		imp.logger.Debug("parsed content file",
			zap.String("path", f.Path),
			zap.String("kind", string(f.Kind)),
			zap.Int("records", part.Count(f.Kind)),
		)
		lib.Merge(part)
	}
	return lib, len(files), nil
}

// Run loads sourceDir and saves the resulting library to every sink in order,
// stopping at the first failing sink.
//
// Precondition: at least one sink.
// Postcondition: returns a Report describing what was imported, or an error.
func (imp *Importer) Run(ctx context.Context, sourceDir string, sinks ...Sink) (Report, error) {
	if len(sinks) == 0 {
		return Report{}, errors.New("importer: no sinks given")
	}
	overall := time.Now()

	lib, files, err := imp.Load(ctx, sourceDir)
	if err != nil {
		return Report{}, err
	}

	for i, s := range sinks {
		t1 := time.Now()
		if err := s.SaveContent(ctx, lib); err != nil {
			return Report{}, fmt.Errorf("saving to sink %d: %w", i, err)
		}
		imp.logger.Info("saved content",
			zap.Int("sink", i),
			zap.Duration("elapsed", time.Since(t1).Round(time.Millisecond)),
		)
	}

	rep := Report{Files: files, Counts: make(map[content.Kind]int), Elapsed: time.Since(overall)}
	for _, k := range content.Kinds() {
		rep.Counts[k] = lib.Count(k)
	}
	imp.logger.Info("import complete",
		zap.Int("races", rep.Counts[content.KindRace]),
		zap.Int("classes", rep.Counts[content.KindClass]),
		zap.Int("backgrounds", rep.Counts[content.KindBackground]),
		zap.Int("talents", rep.Counts[content.KindTalent]),
		zap.Duration("elapsed", rep.Elapsed.Round(time.Millisecond)),
	)
	return rep, nil
}

// LibraryFile is a Sink that writes the library as a single JSON document,
// replacing any previous file.
type LibraryFile struct {
	Path string
}

// SaveContent writes lib to f.Path as indented JSON.
func (f LibraryFile) SaveContent(_ context.Context, lib *content.Library) error {
	data, err := json.MarshalIndent(lib, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding library: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(f.Path, data, 0644); err != nil {
		return fmt.Errorf("writing library to %s: %w", f.Path, err)
	}
	return nil
}

// ReadLibrary loads a library previously written by LibraryFile.
func ReadLibrary(path string) (*content.Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading library %s: %w", path, err)
	}
	lib := content.NewLibrary()
	if err := json.Unmarshal(data, lib); err != nil {
		return nil, fmt.Errorf("decoding library %s: %w", path, err)
	}
	return lib, nil
}
