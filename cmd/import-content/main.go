package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/avrellant/internal/config"
	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/importer"
	"github.com/cory-johannsen/avrellant/internal/observability"
	"github.com/cory-johannsen/avrellant/internal/storage"
	"github.com/cory-johannsen/avrellant/internal/storage/backend"
)

type options struct {
	Store bool
	Clear string
	Stats bool
	// Show is "kind:name"; when set the stored matches are printed and
	// nothing is imported.
	Show string
}

func main() {
	var o options
	configPath := flag.String("config", "", "path to configuration file (defaults and AVRELLANT_* env when empty)")
	sourceDir := flag.String("source", "", "content directory (overrides content.dir)")
	output := flag.String("output", "", "library JSON path (overrides content.library_path)")
	flag.BoolVar(&o.Store, "store", false, "also append the imported content to the configured store")
	flag.StringVar(&o.Clear, "clear", "", "clear one content kind from the store before importing")
	flag.BoolVar(&o.Stats, "stats", false, "print store statistics after importing")
	flag.StringVar(&o.Show, "show", "", "print stored records matching kind:name (e.g. race:high-elf) and exit")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if *sourceDir != "" {
		cfg.Content.Dir = *sourceDir
	}
	if *output != "" {
		cfg.Content.LibraryPath = *output
	}

	logger := observability.Must(cfg.Logging)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, o, os.Stdout); err != nil {
		logger.Error("import failed", zap.Error(err))
		stop()
		os.Exit(1)
	}
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.LoadDefaults()
	}
	return config.Load(path)
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger, o options, w io.Writer) error {
	start := time.Now()
	sinks := []importer.Sink{importer.LibraryFile{Path: cfg.Content.LibraryPath}}

	if o.Store || o.Clear != "" || o.Stats || o.Show != "" {
		s, err := backend.Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		if o.Show != "" {
			return show(ctx, s, o.Show, w)
		}
		if o.Clear != "" {
			k, err := content.ParseKind(o.Clear)
			if err != nil {
				return err
			}
			if err := s.ClearContent(ctx, k); err != nil {
				return err
			}
			logger.Info("cleared stored content", zap.String("kind", string(k)))
		}
		if o.Store {
			sinks = append(sinks, s)
		}
		if o.Stats {
			defer printStats(ctx, s, logger, w)
		}
	}

	imp := importer.New(importer.NewDirSource(), logger)
	rep, err := imp.Run(ctx, cfg.Content.Dir, sinks...)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "imported %d file(s) into %s in %s\n",
		rep.Files, cfg.Content.LibraryPath, time.Since(start).Round(time.Millisecond))
	return nil
}

func printStats(ctx context.Context, s storage.Store, logger *zap.Logger, w io.Writer) {
	st, err := s.Stats(ctx)
	if err != nil {
		logger.Warn("reading store stats", zap.Error(err))
		return
	}
	for _, k := range content.Kinds() {
		fmt.Fprintf(w, "%-12s %d\n", k, st.Content[k])
	}
	fmt.Fprintf(w, "%-12s %d\n", "characters", st.Characters)
}

// show prints the records of one kind stored under the slug of name.
func show(ctx context.Context, s storage.Store, query string, w io.Writer) error {
	kind, name, ok := strings.Cut(query, ":")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("show %q: want kind:name", query)
	}
	k, err := content.ParseKind(kind)
	if err != nil {
		return err
	}
	found, err := s.FindContent(ctx, k, name)
	if err != nil {
		return err
	}
	if found.Count(k) == 0 {
		return fmt.Errorf("no stored %s matches %q", k, name)
	}
	data, err := found.MarshalKind(k)
	if err != nil {
		return err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("decoding %s: %w", k, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
