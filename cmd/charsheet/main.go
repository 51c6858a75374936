// Command charsheet builds or loads a character, runs it through the rules
// pipeline, and prints the resulting sheet.
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

	"go.uber.org/zap"

	"github.com/cory-johannsen/avrellant/internal/config"
	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/game/sheet"
	"github.com/cory-johannsen/avrellant/internal/importer"
	"github.com/cory-johannsen/avrellant/internal/observability"
	"github.com/cory-johannsen/avrellant/internal/storage"
	"github.com/cory-johannsen/avrellant/internal/storage/backend"
)

type options struct {
	choices
	ConfigPath  string
	FromFile    string
	FromStore   bool
	LibraryFrom string
	Out         string
	Save        bool
	JSON        bool
}

func main() {
	var o options
	flag.StringVar(&o.ConfigPath, "config", "", "path to configuration file (defaults and AVRELLANT_* env when empty)")
	flag.StringVar(&o.FromFile, "file", "", "load a character JSON export instead of building one")
	flag.BoolVar(&o.FromStore, "load", false, "load the character named -name from the store")
	flag.StringVar(&o.LibraryFrom, "library", "file", "content library source: file or store")
	flag.StringVar(&o.Name, "name", "", "character name")
	flag.StringVar(&o.Race, "race", "", "race name")
	flag.StringVar(&o.Class, "class", "", "class name")
	flag.StringVar(&o.Background, "background", "", "background name")
	flag.IntVar(&o.Level, "level", 0, "character level")
	flag.IntVar(&o.ArrayID, "array", 0, "attribute array id")
	flag.StringVar(&o.Assign, "assign", "", "array index per attribute, e.g. agi=0,str=1")
	flag.StringVar(&o.Skills, "skills", "", "skill points, e.g. stealth=2,lore=3")
	flag.StringVar(&o.Talents, "talents", "", "comma-separated talent names")
	flag.StringVar(&o.Out, "out", "", "write the recalculated character JSON to this path")
	flag.BoolVar(&o.Save, "save", false, "save the recalculated character to the store")
	flag.BoolVar(&o.JSON, "json", false, "print the sheet as JSON")
	flag.Parse()

	cfg, err := loadConfig(o.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logger := observability.Must(cfg.Logging)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, o, os.Stdout); err != nil {
		logger.Error("charsheet failed", zap.Error(err))
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
	var store storage.Store
	if o.FromStore || o.Save || o.LibraryFrom == "store" {
		s, err := backend.Open(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	lib, err := loadLibrary(ctx, cfg, o.LibraryFrom, store)
	if err != nil {
		return err
	}
	logger.Debug("content library loaded",
		zap.Int("races", lib.Count(content.KindRace)),
		zap.Int("classes", lib.Count(content.KindClass)),
		zap.Int("backgrounds", lib.Count(content.KindBackground)),
		zap.Int("talents", lib.Count(content.KindTalent)),
	)

	c, err := loadCharacter(ctx, cfg, o, lib, store)
	if err != nil {
		return err
	}
	c = sheet.Recalculate(c)

	if o.Out != "" {
		data, err := json.MarshalIndent(c, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding character: %w", err)
		}
		if err := os.WriteFile(o.Out, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", o.Out, err)
		}
		logger.Info("character written", zap.String("path", o.Out))
	}
	if o.Save {
		id, err := store.SaveCharacter(ctx, c)
		if err != nil {
			return err
		}
		logger.Info("character saved", zap.String("name", c.Name), zap.String("id", id))
	}

	s := sheet.Compute(c, lib)
	if o.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	return printSheet(w, s)
}

func loadLibrary(ctx context.Context, cfg config.Config, from string, store storage.Store) (*content.Library, error) {
	switch from {
	case "file":
		return importer.ReadLibrary(cfg.Content.LibraryPath)
	case "store":
		return store.LoadContent(ctx)
	}
	return nil, fmt.Errorf("unknown library source %q (want file or store)", from)
}

func loadCharacter(ctx context.Context, cfg config.Config, o options, lib *content.Library, store storage.Store) (*character.Character, error) {
	switch {
	case o.FromFile != "":
		data, err := os.ReadFile(o.FromFile)
		if err != nil {
			return nil, fmt.Errorf("reading character %s: %w", o.FromFile, err)
		}
		var c character.Character
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("decoding character %s: %w", o.FromFile, err)
		}
		return &c, nil
	case o.FromStore:
		return store.LoadCharacter(ctx, o.Name)
	}

	arrays := attribute.DefaultArrays()
	if cfg.Content.AttributeArrays != "" {
		loaded, err := attribute.LoadArrays(cfg.Content.AttributeArrays)
		if err != nil {
			return nil, err
		}
		arrays = loaded
	}
	return build(o.choices, lib, arrays)
}

func printSheet(w io.Writer, s sheet.Sheet) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (level %d)\n\n", s.Name, s.Level)

	a := s.Attributes
	fmt.Fprintf(&b, "AGI %d  GUI %d  INT %d  PER %d  STR %d  WIL %d\n", a.Agi, a.Gui, a.Int, a.Per, a.Str, a.Wil)

	d := s.Derived
	fmt.Fprintf(&b, "Evasion %d  Grit %d  Intuition %d\n", d.Defences.Evasion, d.Defences.Grit, d.Defences.Intuition)
	fmt.Fprintf(&b, "Speed %d  DR %d  Load %d/%d", d.Speed, d.DR, s.Load, d.Encumbrance)
	if s.OverEncumbered {
		b.WriteString("  (over-encumbered)")
	}
	b.WriteString("\n")
	th := d.Thresholds
	fmt.Fprintf(&b, "Thresholds: fatigue %d  friction %d  stress %d  strain %d  wounds %d  corruption %d\n\n",
		th.Fatigue, th.Friction, th.Stress, th.Strain, th.Wounds, th.Corruption)

	for _, sk := range s.Skills {
		fmt.Fprintf(&b, "  %-14s %s  %d pts  %+d\n", sk.Name, strings.ToUpper(string(sk.Attribute)), sk.Points, sk.Modifier)
	}
	budget := s.SkillBudget
	if budget.Valid {
		fmt.Fprintf(&b, "Skill points: %d/%d spent, %d remaining\n", budget.Spent, budget.Available, budget.Remaining)
	} else {
		fmt.Fprintf(&b, "Skill points: %s\n", budget.Message)
	}

	fmt.Fprintf(&b, "\nTalents: %s\n", joinOrNone(s.HeldTalents))
	fmt.Fprintf(&b, "Eligible: %s\n", joinOrNone(s.EligibleTalents))

	_, err := io.WriteString(w, b.String())
	return err
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
