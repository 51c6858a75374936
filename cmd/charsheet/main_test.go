package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/avrellant/internal/config"
	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/game/sheet"
	"github.com/cory-johannsen/avrellant/internal/importer"
)

func testLibrary() *content.Library {
	lib := content.NewLibrary()
	lib.AddRaces(content.ParseRaces("# Orc\nAttributes: +2 STR\nSize: 3\n")...)
	lib.AddClasses(content.ParseClasses("# Warden\nDefences: +2 EVA, +1 GRI\nSkill Points: 4\n")...)
	lib.AddBackgrounds(content.ParseBackgrounds("# Dockhand\nMoney: 12\n")...)
	lib.AddTalents(content.ParseTalents("# Tough\nEffect: More wounds.\n")...)
	return lib
}

func TestParsePairs(t *testing.T) {
	keys, vals, err := parsePairs(" agi=0, str = 1 ,,")
	require.NoError(t, err)
	assert.Equal(t, []string{"agi", "str"}, keys)
	assert.Equal(t, []int{0, 1}, vals)

	_, _, err = parsePairs("agi")
	assert.Error(t, err)
	_, _, err = parsePairs("agi=x")
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	c, err := build(choices{
		Name:       "Ilsa",
		Race:       "Orc",
		Class:      "Warden",
		Background: "Dockhand",
		Level:      2,
		ArrayID:    13,
		Assign:     "int=0, agi=1, str=2, gui=3, per=4, wil=5",
		Skills:     "melee=3",
		Talents:    "Tough",
	}, testLibrary(), attribute.DefaultArrays())
	require.NoError(t, err)

	assert.Equal(t, attribute.Block{Agi: 5, Gui: 1, Int: 5, Per: 1, Str: 5, Wil: 1}, c.BaseAttributes)
	assert.Equal(t, 12, c.Money)
	assert.Equal(t, 2, c.Level)
	assert.Equal(t, 3, c.Skills["melee"])
	assert.True(t, c.HasTalent("Tough"))
}

func TestBuild_ResolvesContentNamesBySlug(t *testing.T) {
	c, err := build(choices{Name: "Ilsa", Race: "orc", Class: "WARDEN", Talents: "tough"},
		testLibrary(), attribute.DefaultArrays())
	require.NoError(t, err)

	assert.Equal(t, "Orc", c.Race.Name)
	assert.Equal(t, "Warden", c.Class.Name)
	assert.True(t, c.HasTalent("Tough"))
}

func TestBuild_CollectsEveryError(t *testing.T) {
	_, err := build(choices{
		Name:    "Ilsa",
		Race:    "Dragon",
		ArrayID: 1,
		Assign:  "agi=0, str=0",
		Talents: "Flight",
	}, testLibrary(), attribute.DefaultArrays())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown race "Dragon"`)
	assert.Contains(t, err.Error(), "already assigned")
	assert.Contains(t, err.Error(), `unknown talent "Flight"`)
}

func fileConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		Content: config.ContentConfig{Dir: dir, LibraryPath: filepath.Join(dir, "library.json")},
		Storage: config.StorageConfig{Backend: config.BackendFile, Path: filepath.Join(dir, "store.json")},
	}
	require.NoError(t, importer.LibraryFile{Path: cfg.Content.LibraryPath}.SaveContent(context.Background(), testLibrary()))
	return cfg
}

func TestRun_PrintsSheetAndSaves(t *testing.T) {
	cfg := fileConfig(t)
	out := filepath.Join(t.TempDir(), "ilsa.json")
	o := options{
		choices:     choices{Name: "Ilsa", Race: "Orc", Class: "Warden", Skills: "melee=2"},
		LibraryFrom: "file",
		Out:         out,
		Save:        true,
	}
	var buf bytes.Buffer

	require.NoError(t, run(context.Background(), cfg, zap.NewNop(), o, &buf))

	text := buf.String()
	assert.Contains(t, text, "Ilsa (level 1)")
	assert.Contains(t, text, "STR 2")
	assert.Contains(t, text, "Skill points: 2/4 spent, 2 remaining")
	assert.Contains(t, text, "Eligible: Tough")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var saved character.Character
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Equal(t, 5, saved.DerivedStats.Encumbrance)

	o = options{choices: choices{Name: "Ilsa"}, FromStore: true, LibraryFrom: "store", JSON: true}
	buf.Reset()
	require.NoError(t, run(context.Background(), cfg, zap.NewNop(), o, &buf))
	var s sheet.Sheet
	require.NoError(t, json.Unmarshal(buf.Bytes(), &s))
	assert.Equal(t, "Ilsa", s.Name)
	assert.Equal(t, 2, s.Attributes.Str)
}

func TestRun_UnknownLibrarySource(t *testing.T) {
	cfg := fileConfig(t)
	err := run(context.Background(), cfg, zap.NewNop(), options{LibraryFrom: "web"}, &bytes.Buffer{})
	assert.Error(t, err)
}
