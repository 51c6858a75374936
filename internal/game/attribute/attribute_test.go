package attribute_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/avrellant/internal/game/attribute"
)

func genBlock(rt *rapid.T, label string) attribute.Block {
	v := rapid.IntRange(-20, 20)
	return attribute.Block{
		Agi: v.Draw(rt, label+".agi"),
		Gui: v.Draw(rt, label+".gui"),
		Int: v.Draw(rt, label+".int"),
		Per: v.Draw(rt, label+".per"),
		Str: v.Draw(rt, label+".str"),
		Wil: v.Draw(rt, label+".wil"),
	}
}

func TestAggregate_NilBonusesContributeZero(t *testing.T) {
	base := attribute.Block{Agi: 4, Gui: 3, Int: 5, Per: 2, Str: 3, Wil: 2}
	assert.Equal(t, base, attribute.Aggregate(base, nil, nil))
}

func TestAggregate_SumsRaceAndBackground(t *testing.T) {
	base := attribute.Block{Agi: 4, Gui: 3, Int: 5, Per: 2, Str: 3, Wil: 2}
	race := attribute.Block{Int: 1, Per: 1}
	bg := attribute.Block{Str: 1}
	got := attribute.Aggregate(base, &race, &bg)
	assert.Equal(t, attribute.Block{Agi: 4, Gui: 3, Int: 6, Per: 3, Str: 4, Wil: 2}, got)
}

func TestAggregate_NoClamping(t *testing.T) {
	base := attribute.Block{Str: -3}
	race := attribute.Block{Str: -4, Wil: 40}
	got := attribute.Aggregate(base, &race, nil)
	assert.Equal(t, -7, got.Str)
	assert.Equal(t, 40, got.Wil)
}

// Property: every key of the aggregate is the plain sum of its three inputs.
func TestAggregate_PerKeySum(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := genBlock(rt, "a")
		b := genBlock(rt, "b")
		c := genBlock(rt, "c")
		got := attribute.Aggregate(a, &b, &c)
		for _, k := range attribute.Keys() {
			if got.Get(k) != a.Get(k)+b.Get(k)+c.Get(k) {
				rt.Fatalf("key %s: got %d want %d", k, got.Get(k), a.Get(k)+b.Get(k)+c.Get(k))
			}
		}
		swapped := attribute.Aggregate(c, &a, &b)
		if swapped != got {
			rt.Fatalf("aggregate not commutative: %+v vs %+v", got, swapped)
		}
	})
}

func TestFromName(t *testing.T) {
	k, ok := attribute.FromName("Agility")
	assert.True(t, ok)
	assert.Equal(t, attribute.Agility, k)

	k, ok = attribute.FromName("Willpower")
	assert.True(t, ok)
	assert.Equal(t, attribute.Willpower, k)

	k, ok = attribute.FromName("Charisma")
	assert.False(t, ok)
	assert.Equal(t, attribute.Key("cha"), k)
	assert.False(t, k.Valid())
}

func TestFromPrefix(t *testing.T) {
	k, ok := attribute.FromPrefix("INTELLIGENCE")
	assert.True(t, ok)
	assert.Equal(t, attribute.Intellect, k)

	_, ok = attribute.FromPrefix("luck")
	assert.False(t, ok)
}

func TestBlock_WithIgnoresUnknownKey(t *testing.T) {
	b := attribute.Block{Agi: 1}
	assert.Equal(t, b, b.With("cha", 9))
	assert.Equal(t, 0, b.Get("cha"))
}

func TestArray_Assign(t *testing.T) {
	arr := attribute.DefaultArrays()[4] // The Expert: 5,4,3,2,2,2
	b, err := arr.Assign(map[attribute.Key]int{
		attribute.Intellect: 0,
		attribute.Agility:   1,
		attribute.Guile:     2,
		attribute.Strength:  3,
	})
	require.NoError(t, err)
	assert.Equal(t, attribute.Block{Int: 5, Agi: 4, Gui: 3, Str: 2}, b)
}

func TestArray_AssignRejectsReusedIndex(t *testing.T) {
	arr := attribute.DefaultArrays()[0]
	_, err := arr.Assign(map[attribute.Key]int{
		attribute.Agility: 0,
		attribute.Guile:   0,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already assigned")
}

func TestArray_AssignRejectsOutOfRange(t *testing.T) {
	arr := attribute.DefaultArrays()[0]
	_, err := arr.Assign(map[attribute.Key]int{attribute.Agility: 6})
	require.Error(t, err)
}

func TestDefaultArrays_SequentialIDsAndBoundedValues(t *testing.T) {
	arrays := attribute.DefaultArrays()
	require.Len(t, arrays, 13)
	for i, a := range arrays {
		assert.Equal(t, i+1, a.ID)
		for _, v := range a.Values {
			assert.True(t, v >= 1 && v <= 5, "array %q value %d", a.Name, v)
		}
	}
}

func TestLoadArrays(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arrays.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
arrays:
  - id: 1
    name: Flat
    values: [3, 3, 3, 3, 3, 3]
  - id: 2
    name: Spiky
    values: [6, 4, 3, 2, 2, 1]
`), 0644))

	arrays, err := attribute.LoadArrays(path)
	require.NoError(t, err)
	require.Len(t, arrays, 2)
	a, ok := attribute.FindArray(arrays, 2)
	require.True(t, ok)
	assert.Equal(t, "Spiky", a.Name)
	assert.Equal(t, [6]int{6, 4, 3, 2, 2, 1}, a.Values)
}

func TestParseArrays_DuplicateID(t *testing.T) {
	_, err := attribute.ParseArrays([]byte(`
arrays:
  - {id: 1, name: A, values: [1, 1, 1, 1, 1, 1]}
  - {id: 1, name: B, values: [2, 2, 2, 2, 2, 2]}
`))
	require.Error(t, err)
}

func TestParseArrays_Empty(t *testing.T) {
	_, err := attribute.ParseArrays([]byte(`arrays: []`))
	require.Error(t, err)
}

func TestLoadArrays_MissingFile(t *testing.T) {
	_, err := attribute.LoadArrays("/nonexistent/arrays.yaml")
	require.Error(t, err)
}

func TestLoadArrays_ShippedFileMatchesDefaults(t *testing.T) {
	arrays, err := attribute.LoadArrays(filepath.Join("..", "..", "..", "configs", "attribute-arrays.yaml"))
	require.NoError(t, err)
	assert.Equal(t, attribute.DefaultArrays(), arrays)
}
