package character_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/game/skill"
)

func TestNew_Defaults(t *testing.T) {
	c := character.New("Ilsa")

	assert.Equal(t, "Ilsa", c.Name)
	assert.Equal(t, 1, c.Level)
	assert.Len(t, c.Skills, 12)
	for _, s := range skill.Names() {
		assert.Equal(t, 0, c.Skills[s], s)
	}
	assert.Nil(t, c.Race)
	assert.Nil(t, c.Class)
	assert.Nil(t, c.Background)
	assert.NotNil(t, c.Talents)
	assert.NotNil(t, c.Equipment.Weapons)
}

func TestWithBackground_SetsMoney(t *testing.T) {
	bg := content.NewBackground("Urchin")
	bg.Money = 15

	c := character.New("Ilsa").WithBackground(&bg)

	require.NotNil(t, c.Background)
	assert.Equal(t, 15, c.Money)
	assert.Equal(t, "Urchin", c.Background.Name)
}

func TestWithRace_DoesNotAliasInput(t *testing.T) {
	race := content.NewRace("Human")
	race.Size = 2

	c := character.New("Ilsa").WithRace(&race)
	race.Size = 9

	assert.Equal(t, 2, c.Race.Size)
}

func TestWithLevel_RejectsBelowOne(t *testing.T) {
	_, err := character.New("Ilsa").WithLevel(0)
	require.Error(t, err)

	c, err := character.New("Ilsa").WithLevel(6)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Level)
}

func TestWithSkill_NormalisesAndValidates(t *testing.T) {
	c, err := character.New("Ilsa").WithSkill("  Stealth ", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Skills["stealth"])

	_, err = c.WithSkill("stealth", -1)
	assert.Error(t, err)
	_, err = c.WithSkill(" ", 1)
	assert.Error(t, err)
}

func TestWithTalent_HasTalent(t *testing.T) {
	c := character.New("Ilsa").WithTalent(content.NewTalent("Iron Will"))

	assert.True(t, c.HasTalent("Iron Will"))
	assert.False(t, c.HasTalent("iron will"))
}

func TestEffectiveLevel(t *testing.T) {
	c := character.New("Ilsa")
	c.Level = 0
	assert.Equal(t, 1, c.EffectiveLevel())
	c.Level = 4
	assert.Equal(t, 4, c.EffectiveLevel())
}

func TestCharacter_JSONShape(t *testing.T) {
	bg := content.NewBackground("Urchin")
	c := character.New("Ilsa").
		WithBackground(&bg).
		WithBaseAttributes(attribute.Block{Agi: 4, Gui: 3, Int: 5, Per: 2, Str: 3, Wil: 2})
	c.Equipment.Armor = &character.Gear{Name: "Leather", Encumbrance: 2, DR: 1}
	c.Spells = append(c.Spells, json.RawMessage(`{"name":"Spark"}`))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{
		"name", "race", "background", "class", "level", "xp", "baseAttributes",
		"attributes", "skills", "derivedStats", "talents", "spells", "equipment", "money",
	} {
		assert.Contains(t, raw, key)
	}
	derived := raw["derivedStats"].(map[string]any)
	assert.Contains(t, derived, "thresholds")
	assert.Contains(t, derived, "defences")

	var back character.Character
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, c.BaseAttributes, back.BaseAttributes)
	assert.Equal(t, c.Equipment.Armor, back.Equipment.Armor)
	assert.JSONEq(t, `{"name":"Spark"}`, string(back.Spells[0]))
}

func TestProperty_WithSkillNeverMutatesReceiver(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.SampledFrom(skill.Names()).Draw(rt, "skill")
		points := rapid.IntRange(0, 10).Draw(rt, "points")

		orig := character.New("Ilsa")
		next, err := orig.WithSkill(name, points)
		require.NoError(rt, err)

		// Property: the receiver keeps every skill at 0.
		assert.Equal(rt, 0, orig.Skills[name])
		assert.Equal(rt, points, next.Skills[name])
	})
}

func TestClone_IsDeep(t *testing.T) {
	cl := content.NewClass("Warden")
	cl.Progression.SkillPoints = []int{3, 6}
	c := character.New("Ilsa").WithClass(&cl)
	c.Equipment.Shield = &character.Gear{Name: "Buckler", DR: 1}

	cp := c.Clone()
	cp.Class.Progression.SkillPoints[0] = 99
	cp.Equipment.Shield.DR = 5
	cp.Skills["melee"] = 4

	assert.Equal(t, 3, c.Class.Progression.SkillPoints[0])
	assert.Equal(t, 1, c.Equipment.Shield.DR)
	assert.Equal(t, 0, c.Skills["melee"])
}
