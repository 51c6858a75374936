package sheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/avrellant/internal/content"
	"github.com/cory-johannsen/avrellant/internal/game/attribute"
	"github.com/cory-johannsen/avrellant/internal/game/character"
	"github.com/cory-johannsen/avrellant/internal/game/sheet"
)

const talents = `
# Iron Will
Type: Passive
Effect: Resist fear.

# Arcane Ward
Requires: 3 Agility, 3rd level, Spellcaster, Iron Will
Effect: Ward an ally.

# Giant Grip
Requires: 6 Strength
`

func buildCharacter(t *testing.T) *character.Character {
	t.Helper()
	race := content.NewRace("Orc")
	race.Size = 2
	race.Attributes = attribute.Block{Str: 2}
	bg := content.NewBackground("Soldier")
	bg.Attributes = attribute.Block{Wil: 1}
	bg.Money = 20
	cl := content.NewClass("Mage")
	cl.Spellcaster = true
	cl.SkillPoints = 4
	cl.Defences = content.Defences{Evasion: 1, Grit: 2, Intuition: 3}

	c, err := character.New("Ilsa").
		WithRace(&race).
		WithBackground(&bg).
		WithClass(&cl).
		WithBaseAttributes(attribute.Block{Agi: 3, Gui: 1, Int: 4, Per: 2, Str: 1, Wil: 1}).
		WithSkill("lore", 3)
	require.NoError(t, err)
	return c
}

func TestRecalculate_RefreshesAttributesAndDerived(t *testing.T) {
	c := buildCharacter(t)
	c.Attributes = attribute.Block{Agi: 99}

	out := sheet.Recalculate(c)

	assert.Equal(t, attribute.Block{Agi: 3, Gui: 1, Int: 4, Per: 2, Str: 3, Wil: 2}, out.Attributes)
	assert.Equal(t, 6, out.DerivedStats.Speed)
	assert.Equal(t, 7, out.DerivedStats.Encumbrance)
	assert.Equal(t, 5, out.DerivedStats.Thresholds.Wounds)
	assert.Equal(t, 5, out.DerivedStats.Defences.Evasion)
	assert.Equal(t, 99, c.Attributes.Agi, "receiver must not change")
}

func TestCompute(t *testing.T) {
	lib, err := content.Parse(content.KindTalent, talents)
	require.NoError(t, err)
	c := buildCharacter(t).WithTalent(lib.Talents[0])
	c, err = c.WithLevel(3)
	require.NoError(t, err)
	c.Equipment.Items = append(c.Equipment.Items, character.Gear{Name: "Anvil", Encumbrance: 8})

	s := sheet.Compute(c, lib)

	assert.Equal(t, "Ilsa", s.Name)
	assert.Equal(t, 3, s.Level)
	assert.True(t, s.SkillBudget.Valid)
	assert.Equal(t, 8, s.SkillBudget.Available)
	assert.Equal(t, 3, s.SkillBudget.Spent)
	assert.Equal(t, 8, s.Load)
	assert.True(t, s.OverEncumbered)
	assert.Equal(t, []string{"Iron Will"}, s.HeldTalents)
	assert.Equal(t, []string{"Arcane Ward"}, s.EligibleTalents)

	require.Len(t, s.Skills, 12)
	lore := s.Skills[4]
	assert.Equal(t, "lore", lore.Name)
	assert.Equal(t, attribute.Intellect, lore.Attribute)
	assert.Equal(t, 7, lore.Modifier)
}

func TestCompute_NilLibrary(t *testing.T) {
	s := sheet.Compute(buildCharacter(t), nil)
	assert.Empty(t, s.EligibleTalents)
	assert.NotNil(t, s.EligibleTalents)
}
