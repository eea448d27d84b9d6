package profession_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/apothecary/internal/game/profession"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefault_AllProfessions(t *testing.T) {
	c, err := profession.LoadDefault()
	require.NoError(t, err)
	require.Equal(t, 6, c.Len())

	all := c.All()
	for i, id := range profession.IDs() {
		assert.Equal(t, id, all[i].ID, "declaration order")
	}
}

func TestLoadDefault_AbilityTablesAscending(t *testing.T) {
	c, err := profession.LoadDefault()
	require.NoError(t, err)
	for _, p := range c.All() {
		require.NotEmpty(t, p.Abilities, "%s has abilities", p.ID)
		for i := 1; i < len(p.Abilities); i++ {
			assert.Less(t, p.Abilities[i-1].UnlockLevel, p.Abilities[i].UnlockLevel, "%s", p.ID)
		}
		assert.NotEmpty(t, p.Titles.Base)
		assert.NotEmpty(t, p.Titles.Master)
		assert.NotEmpty(t, p.Titles.Legendary)
	}
}

func TestLoadDefault_TypedValues(t *testing.T) {
	c, err := profession.LoadDefault()
	require.NoError(t, err)
	alch, ok := c.Get(profession.Alchemist)
	require.True(t, ok)

	v, ok := alch.Abilities[2].Defines(profession.PreventSludge)
	require.True(t, ok)
	assert.Equal(t, profession.KindFlag, v.Kind())
	assert.True(t, v.Bool())

	surgeon, _ := c.Get(profession.Surgeon)
	v, ok = surgeon.Abilities[0].Defines(profession.BloodlettingDCReduction)
	require.True(t, ok)
	assert.Equal(t, profession.KindFlat, v.Kind())
	assert.Equal(t, 1, v.Int())
}

func TestLoadDirectory_RejectsUnknownModifier(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "alchemist.yaml"), `
id: alchemist
name: Alchemist
titles: {base: A, master: B, legendary: C}
abilities:
  - level: 5
    name: Odd
    modifiers:
      luck: 2
`)
	_, err := profession.LoadDirectory(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "luck")
}

func TestLoadDirectory_RejectsWrongKind(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "alchemist.yaml"), `
id: alchemist
name: Alchemist
titles: {base: A, master: B, legendary: C}
abilities:
  - level: 5
    name: Odd
    modifiers:
      preventSludge: 1
`)
	_, err := profession.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_RejectsUnknownField(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "alchemist.yaml"), `
id: alchemist
name: Alchemist
colour: green
titles: {base: A, master: B, legendary: C}
`)
	_, err := profession.LoadDirectory(dir)
	assert.Error(t, err)
}

func TestLoadDirectory_SortsAbilities(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "herbalist.yaml"), `
id: herbalist
name: Herbalist
titles: {base: A, master: B, legendary: C}
abilities:
  - level: 10
    name: Later
  - level: 5
    name: Earlier
`)
	c, err := profession.LoadDirectory(dir)
	require.NoError(t, err)
	p, ok := c.Get(profession.Herbalist)
	require.True(t, ok)
	assert.Equal(t, "Earlier", p.Abilities[0].Name)
	assert.Equal(t, "Later", p.Abilities[1].Name)
}

func TestNewCatalog_Validation(t *testing.T) {
	titles := profession.Titles{Base: "a", Master: "b", Legendary: "c"}
	_, err := profession.NewCatalog(&profession.Profession{ID: "wizard", Name: "Wizard", Titles: titles})
	assert.Error(t, err, "unknown id")

	p := &profession.Profession{ID: profession.Surgeon, Name: "Surgeon", Titles: titles}
	_, err = profession.NewCatalog(p, p)
	assert.Error(t, err, "duplicate id")

	_, err = profession.NewCatalog(&profession.Profession{
		ID: profession.Surgeon, Name: "Surgeon", Titles: titles,
		Abilities: []profession.Ability{{UnlockLevel: 5}, {UnlockLevel: 5}},
	})
	assert.Error(t, err, "duplicate unlock level")

	_, err = profession.NewCatalog(&profession.Profession{ID: profession.Surgeon, Name: "Surgeon"})
	assert.Error(t, err, "missing titles")
}

func TestCatalog_OwnsItsData(t *testing.T) {
	titles := profession.Titles{Base: "a", Master: "b", Legendary: "c"}
	mods := map[profession.Key]profession.Value{profession.DiagnosisBonus: profession.Flat(2)}
	c := profession.MustCatalog(&profession.Profession{
		ID: profession.Surgeon, Name: "Surgeon", Titles: titles,
		Abilities: []profession.Ability{{UnlockLevel: 5, Name: "steady", Modifiers: mods}},
	})
	mods[profession.DiagnosisBonus] = profession.Flat(9)

	got, ok := c.Get(profession.Surgeon)
	require.True(t, ok)
	got.Name = "Butcher"
	got.Abilities[0].Modifiers[profession.DiagnosisBonus] = profession.Flat(50)
	c.All()[0].Abilities[0].Name = "shaky"

	again, _ := c.Get(profession.Surgeon)
	assert.Equal(t, "Surgeon", again.Name)
	assert.Equal(t, "steady", again.Abilities[0].Name)
	v, _ := again.Abilities[0].Defines(profession.DiagnosisBonus)
	assert.Equal(t, 2, v.Int())
}

func TestChoice(t *testing.T) {
	var zero profession.Choice
	assert.False(t, zero.IsChosen())
	assert.Equal(t, profession.Unchosen(), zero)
	assert.Equal(t, "unchosen", zero.String())

	c := profession.Chosen(profession.Poisoner)
	id, ok := c.Profession()
	assert.True(t, ok)
	assert.Equal(t, profession.Poisoner, id)
}

func TestParseValue(t *testing.T) {
	v, err := profession.ParseValue(profession.XPMultiplier, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v.Float(), 1e-9)

	_, err = profession.ParseValue(profession.XPMultiplier, 0.0)
	assert.Error(t, err, "multipliers must be positive")

	_, err = profession.ParseValue(profession.DoubleBatchChance, 1.5)
	assert.Error(t, err, "probabilities are bounded")

	_, err = profession.ParseValue(profession.PassiveIncomePerDay, 2.5)
	assert.Error(t, err, "flat values are integers")

	_, err = profession.ParseValue(profession.PassiveIncomePerDay, "ten")
	assert.Error(t, err)
}

func TestKeys_AllHaveKinds(t *testing.T) {
	for _, k := range profession.Keys() {
		_, ok := profession.KindOf(k)
		assert.True(t, ok, "%s", k)
	}
}

// Property: Ordinal agrees with IDs for every known profession.
func TestProperty_OrdinalMatchesDeclaration(t *testing.T) {
	ids := profession.IDs()
	rapid.Check(t, func(rt *rapid.T) {
		i := rapid.IntRange(0, len(ids)-1).Draw(rt, "i")
		assert.Equal(rt, i, profession.Ordinal(ids[i]))
		assert.True(rt, profession.Known(ids[i]))
	})
}
