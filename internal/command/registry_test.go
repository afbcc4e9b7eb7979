package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLoadsCatalog(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)
	assert.NotEmpty(t, r.All())
}

func TestRegistryResolvesAliases(t *testing.T) {
	r := MustRegistry()

	byCanonical, ok := r.Resolve("menu")
	require.True(t, ok)
	byAlias, ok := r.Resolve("m")
	require.True(t, ok)
	assert.Same(t, byCanonical, byAlias)

	d, ok := r.Resolve("advertise")
	require.True(t, ok)
	assert.Equal(t, "boost", d.Canonical)

	_, ok = r.Resolve("nosuchcommand")
	assert.False(t, ok)
}

// Every token in the catalog must be globally unique; a duplicate
// would silently shadow a command.
func TestCatalogHasNoTokenCollisions(t *testing.T) {
	seen := make(map[string]string)
	for _, d := range catalog {
		tokens := append([]string{d.Canonical}, d.Aliases...)
		for _, token := range tokens {
			if owner, dup := seen[token]; dup {
				t.Fatalf("token %q registered by both %q and %q", token, owner, d.Canonical)
			}
			seen[token] = d.Canonical
		}
	}
}

func TestRegistryRejectsCollisions(t *testing.T) {
	r := &Registry{
		byToken:    make(map[string]*Descriptor),
		byCategory: make(map[Category][]*Descriptor),
	}
	first := &Descriptor{Canonical: "alpha", Category: CategoryTools}
	second := &Descriptor{Canonical: "beta", Aliases: []string{"alpha"}, Category: CategoryTools}

	require.NoError(t, r.register(first))
	assert.Error(t, r.register(second))
}

func TestListByCategory(t *testing.T) {
	r := MustRegistry()

	cmds := r.ListByCategory(CategoryCart)
	require.NotEmpty(t, cmds)
	for _, d := range cmds {
		assert.Equal(t, CategoryCart, d.Category)
	}
}

func TestMainMenuCoversAllCategories(t *testing.T) {
	r := MustRegistry()

	menu := r.MainMenu("Test Bot")
	require.Len(t, menu.Sections, 1)
	assert.Len(t, menu.Sections[0].Rows, len(r.Categories()))
	for _, row := range menu.Sections[0].Rows {
		assert.Contains(t, row.ID, "category:")
	}
}

func TestHelpFor(t *testing.T) {
	r := MustRegistry()

	help, ok := r.HelpFor("checkout")
	require.True(t, ok)
	assert.Contains(t, help.Body, "!checkout")

	_, ok = r.HelpFor("bogus")
	assert.False(t, ok)
}
