package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	p := NewParser([]string{"!", "/"})

	parsed, ok := p.Parse("!search fresh bread")
	require.True(t, ok)
	assert.Equal(t, "search", parsed.Command)
	assert.Equal(t, []string{"fresh", "bread"}, parsed.Args)
	assert.Equal(t, "fresh bread", parsed.RawArgs)
	assert.Equal(t, "!", parsed.Prefix)
}

func TestParseLowercasesCommandOnly(t *testing.T) {
	p := NewParser([]string{"!"})

	parsed, ok := p.Parse("!SEARCH Fresh Bread")
	require.True(t, ok)
	assert.Equal(t, "search", parsed.Command)
	assert.Equal(t, "Fresh Bread", parsed.RawArgs)
}

func TestParseAlternatePrefix(t *testing.T) {
	p := NewParser([]string{"!", "/"})

	parsed, ok := p.Parse("/menu")
	require.True(t, ok)
	assert.Equal(t, "menu", parsed.Command)
	assert.Equal(t, "/", parsed.Prefix)
	assert.Empty(t, parsed.Args)
}

func TestParseRejectsNonCommands(t *testing.T) {
	p := NewParser([]string{"!"})

	for _, text := range []string{"", "   ", "!", "!   ", "hello there"} {
		_, ok := p.Parse(text)
		assert.False(t, ok, "expected %q not to parse", text)
	}
}

func TestIsCommand(t *testing.T) {
	p := NewParser([]string{"!"})

	assert.True(t, p.IsCommand("!menu"))
	assert.True(t, p.IsCommand("  !menu"))
	assert.False(t, p.IsCommand("menu!"))
	assert.False(t, p.IsCommand("what's on the menu?"))
}

func TestDetectIntentPriority(t *testing.T) {
	p := NewParser([]string{"!"})

	// "order" outranks "browse" even when both patterns match.
	intent, ok := p.DetectIntent("I want to order a pizza")
	require.True(t, ok)
	assert.Equal(t, IntentOrder, intent)

	intent, ok = p.DetectIntent("show me what you have")
	require.True(t, ok)
	assert.Equal(t, IntentBrowse, intent)

	intent, ok = p.DetectIntent("hello!")
	require.True(t, ok)
	assert.Equal(t, IntentGreet, intent)
}

func TestDetectIntentCaseInsensitive(t *testing.T) {
	p := NewParser([]string{"!"})

	intent, ok := p.DetectIntent("WHERE IS my delivery")
	require.True(t, ok)
	assert.Equal(t, IntentTrack, intent)
}

func TestDetectIntentNoMatch(t *testing.T) {
	p := NewParser([]string{"!"})

	_, ok := p.DetectIntent("zzz qqq xyzzy")
	assert.False(t, ok)
}
