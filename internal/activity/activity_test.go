package activity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentNewestFirst(t *testing.T) {
	l := NewLog(10)
	l.Record("u1", "menu", "ok")
	l.Record("u2", "cart", "error")

	entries := l.Recent(5)
	require.Len(t, entries, 2)
	assert.Equal(t, "cart", entries[0].Command)
	assert.Equal(t, "menu", entries[1].Command)
}

func TestCapEvictsOldest(t *testing.T) {
	l := NewLog(3)
	for i := 0; i < 5; i++ {
		l.Record("u", fmt.Sprintf("cmd%d", i), "ok")
	}

	assert.Equal(t, 3, l.Len())
	entries := l.Recent(0)
	require.Len(t, entries, 3)
	assert.Equal(t, "cmd4", entries[0].Command)
	assert.Equal(t, "cmd2", entries[2].Command)
}
