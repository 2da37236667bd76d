package guide

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Default(t *testing.T) {
	content, err := Get("")
	require.NoError(t, err)
	assert.Contains(t, content, "oktags")
}

func TestGet_Aliases(t *testing.T) {
	for alias, page := range aliases {
		want, err := Get(page)
		require.NoError(t, err, page)
		got, err := Get(alias)
		require.NoError(t, err, alias)
		assert.Equal(t, want, got, alias)
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestList(t *testing.T) {
	names, err := List()
	require.NoError(t, err)
	assert.Subset(t, names, []string{"add", "config", "find", "format", "ls", "mv", "rm", "serve", "show"})
	assert.NotContains(t, names, "guide")
}
