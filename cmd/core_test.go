package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		env := newTestEnv(t)

		out := env.run("config")
		env.contains(out, "search.pattern: **/*")
		env.contains(out, "walk.hidden: false")
	})

	t.Run("set then get", func(t *testing.T) {
		env := newTestEnv(t)

		env.contains(env.run("config", "decode.legacy", "true"), "decode.legacy = true (global)")
		env.equals(env.run("config", "decode.legacy"), "true")

		_, err := os.Stat(filepath.Join(env.home, ".oktags", "config.yaml"))
		require.NoError(t, err)
	})

	t.Run("local", func(t *testing.T) {
		env := newTestEnv(t)

		env.contains(env.run("config", "--local", "search.pattern", "docs/**/*"), "(local)")
		_, err := os.Stat(filepath.Join(env.dir, ".oktags", "config.yaml"))
		require.NoError(t, err)
		env.equals(env.run("config", "search.pattern"), "docs/**/*")
	})

	t.Run("unknown key", func(t *testing.T) {
		env := newTestEnv(t)

		out, err := env.runErr("config", "no.such.key")
		require.Error(t, err)
		env.contains(out, "unknown config key")
	})

	t.Run("invalid value", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.runErr("config", "walk.hidden", "maybe")
		require.Error(t, err)
	})

	t.Run("hidden from config", func(t *testing.T) {
		env := newTestEnv(t, "a--[x]", ".b--[y]")

		env.run("config", "walk.hidden", "true")
		assert.Equal(t, []string{"x", "y"}, lines(env.run("ls", "--names")))
	})

	t.Run("legacy names", func(t *testing.T) {
		env := newTestEnv(t, "old--a,b.pdf")

		assert.Empty(t, lines(env.run("ls", "--names")))

		env.run("config", "decode.legacy", "true")
		assert.Equal(t, []string{"a", "b"}, lines(env.run("ls", "--names")))

		env.run("add", "c", "old--a,b.pdf")
		assert.Equal(t, []string{"old--[a,b,c].pdf"}, env.files())
	})

	t.Run("json", func(t *testing.T) {
		env := newTestEnv(t)

		var all map[string]string
		require.NoError(t, json.Unmarshal(env.stdout("config", "-o", "json"), &all))
		assert.Equal(t, "**/*", all["search.pattern"])
	})
}

func TestGuide(t *testing.T) {
	env := newTestEnv(t)

	env.contains(env.run("guide"), "# oktags")
	env.contains(env.run("guide", "format"), "# Filename format")
	env.contains(env.run("guide", "rename"), "# oktags mv")

	out, err := env.runErr("guide", "nope")
	require.Error(t, err)
	env.contains(out, "Available:")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)

	env.contains(env.run("version"), "Go Version:")

	var info map[string]string
	require.NoError(t, json.Unmarshal(env.stdout("version", "-o", "json"), &info))
	assert.NotEmpty(t, info)
}

func TestInvalidOutputFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.runErr("ls", "-o", "xml")
	require.Error(t, err)
}
