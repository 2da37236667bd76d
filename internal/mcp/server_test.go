package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupHandlers returns handlers over an in-memory tree, with HOME and the
// working directory isolated so no real config is read or written.
func setupHandlers(t *testing.T, opts Options) (*handlers, afero.Fs) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	t.Chdir(t.TempDir())

	fsys := afero.NewMemMapFs()
	for _, p := range []string{"/t/foo", "/t/bar.pdf", "/t/baz--[foo,bar].pdf", "/t/foobar--[foo,bar,baz].pdf", "/t/.hid--[secret]"} {
		require.NoError(t, afero.WriteFile(fsys, p, nil, 0o644))
	}
	_, h, err := newServer(fsys, opts)
	require.NoError(t, err)
	return h, fsys
}

func request(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

// text returns the text of a single-content result.
func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func decode(t *testing.T, res *mcp.CallToolResult, v any) {
	t.Helper()
	require.False(t, res.IsError, text(t, res))
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), v))
}

func TestListTags(t *testing.T) {
	h, _ := setupHandlers(t, Options{})

	res, err := h.listTags(context.Background(), request(map[string]any{"pattern": "/t/**/*"}))
	require.NoError(t, err)

	var counts []struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}
	decode(t, res, &counts)
	require.Len(t, counts, 3)
	assert.Equal(t, "bar", counts[0].Tag)
	assert.Equal(t, 2, counts[0].Count)
}

func TestListTags_Hidden(t *testing.T) {
	h, _ := setupHandlers(t, Options{Hidden: true})

	res, err := h.listTags(context.Background(), request(map[string]any{"pattern": "/t/**/*"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "secret")
}

func TestAddTags(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		newPath string
		changed bool
		onDisk  string
	}{
		{
			name:    "add",
			args:    map[string]any{"path": "/t/bar.pdf", "tags": "x, To Read"},
			newPath: "/t/bar--[to_read,x].pdf",
			changed: true,
			onDisk:  "/t/bar--[to_read,x].pdf",
		},
		{
			name:    "existing tag",
			args:    map[string]any{"path": "/t/baz--[foo,bar].pdf", "tags": "foo"},
			newPath: "/t/baz--[bar,foo].pdf",
			changed: true,
			onDisk:  "/t/baz--[bar,foo].pdf",
		},
		{
			name:    "dry run",
			args:    map[string]any{"path": "/t/foo", "tags": "x", "dry_run": true},
			newPath: "/t/foo--[x]",
			changed: true,
			onDisk:  "/t/foo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, fsys := setupHandlers(t, Options{})

			res, err := h.addTags(context.Background(), request(tt.args))
			require.NoError(t, err)

			var out struct {
				NewPath string `json:"new_path"`
				Changed bool   `json:"changed"`
			}
			decode(t, res, &out)
			assert.Equal(t, tt.newPath, out.NewPath)
			assert.Equal(t, tt.changed, out.Changed)

			ok, err := afero.Exists(fsys, tt.onDisk)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestAddTags_Errors(t *testing.T) {
	h, _ := setupHandlers(t, Options{})

	res, err := h.addTags(context.Background(), request(map[string]any{"tags": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "path is required", text(t, res))

	res, err = h.addTags(context.Background(), request(map[string]any{"path": "/t/gone", "tags": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "file not found")
}

func TestRemoveTag(t *testing.T) {
	h, fsys := setupHandlers(t, Options{})

	res, err := h.removeTag(context.Background(), request(map[string]any{"path": "/t/baz--[foo,bar].pdf", "tag": "foo"}))
	require.NoError(t, err)

	var out struct {
		NewPath string   `json:"new_path"`
		Tags    []string `json:"tags"`
	}
	decode(t, res, &out)
	assert.Equal(t, "/t/baz--[bar].pdf", out.NewPath)
	assert.Equal(t, []string{"bar"}, out.Tags)

	ok, err := afero.Exists(fsys, "/t/baz--[bar].pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRenameTag(t *testing.T) {
	h, fsys := setupHandlers(t, Options{})

	res, err := h.renameTag(context.Background(), request(map[string]any{"old": "foo", "new": "tag1", "root": "/t"}))
	require.NoError(t, err)

	var out struct {
		Old     string   `json:"old"`
		New     []string `json:"new"`
		Changes []struct {
			Old string `json:"old"`
			New string `json:"new"`
		} `json:"changes"`
	}
	decode(t, res, &out)
	assert.Equal(t, "foo", out.Old)
	assert.Equal(t, []string{"tag1"}, out.New)
	require.Len(t, out.Changes, 2)
	assert.Equal(t, "/t/baz--[bar,tag1].pdf", out.Changes[0].New)

	ok, err := afero.Exists(fsys, "/t/foobar--[bar,baz,tag1].pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRenameTag_DryRun(t *testing.T) {
	h, fsys := setupHandlers(t, Options{})

	res, err := h.renameTag(context.Background(), request(map[string]any{"old": "foo", "new": "tag1", "root": "/t", "dry_run": true}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "\"dry_run\": true")

	ok, err := afero.Exists(fsys, "/t/baz--[foo,bar].pdf")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, h.service().DryRun())
}

func TestRenameTag_MissingTarget(t *testing.T) {
	h, _ := setupHandlers(t, Options{})

	res, err := h.renameTag(context.Background(), request(map[string]any{"old": "foo", "new": " , "}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "missing rename target")
}

func TestFindFiles(t *testing.T) {
	h, _ := setupHandlers(t, Options{})

	res, err := h.findFiles(context.Background(), request(map[string]any{"tags": "bar,baz", "pattern": "/t/**/*"}))
	require.NoError(t, err)

	var files []string
	decode(t, res, &files)
	assert.Equal(t, []string{"/t/foobar--[foo,bar,baz].pdf"}, files)
}

func TestShowTags(t *testing.T) {
	h, _ := setupHandlers(t, Options{})

	res, err := h.showTags(context.Background(), request(map[string]any{"paths": []any{"/t/foo", "/t/baz--[foo,bar].pdf"}}))
	require.NoError(t, err)

	var files []struct {
		Path string   `json:"path"`
		Tags []string `json:"tags"`
	}
	decode(t, res, &files)
	require.Len(t, files, 2)
	assert.Empty(t, files[0].Tags)
	assert.Equal(t, []string{"bar", "foo"}, files[1].Tags)

	res, err = h.showTags(context.Background(), request(map[string]any{}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestConfigSet_Reloads(t *testing.T) {
	h, _ := setupHandlers(t, Options{})
	assert.Equal(t, "**/*", h.service().Pattern())

	res, err := h.configSet(context.Background(), request(map[string]any{"key": "search.pattern", "value": "/t/**/*.pdf"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Equal(t, "/t/**/*.pdf", h.service().Pattern())

	res, err = h.configGet(context.Background(), request(map[string]any{"key": "search.pattern"}))
	require.NoError(t, err)
	assert.Contains(t, text(t, res), "/t/**/*.pdf")

	res, err = h.configSet(context.Background(), request(map[string]any{"key": "bogus", "value": "x"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestGetStrings(t *testing.T) {
	tests := []struct {
		name string
		args map[string]any
		want []string
	}{
		{"array", map[string]any{"p": []any{"a", 1, "b"}}, []string{"a", "b"}},
		{"single string", map[string]any{"p": "a"}, []string{"a"}},
		{"absent", map[string]any{}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, getStrings(request(tt.args), "p"))
		})
	}
}

func TestRemoveTag_LegacyName(t *testing.T) {
	h, fsys := setupHandlers(t, Options{})
	require.NoError(t, afero.WriteFile(fsys, "/t/old--a,b.txt", nil, 0o644))

	res, err := h.configSet(context.Background(), request(map[string]any{"key": "decode.legacy", "value": "true"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	res, err = h.removeTag(context.Background(), request(map[string]any{"path": "/t/old--a,b.txt", "tag": "zzz"}))
	require.NoError(t, err)

	var out struct {
		NewPath string   `json:"new_path"`
		Tags    []string `json:"tags"`
	}
	decode(t, res, &out)
	assert.Equal(t, "/t/old--[a,b].txt", out.NewPath)
	assert.Equal(t, []string{"a", "b"}, out.Tags)
}
