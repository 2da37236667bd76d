package rewrite

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/validate"
)

const (
	foo    = "/t/foo"
	bar    = "/t/bar.pdf"
	baz    = "/t/baz--[foo,bar].pdf"
	foobar = "/t/foobar--[foo,bar,baz].pdf"
)

func newFS(t *testing.T, extra ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, p := range append([]string{foo, bar, baz, foobar}, extra...) {
		require.NoError(t, afero.WriteFile(fsys, p, []byte(p), 0o644))
	}
	return fsys
}

func exists(t *testing.T, fsys afero.Fs, path string) bool {
	t.Helper()
	ok, err := afero.Exists(fsys, path)
	require.NoError(t, err)
	return ok
}

func TestAddTags(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		path string
		want string
	}{
		{"untagged no extension", "foo,bar", foo, "/t/foo--[bar,foo]"},
		{"keeps extension", "foobar", bar, "/t/bar--[foobar].pdf"},
		{"spaces become underscores", "foo bar", bar, "/t/bar--[foo_bar].pdf"},
		{"mixed case and padding", " Foo , BAR ", foo, "/t/foo--[bar,foo]"},
		{"merges with existing tags", "tag1", baz, "/t/baz--[bar,foo,tag1].pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := newFS(t)
			e := New(fsys, Options{})

			got, err := e.AddTags(tc.csv, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)

			assert.True(t, exists(t, fsys, tc.want))
			assert.False(t, exists(t, fsys, tc.path))

			data, err := afero.ReadFile(fsys, tc.want)
			require.NoError(t, err)
			assert.Equal(t, tc.path, string(data), "content travels with the rename")
		})
	}
}

func TestAddTags_ThenDecode(t *testing.T) {
	e := New(newFS(t), Options{})

	got, err := e.AddTags("b,a,b", foo)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, codec.Decode(got).Tags)
}

func TestAddTags_AlreadyPresent(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"canonical name is left alone", "/t/c--[bar,foo].pdf", "/t/c--[bar,foo].pdf"},
		{"unsorted name is sorted", baz, "/t/baz--[bar,foo].pdf"},
		{"upper-case name is lowered", "/t/d--[Foo].pdf", "/t/d--[foo].pdf"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := newFS(t, tc.path)
			got, err := New(fsys, Options{}).AddTags("FOO", tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, exists(t, fsys, tc.want))
			if tc.want != tc.path {
				assert.False(t, exists(t, fsys, tc.path))
			}
		})
	}
}

func TestAddTags_Errors(t *testing.T) {
	fsys := newFS(t, "/t/foo--[x]")
	require.NoError(t, fsys.MkdirAll("/t/dir", 0o755))
	e := New(fsys, Options{})

	tests := []struct {
		name string
		csv  string
		path string
		want error
	}{
		{"no file", "x", "", ErrMissingFile},
		{"no tags", " , ", foo, ErrMissingTag},
		{"null byte in path", "x", "/t/a\x00b", validate.ErrInvalidPath},
		{"vanished file", "x", "/t/gone.txt", ErrFileNotFound},
		{"directory", "x", "/t/dir", ErrIsDirectory},
		{"would clobber", "x", foo, ErrTargetExists},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.AddTags(tc.csv, tc.path)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.True(t, exists(t, fsys, foo), "failed add leaves the file in place")
}

func TestDeleteTag(t *testing.T) {
	tests := []struct {
		name string
		tag  string
		path string
		want string
	}{
		{"one of two", "foo", baz, "/t/baz--[bar].pdf"},
		{"normalised input", " FOO ", baz, "/t/baz--[bar].pdf"},
		{"middle tag", "baz", foobar, "/t/foobar--[bar,foo].pdf"},
		{"absent tag keeps the set", "nope", "/t/c--[bar,foo].pdf", "/t/c--[bar,foo].pdf"},
		{"absent tag still sorts the name", "nope", baz, "/t/baz--[bar,foo].pdf"},
		{"absent tag still lowers the name", "zzz", "/t/d--[Foo].pdf", "/t/d--[foo].pdf"},
		{"untagged file", "foo", foo, foo},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := newFS(t)
			if !exists(t, fsys, tc.path) {
				require.NoError(t, afero.WriteFile(fsys, tc.path, nil, 0o644))
			}
			got, err := New(fsys, Options{}).DeleteTag(tc.tag, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.True(t, exists(t, fsys, tc.want))
		})
	}
}

func TestDeleteTag_LastTagDropsSegment(t *testing.T) {
	fsys := newFS(t, "/t/only--[x].txt")

	got, err := New(fsys, Options{}).DeleteTag("x", "/t/only--[x].txt")
	require.NoError(t, err)
	assert.Equal(t, "/t/only.txt", got)
}

func TestDeleteTag_Errors(t *testing.T) {
	e := New(newFS(t), Options{})

	_, err := e.DeleteTag("foo", "")
	assert.ErrorIs(t, err, ErrMissingFile)

	_, err = e.DeleteTag("", baz)
	assert.ErrorIs(t, err, ErrMissingTag)

	_, err = e.DeleteTag("foo", "/t/gone--[foo].pdf")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestRenameTag(t *testing.T) {
	tests := []struct {
		name string
		new  string
		want []Change
	}{
		{
			name: "single new tag",
			new:  "tag1",
			want: []Change{
				{Old: baz, New: "/t/baz--[bar,tag1].pdf"},
				{Old: foobar, New: "/t/foobar--[bar,baz,tag1].pdf"},
			},
		},
		{
			name: "several new tags",
			new:  "tag1,tag2",
			want: []Change{
				{Old: baz, New: "/t/baz--[bar,tag1,tag2].pdf"},
				{Old: foobar, New: "/t/foobar--[bar,baz,tag1,tag2].pdf"},
			},
		},
		{
			name: "old tag listed among the new is still removed",
			new:  "foo,tag1",
			want: []Change{
				{Old: baz, New: "/t/baz--[bar,tag1].pdf"},
				{Old: foobar, New: "/t/foobar--[bar,baz,tag1].pdf"},
			},
		},
		{
			name: "onto an existing tag",
			new:  "bar",
			want: []Change{
				{Old: baz, New: "/t/baz--[bar].pdf"},
				{Old: foobar, New: "/t/foobar--[bar,baz].pdf"},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fsys := newFS(t)
			changes, err := New(fsys, Options{}).RenameTag("/t", "foo", tc.new)
			require.NoError(t, err)
			assert.Equal(t, tc.want, changes)

			for _, c := range changes {
				assert.True(t, exists(t, fsys, c.New), c.New)
				assert.False(t, exists(t, fsys, c.Old), c.Old)
			}
			assert.True(t, exists(t, fsys, foo), "untagged files are untouched")
			assert.True(t, exists(t, fsys, bar))
		})
	}
}

func TestRenameTag_NoSubstringMatch(t *testing.T) {
	fsys := newFS(t, "/t/a--[foobar].txt", "/t/b--[xfoo].txt")

	changes, err := New(fsys, Options{}).RenameTag("/t", "foo", "qux")
	require.NoError(t, err)
	assert.Len(t, changes, 2)
	assert.True(t, exists(t, fsys, "/t/a--[foobar].txt"))
	assert.True(t, exists(t, fsys, "/t/b--[xfoo].txt"))
}

func TestRenameTag_UnknownTag(t *testing.T) {
	changes, err := New(newFS(t), Options{}).RenameTag("/t", "nope", "x")
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestRenameTag_Errors(t *testing.T) {
	e := New(newFS(t), Options{})

	_, err := e.RenameTag("/t", "foo", "")
	assert.ErrorIs(t, err, ErrMissingRenameTarget)

	_, err = e.RenameTag("/t", " ", "x")
	assert.ErrorIs(t, err, ErrMissingTag)

	_, err = e.RenameTag("/t/[a-", "foo", "x")
	assert.ErrorIs(t, err, validate.ErrInvalidPattern)
}

func TestRenameTag_StopsOnClobber(t *testing.T) {
	fsys := newFS(t, "/t/foobar--[bar,baz,x].pdf")

	changes, err := New(fsys, Options{}).RenameTag("/t", "foo", "x")
	assert.ErrorIs(t, err, ErrTargetExists)
	assert.Equal(t, []Change{{Old: baz, New: "/t/baz--[bar,x].pdf"}}, changes)
	// The add half went through; the blocked delete leaves every tag on the name.
	assert.True(t, exists(t, fsys, "/t/foobar--[bar,baz,foo,x].pdf"))
}

func TestDryRun(t *testing.T) {
	fsys := newFS(t)
	e := New(fsys, Options{DryRun: true})
	assert.True(t, e.DryRun())

	got, err := e.AddTags("x", foo)
	require.NoError(t, err)
	assert.Equal(t, "/t/foo--[x]", got)

	got, err = e.DeleteTag("foo", baz)
	require.NoError(t, err)
	assert.Equal(t, "/t/baz--[bar].pdf", got)

	changes, err := e.RenameTag("/t", "foo", "tag1")
	require.NoError(t, err)
	assert.Equal(t, []Change{
		{Old: baz, New: "/t/baz--[bar,tag1].pdf"},
		{Old: foobar, New: "/t/foobar--[bar,baz,tag1].pdf"},
	}, changes)

	for _, p := range []string{foo, bar, baz, foobar} {
		assert.True(t, exists(t, fsys, p), "dry run leaves %s", p)
	}
	assert.False(t, exists(t, fsys, "/t/foo--[x]"))
}

func TestDryRun_StillChecks(t *testing.T) {
	e := New(newFS(t, "/t/foo--[x]"), Options{DryRun: true})

	_, err := e.AddTags("x", foo)
	assert.ErrorIs(t, err, ErrTargetExists)

	_, err = e.AddTags("x", "/t/gone")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLegacyNamesAreUpgraded(t *testing.T) {
	old := "/t/old--foo,qux.txt"
	fsys := newFS(t, old)
	e := New(fsys, Options{Codec: codec.Codec{Legacy: true}})

	got, err := e.AddTags("new", old)
	require.NoError(t, err)
	assert.Equal(t, "/t/old--[foo,new,qux].txt", got)
}

func TestLegacyNamesAreUpgraded_NoOp(t *testing.T) {
	old := "/t/old--foo,qux.txt"
	fsys := newFS(t, old)
	e := New(fsys, Options{Codec: codec.Codec{Legacy: true}})

	got, err := e.DeleteTag("absent", old)
	require.NoError(t, err)
	assert.Equal(t, "/t/old--[foo,qux].txt", got)
	assert.False(t, exists(t, fsys, old))
}

func TestDryRun_RenameDropsOldTag(t *testing.T) {
	fsys := newFS(t)

	changes, err := New(fsys, Options{DryRun: true}).RenameTag("/t", "foo", "foo,tag1")
	require.NoError(t, err)
	assert.Equal(t, []Change{
		{Old: baz, New: "/t/baz--[bar,tag1].pdf"},
		{Old: foobar, New: "/t/foobar--[bar,baz,tag1].pdf"},
	}, changes)
	assert.True(t, exists(t, fsys, baz))
}
