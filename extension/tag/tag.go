// Package tag provides the tag extension for oktags.
// It registers commands: ls, add, rm, mv, find, show.
package tag

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpl-au/oktags/cmd"
	"github.com/jpl-au/oktags/extension"
	"github.com/jpl-au/oktags/internal/log"
	"github.com/jpl-au/oktags/internal/prompt"
	"github.com/jpl-au/oktags/internal/query"
	"github.com/jpl-au/oktags/internal/rewrite"
	"github.com/jpl-au/oktags/internal/service"
	"github.com/jpl-au/oktags/internal/tag"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	svc service.Service
}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
	_ extension.EventHandler  = (*Extension)(nil)
)

// Name returns "tag" - this extension provides the tagging commands.
func (e *Extension) Name() string { return "tag" }

// Init receives the shared service from the extension context.
func (e *Extension) Init(ctx extension.Context) error {
	e.svc = ctx.Service()
	return nil
}

// Commands returns the tagging commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newLsCmd(),
		e.newAddCmd(),
		e.newRmCmd(),
		e.newMvCmd(),
		e.newFindCmd(),
		e.newShowCmd(),
	}
}

// MCPTools returns nil - MCP tagging tools are in internal/mcp.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// HandleEvent records one audit entry per file renamed by `mv`. The command
// itself writes a single summary entry; these rows say which files moved.
//
// Tag events from add and rm are not handled: those commands touch one file
// and their own entry already names it.
func (e *Extension) HandleEvent(ctx extension.Context, evt extension.Event) error { //nolint:revive // ctx for future use
	ev, ok := evt.(extension.RenameEvent)
	if !ok {
		return nil
	}
	log.Event("tag:mv", "renamed").
		Path(ev.Path).
		Resolved(ev.NewPath).
		Detail("old", ev.Old).
		Detail("new", ev.New).
		Write(nil)
	return nil
}

// completeTags offers known tags for a comma-separated argument. Only the
// element after the last comma is completed.
func (e *Extension) completeTags(argIndex int) cobra.CompletionFunc {
	return func(_ *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) != argIndex {
			return nil, cobra.ShellCompDirectiveDefault
		}
		if err := cmd.InitExtensions(); err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		known, err := e.svc.Tags("")
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		head, last := "", toComplete
		if i := strings.LastIndex(toComplete, ","); i >= 0 {
			head, last = toComplete[:i+1], toComplete[i+1:]
		}
		var out []cobra.Completion
		for _, t := range known {
			if strings.HasPrefix(t, strings.ToLower(last)) {
				out = append(out, head+t)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
	}
}

// writer returns the human output writer, discarded under -o json.
func writer() io.Writer {
	if cmd.JSON() {
		return io.Discard
	}
	return cmd.Out()
}

func options(c *cobra.Command) tag.Options {
	tree, _ := c.Flags().GetBool(extension.FlagTree)
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	return tag.Options{Colour: cmd.Colour(), Tree: tree, Limit: limit}
}

// --- ls ---

func (e *Extension) newLsCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ls [pattern]",
		Short: "List tags with file counts",
		Long: `List every tag under a pattern, most used first, as tag(count).

  oktags ls                    # default pattern (search.pattern)
  oktags ls 'docs/**/*.pdf'    # restrict to a glob
  oktags ls --names            # tag names only, sorted`,
		Args: cobra.MaximumNArgs(1),
		RunE: e.runLs,
	}
	c.Flags().Bool(extension.FlagNames, false, "Print tag names only, sorted")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Show at most this many tags")
	return c
}

func (e *Extension) runLs(c *cobra.Command, args []string) error {
	pattern := ""
	if len(args) > 0 {
		pattern = args[0]
	}
	names, _ := c.Flags().GetBool(extension.FlagNames)

	l := log.Event("tag:ls", "list").Path(pattern)

	var result any
	var count int
	var err error
	if names {
		var tags []string
		tags, err = tag.Names(writer(), e.svc, pattern, options(c))
		result, count = tags, len(tags)
	} else {
		var counts []query.TagCount
		counts, err = tag.List(writer(), e.svc, pattern, options(c))
		result, count = counts, len(counts)
	}

	l.Detail("count", count).Write(err)

	if err != nil {
		return cmd.PrintJSONError(err)
	}
	return cmd.PrintJSON(result)
}

// --- add ---

func (e *Extension) newAddCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "add <tags> <file>",
		Short: "Add tags to a file",
		Long: `Add comma-separated tags to a file by renaming it to stem--[tags].ext.

  oktags add work,urgent notes.txt    # notes--[urgent,work].txt
  oktags add 'to read' paper.pdf      # paper--[to_read].pdf
  oktags add -i paper.pdf             # prompt, suggesting known tags`,
		Args: func(c *cobra.Command, args []string) error {
			if interactive, _ := c.Flags().GetBool(extension.FlagInteractive); interactive {
				return cobra.ExactArgs(1)(c, args)
			}
			return cobra.ExactArgs(2)(c, args)
		},
		ValidArgsFunction: e.completeTags(0),
		RunE:              e.runAdd,
	}
	c.Flags().BoolP(extension.FlagInteractive, "i", false, "Prompt for tags with suggestions")
	return c
}

func (e *Extension) runAdd(c *cobra.Command, args []string) error {
	interactive, _ := c.Flags().GetBool(extension.FlagInteractive)

	var tags, file string
	if interactive {
		file = args[0]
		// The file must exist before any prompt is shown.
		if _, err := e.svc.Show(file); err != nil {
			if errors.Is(err, rewrite.ErrFileNotFound) {
				err = fmt.Errorf("%w: %s", rewrite.ErrFileNotFound, file)
			}
			return cmd.PrintJSONError(err)
		}
		known, err := e.svc.Tags("")
		if err != nil {
			return cmd.PrintJSONError(err)
		}
		tags, err = prompt.Tags(file, known)
		if err != nil {
			if errors.Is(err, prompt.ErrAborted) {
				return nil
			}
			return cmd.PrintJSONError(err)
		}
	} else {
		tags, file = args[0], args[1]
	}

	l := log.Event("tag:add", "add").
		Path(file).
		DryRun(e.svc.DryRun()).
		Detail("tags", tags)
	if interactive {
		l.Detail("interactive", true)
	}

	result, err := tag.Add(writer(), e.svc, tags, file, options(c))
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	l.Resolved(result.NewPath).Write(nil)

	return cmd.PrintJSON(result)
}

// --- rm ---

func (e *Extension) newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <tag> <file>",
		Short: "Remove a tag from a file",
		Long: `Remove one tag from a file. Removing the last tag drops the --[...] segment;
removing a tag the file does not have changes nothing.

  oktags rm urgent notes--[urgent,work].txt    # notes--[work].txt`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: e.completeTags(0),
		RunE:              e.runRm,
	}
}

func (e *Extension) runRm(c *cobra.Command, args []string) error {
	t, file := args[0], args[1]

	l := log.Event("tag:rm", "remove").
		Path(file).
		DryRun(e.svc.DryRun()).
		Detail("tag", t)

	result, err := tag.Remove(writer(), e.svc, t, file, options(c))
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	l.Resolved(result.NewPath).Write(nil)

	return cmd.PrintJSON(result)
}

// --- mv ---

func (e *Extension) newMvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mv <old> <new-tags> [root]",
		Short: "Rename a tag on every file that has it",
		Long: `Replace tag <old> with one or more tags on every file under root.

  oktags mv todo work              # todo -> work everywhere
  oktags mv todo work,urgent docs  # split one tag into two, under docs/
  oktags mv todo work --dry-run    # show the renames only

Matching is by whole tag: renaming foo never touches foobar.`,
		Args:              cobra.RangeArgs(2, 3),
		ValidArgsFunction: e.completeTags(0),
		RunE:              e.runMv,
	}
}

func (e *Extension) runMv(c *cobra.Command, args []string) error {
	old, newTags := args[0], args[1]
	root := ""
	if len(args) > 2 {
		root = args[2]
	}

	l := log.Event("tag:mv", "rename").
		Path(root).
		DryRun(e.svc.DryRun()).
		Detail("old", old).
		Detail("new", newTags)

	result, err := tag.Rename(writer(), e.svc, old, newTags, root, options(c))

	l.Detail("changed", len(result.Changes)).Write(err)

	if err != nil {
		return cmd.PrintJSONPartial(result, err)
	}
	return cmd.PrintJSON(result)
}

// --- find ---

func (e *Extension) newFindCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "find <tags> [pattern]",
		Short: "Find files carrying all listed tags",
		Long: `Find files under a pattern that carry every comma-separated tag.

  oktags find work              # files tagged work
  oktags find work,urgent       # files tagged both
  oktags find work docs --tree  # under docs/, shown as a tree`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: e.completeTags(0),
		RunE:              e.runFind,
	}
	c.Flags().Bool(extension.FlagTree, false, "Show results as a tree")
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Show at most this many files")
	return c
}

func (e *Extension) runFind(c *cobra.Command, args []string) error {
	tags := args[0]
	pattern := ""
	if len(args) > 1 {
		pattern = args[1]
	}

	l := log.Event("tag:find", "find").
		Path(pattern).
		Detail("tags", tags)

	result, err := tag.Find(writer(), e.svc, tags, pattern, options(c))
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	l.Detail("matches", len(result.Files)).Write(nil)

	return cmd.PrintJSON(result)
}

// --- show ---

func (e *Extension) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>...",
		Short: "Show the tags of files",
		Long: `Decode and print the tags of each file. Arguments may be glob patterns.

  oktags show notes--[work].txt   # notes--[work].txt: work
  oktags show 'docs/*'`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runShow,
	}
}

func (e *Extension) runShow(_ *cobra.Command, args []string) error {
	l := log.Event("tag:show", "show").
		Path(strings.Join(args, " "))

	files, err := tag.Show(writer(), e.svc, args...)
	if err != nil {
		l.Write(err)
		return cmd.PrintJSONError(err)
	}

	l.Detail("files", len(files)).Write(nil)

	return cmd.PrintJSON(files)
}
