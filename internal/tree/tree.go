// Package tree implements service.Service over a directory tree.
//
// The Service holds no state beyond its options: every call walks the
// filesystem through afero, so production code runs on the real disk and
// tests run on an in-memory tree with the same code paths.
package tree

import (
	"github.com/spf13/afero"

	"github.com/jpl-au/oktags/extension"
	"github.com/jpl-au/oktags/internal/codec"
	"github.com/jpl-au/oktags/internal/config"
	"github.com/jpl-au/oktags/internal/index"
	"github.com/jpl-au/oktags/internal/log"
	"github.com/jpl-au/oktags/internal/rewrite"
	"github.com/jpl-au/oktags/internal/service"
)

// Options configures a Service.
type Options struct {
	Pattern       string // Default walk pattern; "" means config.DefaultPattern
	Legacy        bool   // Also decode unbracketed names
	IncludeHidden bool   // Walk dot files
	DryRun        bool   // Plan renames without moving files
}

// OptionsFrom maps loaded configuration onto Options.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Pattern:       cfg.Pattern(),
		Legacy:        cfg.Legacy(),
		IncludeHidden: cfg.Hidden(),
	}
}

// Service implements service.Service on an afero filesystem.
type Service struct {
	fs     afero.Fs
	opts   Options
	walk   index.Options
	engine *rewrite.Engine
	extCtx extension.Context
}

var _ service.Service = (*Service)(nil)

// New creates a Service on fsys.
func New(fsys afero.Fs, opts Options) *Service {
	if opts.Pattern == "" {
		opts.Pattern = config.DefaultPattern
	}
	c := codec.Codec{Legacy: opts.Legacy}
	return &Service{
		fs:   fsys,
		opts: opts,
		walk: index.Options{Codec: c, IncludeHidden: opts.IncludeHidden},
		engine: rewrite.New(fsys, rewrite.Options{
			DryRun:        opts.DryRun,
			Codec:         c,
			IncludeHidden: opts.IncludeHidden,
		}),
	}
}

// Pattern returns the default walk pattern.
func (s *Service) Pattern() string { return s.opts.Pattern }

// DryRun reports whether mutating calls only plan their changes.
func (s *Service) DryRun() bool { return s.opts.DryRun }

// Decode parses the tags of path with the Service's codec.
func (s *Service) Decode(path string) codec.Name { return s.walk.Codec.Decode(path) }

// Options returns the options the Service was built with.
func (s *Service) Options() Options { return s.opts }

// SetExtensionContext sets the extension context for firing events.
// Called from cmd after creating the context.
func (s *Service) SetExtensionContext(ctx extension.Context) {
	s.extCtx = ctx
}

// pattern resolves an empty pattern to the default.
func (s *Service) pattern(p string) string {
	if p == "" {
		return s.opts.Pattern
	}
	return p
}

// fireEvent notifies extensions after a real (not planned) change.
// Handler errors are logged, never returned: the rename already happened.
func (s *Service) fireEvent(e extension.Event) {
	if s.extCtx == nil || s.opts.DryRun {
		return
	}
	for name, err := range extension.Dispatch(s.extCtx, e) {
		log.Event("event:error", "error").
			Path(e.EventPath()).
			Detail("ext", name).
			Detail("event", string(e.EventType())).
			Write(err)
	}
}
