/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, builds the tag service and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern lets extensions declare
// commands before config is read. The service is created once and shared
// across all extensions via the Context.

package cmd

import (
	"fmt"
	"sync"

	"github.com/spf13/afero"

	"github.com/jpl-au/oktags/extension"
	"github.com/jpl-au/oktags/internal/config"
	"github.com/jpl-au/oktags/internal/tree"
)

// standaloneCommands lists commands that bypass service initialisation.
// Built from cobra's own commands plus extension-declared standalone commands.
var standaloneCommands map[string]bool

// buildStandaloneCommands creates the set of commands that skip service
// initialisation. Extensions declare theirs through extension.Standalone.
func buildStandaloneCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}

	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Standalone); ok {
			for _, name := range s.StandaloneCommands() {
				cmds[name] = true
			}
		}
	}

	return cmds
}

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	extService *tree.Service
	initOnce   sync.Once
	initErr    error
)

// InitExtensions loads config, creates the tag service and injects it into
// extensions. Safe to call more than once; shell completion calls it
// directly because cobra skips PersistentPreRunE for completions.
func InitExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}

		opts := tree.OptionsFrom(cfg)
		opts.DryRun = dryRun
		opts.IncludeHidden = opts.IncludeHidden || hidden

		svc := tree.New(afero.NewOsFs(), opts)
		extService = svc
		extContext = extension.NewContext(svc, cfg)
		svc.SetExtensionContext(extContext)

		// Inject the shared context into all Initializable extensions.
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build standaloneCommands after all extensions are registered
		standaloneCommands = buildStandaloneCommands()
	})
}
