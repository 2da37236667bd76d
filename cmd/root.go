/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE builds the tag service lazily - only commands
// that need it trigger extension init. Standalone commands (guide, config,
// version, serve) run without it, so a broken config can still be repaired
// with "oktags config".

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jpl-au/oktags/internal/config"
	"github.com/jpl-au/oktags/internal/log"
	"github.com/jpl-au/oktags/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "oktags",
	Short: "Tag files by name",
	Long: `Tags stored in file names: stem--[tag1,tag2].ext.

List, add, remove, rename and search tags across a directory tree. There is
no database; every command reads the names on disk.`,
	Version:      version.Short(),
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// PersistentPreRunE is assigned in init because it calls PrintJSONError,
// which refers back to rootCmd.
func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		// Initialise extensions for commands that need the service
		if !standaloneCommands[topLevelCmdName(cmd)] {
			if err := InitExtensions(); err != nil {
				return PrintJSONError(fmt.Errorf("initialise extensions: %w", err))
			}
		}

		return nil
	}
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "oktags config walk.hidden", returns "config".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and handles process lifecycle.
// Opens audit logging, registers extensions and executes the command.
// Exit code 1 indicates error.
func Execute() {
	openAudit()
	defer log.Close()

	registerExtensions()
	err := rootCmd.Execute()

	if err != nil {
		log.Close()
		os.Exit(1)
	}
}

// openAudit opens the audit log unless audit.enabled is false. A config
// that fails to load leaves auditing on; the command itself reports the
// config error.
func openAudit() {
	if cfg, err := config.Load(); err == nil && !cfg.AuditEnabled() {
		return
	}
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
		return
	}
	if wd, err := os.Getwd(); err == nil {
		log.SetProject(wd)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
