/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go defines global CLI flags and accessors for shared state.
//
// Separated from root.go to isolate flag definitions from command logic.
// Extensions access these via exported accessor functions rather than
// directly accessing the variables.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var validOutputFormats = []string{"json"}

var (
	output string
	dryRun bool
	hidden bool
)

// out is the output writer for commands. Defaults to os.Stdout.
// Tests can replace this to capture output.
var out io.Writer = os.Stdout

// Out returns the output writer.
func Out() io.Writer { return out }

// SetOut sets the output writer (for testing).
func SetOut(w io.Writer) { out = w }

// Output returns the output format flag value.
func Output() string { return output }

// DryRun returns the --dry-run flag value.
func DryRun() bool { return dryRun }

// Hidden returns the --hidden flag value.
func Hidden() bool { return hidden }

// JSON returns true if JSON output is requested.
func JSON() bool { return output == "json" }

// Colour reports whether output goes to a terminal and may carry ANSI colour.
func Colour() bool {
	return out == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// PrintJSON marshals v to JSON and writes it to the output writer.
// Returns nil if output format is not JSON.
func PrintJSON(v any) error {
	if output != "json" {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(out, string(b))
	return nil
}

// PrintJSONError prints err as {"error": "..."} if output is JSON and stops
// cobra printing it a second time. The error is always returned so the
// process still exits non-zero.
func PrintJSONError(err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(map[string]string{"error": err.Error()})
	rootCmd.SilenceErrors = true
	return err
}

// PrintJSONPartial prints v in place of the bare error envelope when a
// failed command still has a result to report. v is expected to carry err in
// its own "error" field. The error is returned for the exit code.
func PrintJSONPartial(v any, err error) error {
	if output != "json" || err == nil {
		return err
	}
	_ = PrintJSON(v)
	rootCmd.SilenceErrors = true
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format: json")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Show renames without performing them")
	rootCmd.PersistentFlags().BoolVar(&hidden, "hidden", false, "Include dot files in walks")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return validOutputFormats, cobra.ShellCompDirectiveNoFileComp
	})
}
