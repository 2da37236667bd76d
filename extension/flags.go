// flags.go defines constants for command-level flag names.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "paths-only" -> FlagPathsOnly). Global flags (--output,
// --dry-run, --hidden) live on the root command in package cmd.

package extension

const (
	// Boolean flags

	FlagInteractive = "interactive" // Prompt for input
	FlagLocal       = "local"       // Use local scope
	FlagNames       = "names"       // Print tag names without counts
	FlagTree        = "tree"        // Tree view output

	// Integer flags

	FlagLimit = "limit" // Limit number of results
)
