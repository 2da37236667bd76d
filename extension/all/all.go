// Package all imports all core oktags extensions.
// Import this package to register all built-in commands.
package all

import (
	// Core extensions - each registers itself via init()
	_ "github.com/jpl-au/oktags/extension/core"
	_ "github.com/jpl-au/oktags/extension/tag"
)
