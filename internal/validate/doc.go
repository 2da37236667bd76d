// Package validate provides input validation for oktags' user-facing inputs.
//
// This package enforces the rules at the boundary between command-line (or
// MCP) input and the filesystem. Each validation function returns nil on
// success or a descriptive error on failure.
//
// # Validation Functions
//
// Tag validates a single tag after normalisation.
// Pattern validates a glob pattern before a walk starts.
// Path validates a file path before it is rewritten.
//
// # Error Handling
//
// All validation errors wrap one of the sentinel errors defined in errors.go
// (ErrInvalidTag, ErrInvalidPattern, ErrInvalidPath). Use errors.Is() for
// type-safe error checking:
//
//	if errors.Is(err, validate.ErrInvalidTag) {
//	    // handle invalid tag
//	}
package validate
