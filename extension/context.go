// context.go defines the Context interface for extension access to oktags
// internals.
//
// Extensions receive the Context during Init, not at construction: they
// register from init() before the service exists, and are handed the shared
// service once the root command has loaded configuration.

package extension

import (
	"github.com/jpl-au/oktags/internal/config"
	"github.com/jpl-au/oktags/internal/service"
)

// Context provides extensions controlled access to oktags internals.
type Context interface {
	// Service returns the tag service.
	Service() service.Service

	// Config returns the loaded user configuration.
	Config() *config.Config
}

type extContext struct {
	svc service.Service
	cfg *config.Config
}

// NewContext creates a new extension context.
func NewContext(svc service.Service, cfg *config.Config) Context {
	return &extContext{svc: svc, cfg: cfg}
}

func (c *extContext) Service() service.Service { return c.svc }

func (c *extContext) Config() *config.Config { return c.cfg }
