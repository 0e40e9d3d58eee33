// Package modules defines the contract for the REST resource groups served
// to the mobile client, plus the request helpers they share.
package modules

import (
	"github.com/gidia-app/nutricoach/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Module defines the interface every API resource group must implement.
type Module interface {
	// ID returns the unique module identifier, used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

// AdminModule extends Module with admin-only route registration.
type AdminModule interface {
	Module

	// RegisterAdminRoutes mounts admin-only routes on the given Fiber group.
	// The group has both JWT and Admin middleware applied.
	RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}
