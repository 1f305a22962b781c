package controllers

import (
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"go.uber.org/dig"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	if err := container.Provide(NewMergeController); err != nil {
		return err
	}
	if err := container.Provide(NewCheckController); err != nil {
		return err
	}
	if err := container.Provide(NewVariantsController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates the subcommand controllers for the AppInternal.
// The merge controller is mounted as the root command instead.
func NewControllers(
	checkController *CheckController,
	variantsController *VariantsController,
) *[]entities.Controller {
	return &[]entities.Controller{
		checkController,
		variantsController,
	}
}
