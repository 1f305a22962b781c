package repositories

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func() *TreeOpener {
		return NewTreeOpener(OpenKernelTree)
	}); err != nil {
		return err
	}

	return nil
}
