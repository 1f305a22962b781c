package main

import (
	"github.com/rios0rios0/wlanmerge/internal"
	"github.com/rios0rios0/wlanmerge/internal/infrastructure/controllers"
	"go.uber.org/dig"
)

func injectAppContext() *internal.AppInternal {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppInternal
	var appInternal *internal.AppInternal
	if err := container.Invoke(func(ai *internal.AppInternal) {
		appInternal = ai
	}); err != nil {
		panic(err)
	}

	return appInternal
}

func injectMergeController() *controllers.MergeController {
	container := dig.New()

	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	var mergeController *controllers.MergeController
	if err := container.Invoke(func(mc *controllers.MergeController) {
		mergeController = mc
	}); err != nil {
		panic(err)
	}

	return mergeController
}
