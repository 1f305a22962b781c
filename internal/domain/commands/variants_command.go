package commands

import (
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// Variants is the interface for the variants command.
type Variants interface {
	Execute(settings *entities.Settings) ([]entities.VariantSpec, error)
}

// VariantsCommand lists the supported variants with settings applied.
type VariantsCommand struct{}

// NewVariantsCommand creates a new VariantsCommand.
func NewVariantsCommand() *VariantsCommand {
	return &VariantsCommand{}
}

func (it *VariantsCommand) Execute(settings *entities.Settings) ([]entities.VariantSpec, error) {
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	specs := make([]entities.VariantSpec, 0, len(entities.Variants()))
	for _, variant := range entities.Variants() {
		spec, err := settings.ResolveVariant(variant)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
