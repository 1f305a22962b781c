//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// MergePlanBuilder helps create test merge plans with a fluent interface.
type MergePlanBuilder struct {
	*testkit.BaseBuilder
	variant  entities.Variant
	mode     entities.Mode
	tag      string
	settings *entities.Settings
}

// NewMergePlanBuilder creates a new merge plan builder with sensible defaults.
func NewMergePlanBuilder() *MergePlanBuilder {
	return &MergePlanBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		variant:     entities.VariantQcacld,
		mode:        entities.ModeInitial,
		tag:         "LA.UM.8.1.r1-12345-sm8150.0",
		settings:    entities.DefaultSettings(),
	}
}

// WithVariant sets the driver variant.
func (b *MergePlanBuilder) WithVariant(variant entities.Variant) *MergePlanBuilder {
	b.variant = variant
	return b
}

// WithMode sets the merge mode.
func (b *MergePlanBuilder) WithMode(mode entities.Mode) *MergePlanBuilder {
	b.mode = mode
	return b
}

// WithTag sets the target tag.
func (b *MergePlanBuilder) WithTag(tag string) *MergePlanBuilder {
	b.tag = tag
	return b
}

// WithSettings sets the settings the plan is resolved against.
func (b *MergePlanBuilder) WithSettings(settings *entities.Settings) *MergePlanBuilder {
	b.settings = settings
	return b
}

// Build creates the merge plan (satisfies testkit.Builder interface).
func (b *MergePlanBuilder) Build() interface{} {
	return b.BuildMergePlan()
}

// BuildMergePlan creates the merge plan with a concrete return type. It
// panics on invalid input, which only a broken test can produce.
func (b *MergePlanBuilder) BuildMergePlan() entities.MergePlan {
	plan, err := entities.NewMergePlan(b.settings, b.variant, b.mode, b.tag)
	if err != nil {
		panic(err)
	}
	return plan
}

// Reset clears the builder state, allowing it to be reused.
func (b *MergePlanBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.variant = entities.VariantQcacld
	b.mode = entities.ModeInitial
	b.tag = "LA.UM.8.1.r1-12345-sm8150.0"
	b.settings = entities.DefaultSettings()
	return b
}

// Clone creates a deep copy of the MergePlanBuilder.
func (b *MergePlanBuilder) Clone() testkit.Builder {
	return &MergePlanBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		variant:     b.variant,
		mode:        b.mode,
		tag:         b.tag,
		settings:    b.settings,
	}
}
