package entities

import (
	"fmt"
	"strings"
)

// Variant identifies a supported WLAN driver family.
type Variant string

const (
	VariantQcacld Variant = "qcacld"
	VariantPrima  Variant = "prima"
)

const defaultRemoteBase = "https://source.codeaurora.org/quic/la/platform/vendor/qcom-opensource/wlan/"

// Component is one upstream sub-repository of a variant.
type Component struct {
	Name   string // empty for single-component variants
	Subdir string // directory under the staging area
	Remote string // fetch URL
}

// Label returns the name used in logs and commit prefixes.
func (c Component) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Subdir
}

// VariantSpec describes everything fixed by a variant: its components in
// merge order and the build wiring added on an initial import.
type VariantSpec struct {
	Variant     Variant
	Components  []Component
	BuildTarget string // subdirectory referenced from Kconfig and Makefile
	ConfigFlag  string // Kconfig symbol guarding the Makefile rule
}

// Variants lists every supported variant in a stable order.
func Variants() []Variant {
	return []Variant{VariantQcacld, VariantPrima}
}

// ParseVariant validates a user-supplied variant name.
func ParseVariant(raw string) (Variant, error) {
	for _, v := range Variants() {
		if string(v) == raw {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown wlan type %q (choose from %s)", raw, joinVariants())
}

// DefaultVariantSpec returns the built-in layout for the given variant.
func DefaultVariantSpec(variant Variant) (VariantSpec, error) {
	switch variant {
	case VariantQcacld:
		return VariantSpec{
			Variant: VariantQcacld,
			Components: []Component{
				{Name: "fw-api", Subdir: "fw-api", Remote: defaultRemoteBase + "fw-api/"},
				{Name: "qca-wifi-host-cmn", Subdir: "qca-wifi-host-cmn", Remote: defaultRemoteBase + "qca-wifi-host-cmn/"},
				{Name: "qcacld-3.0", Subdir: "qcacld-3.0", Remote: defaultRemoteBase + "qcacld-3.0"},
			},
			BuildTarget: "qcacld-3.0",
			ConfigFlag:  "CONFIG_QCA_CLD_WLAN",
		}, nil
	case VariantPrima:
		return VariantSpec{
			Variant: VariantPrima,
			Components: []Component{
				{Subdir: "prima", Remote: defaultRemoteBase + "prima/"},
			},
			BuildTarget: "prima",
			ConfigFlag:  "CONFIG_PRONTO_WLAN",
		}, nil
	default:
		return VariantSpec{}, fmt.Errorf("unknown wlan type %q (choose from %s)", variant, joinVariants())
	}
}

// KnownSubdirs returns every component subdirectory across all variants.
func KnownSubdirs() map[string]Variant {
	known := make(map[string]Variant)
	for _, v := range Variants() {
		spec, _ := DefaultVariantSpec(v)
		for _, c := range spec.Components {
			known[c.Subdir] = v
		}
	}
	return known
}

func joinVariants() string {
	names := make([]string, 0, len(Variants()))
	for _, v := range Variants() {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}
